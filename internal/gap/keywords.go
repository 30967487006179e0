package gap

import "strings"

// fallbackKeywords is the static keyword list scanned when no LLM is available
// for job-skill extraction. Treated as immutable. Entries match verbatim
// against the lowercased description; the uppercase entries ("RCT", "R",
// "SQL") therefore never hit.
var fallbackKeywords = []string{
	"python", "machine learning", "deep learning", "data science",
	"statistics", "causal inference", "RCT", "clinical trials",
	"health data", "biotech", "pharmaceutical", "R", "SQL",
	"pytorch", "tensorflow", "pandas", "numpy",
}

// keywordScan returns every fallback keyword present in the job description.
func keywordScan(jobDescription string) []string {
	jobLower := strings.ToLower(jobDescription)

	var found []string
	for _, keyword := range fallbackKeywords {
		if strings.Contains(jobLower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
