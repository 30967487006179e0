package parsing

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/jonathan/skillbridge/internal/llm"
	"github.com/jonathan/skillbridge/internal/prompts"
	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// maxResumeTextForLLM bounds the prompt size for skill extraction
	maxResumeTextForLLM = 4000
	// maxExperienceEntries bounds how many work-history items are extracted
	maxExperienceEntries = 5
)

var (
	skillSectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:skills?|technical skills?|technologies?|tools?|proficiencies?):\s*(.+?)(?:\n\n|\n[A-Z]|$)`),
		regexp.MustCompile(`(?i)(?:proficient in|experienced with|familiar with|expert in):\s*(.+?)(?:\.|,|\n)`),
	}
	skillSplitPattern = regexp.MustCompile(`[,;]\s*|\n`)
	quotedPattern     = regexp.MustCompile(`"([^"]+)"`)

	experiencePattern = regexp.MustCompile(`(?is)(?:experience|work history|employment):\s*(.+?)(?:\n\n\n|\n[A-Z]{3,}|$)`)
	educationPattern  = regexp.MustCompile(`(?is)(?:education|academic background|qualifications):\s*(.+?)(?:\n\n\n|\n[A-Z]{3,}|$)`)
	durationPattern   = regexp.MustCompile(`\d{4}|\d{1,2}/\d{4}`)
	yearPattern       = regexp.MustCompile(`\d{4}`)
)

// ParseResume extracts structured information from raw resume text.
// The LLM client is optional; when nil (or when the call fails) extraction
// falls back to pattern matching alone. Empty results are valid output.
func ParseResume(ctx context.Context, client llm.Client, rawText, filename string) *types.ParsedResume {
	return &types.ParsedResume{
		Filename:   filename,
		RawText:    rawText,
		Skills:     ExtractSkills(ctx, client, rawText),
		Experience: ExtractExperience(rawText),
		Education:  ExtractEducation(rawText),
	}
}

// ExtractSkills extracts candidate skills from resume text using pattern
// matching, augmented with LLM extraction when a client is available.
// Results are lowercased, trimmed, and deduplicated in discovery order.
func ExtractSkills(ctx context.Context, client llm.Client, resumeText string) []string {
	var skills []string

	for _, pattern := range skillSectionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(resumeText, -1) {
			for _, token := range skillSplitPattern.Split(match[1], -1) {
				if token = strings.TrimSpace(token); token != "" {
					skills = append(skills, token)
				}
			}
		}
	}

	if client != nil {
		llmSkills, err := extractSkillsWithLLM(ctx, client, resumeText)
		if err != nil {
			log.Printf("Warning: LLM skill extraction failed: %v", err)
		} else {
			skills = append(skills, llmSkills...)
		}
	}

	return cleanSkills(skills)
}

// extractSkillsWithLLM asks the model for a JSON array of skill names.
func extractSkillsWithLLM(ctx context.Context, client llm.Client, resumeText string) ([]string, error) {
	if len(resumeText) > maxResumeTextForLLM {
		resumeText = resumeText[:maxResumeTextForLLM]
	}

	template := prompts.MustGet("parsing.json", "extract-resume-skills")
	prompt := prompts.Format(template, map[string]string{"ResumeText": resumeText})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "skill extraction failed", Cause: err}
	}

	var skills []string
	if err := json.Unmarshal([]byte(response), &skills); err != nil {
		// Not a bare JSON array; salvage the first balanced array embedded
		// in the response, then fall back to quoted strings.
		if extracted := llm.ExtractJSONArray(response); extracted != "" {
			if err := json.Unmarshal([]byte(extracted), &skills); err == nil {
				return skills, nil
			}
		}
		for _, m := range quotedPattern.FindAllStringSubmatch(response, -1) {
			skills = append(skills, m[1])
		}
		if len(skills) == 0 {
			return nil, &ParseError{Message: "response is not a JSON array", Cause: err}
		}
	}
	return skills, nil
}

// cleanSkills lowercases, trims, drops single-character tokens, and
// deduplicates while preserving discovery order.
func cleanSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if len(s) <= 1 || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ExtractExperience extracts work-history entries from resume text.
func ExtractExperience(resumeText string) []types.ExperienceEntry {
	var experience []types.ExperienceEntry

	matches := experiencePattern.FindAllStringSubmatch(resumeText, -1)
	if len(matches) > maxExperienceEntries {
		matches = matches[:maxExperienceEntries]
	}

	for _, match := range matches {
		lines := strings.Split(match[1], "\n")
		var entry types.ExperienceEntry

		header := lines
		if len(header) > 3 {
			header = header[:3]
		}
		for _, line := range header {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			switch {
			case durationPattern.MatchString(line):
				entry.Duration = line
			case entry.Role == "":
				entry.Role = line
			case entry.Company == "":
				entry.Company = line
			}
		}
		if len(lines) > 3 {
			entry.Description = strings.Join(lines[3:], "\n")
		}

		if entry.Role != "" || entry.Company != "" {
			experience = append(experience, entry)
		}
	}

	return experience
}

// ExtractEducation extracts education entries from resume text.
func ExtractEducation(resumeText string) []types.EducationEntry {
	var education []types.EducationEntry

	for _, match := range educationPattern.FindAllStringSubmatch(resumeText, -1) {
		lines := strings.Split(match[1], "\n")
		var entry types.EducationEntry

		header := lines
		if len(header) > 3 {
			header = header[:3]
		}
		for _, line := range header {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			switch {
			case yearPattern.MatchString(line):
				entry.Year = yearPattern.FindString(line)
			case entry.Degree == "":
				entry.Degree = line
			case entry.Institution == "":
				entry.Institution = line
			}
		}

		if entry.Degree != "" || entry.Institution != "" {
			education = append(education, entry)
		}
	}

	return education
}
