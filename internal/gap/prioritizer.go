package gap

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/skillbridge/internal/parsing"
	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// MaxGapDetails bounds how many missing skills receive a detailed gap entry.
	MaxGapDetails = 10
	// TopPriorityGaps bounds the priority subset handed to curriculum generation.
	TopPriorityGaps = 5
)

// Prioritize builds deterministic gap details for the missing skills without
// consulting an LLM. A skill belonging to the job's required set is marked
// important, anything else nice_to_have. Priority is the 1-based position in
// the missing-skills sequence. The result is capped at MaxGapDetails.
func Prioritize(missingSkills, requiredSkills []string, jobTitle string) []types.SkillGap {
	if jobTitle == "" {
		jobTitle = "Position"
	}

	required := make(map[string]bool, len(requiredSkills))
	for _, s := range requiredSkills {
		required[parsing.NormalizeSkill(s)] = true
	}

	limit := len(missingSkills)
	if limit > MaxGapDetails {
		limit = MaxGapDetails
	}

	gaps := make([]types.SkillGap, 0, limit)
	for i, skill := range missingSkills[:limit] {
		importance := types.ImportanceNiceToHave
		if required[skill] {
			importance = types.ImportanceImportant
		}
		gaps = append(gaps, types.SkillGap{
			Skill:         skill,
			Importance:    importance,
			Priority:      i + 1,
			Reason:        fmt.Sprintf("Required for %s position", jobTitle),
			RelatedSkills: []string{},
		})
	}

	return gaps
}

// SortByPriority orders gap details by ascending priority. The sort is stable,
// so entries sharing a priority keep their discovery order. Entries with a
// non-positive priority sort last.
func SortByPriority(gaps []types.SkillGap) {
	sort.SliceStable(gaps, func(i, j int) bool {
		return effectivePriority(gaps[i].Priority) < effectivePriority(gaps[j].Priority)
	})
}

func effectivePriority(p int) int {
	if p <= 0 {
		return math.MaxInt
	}
	return p
}

// ConfidenceScore is the percentage of target skills the candidate covers,
// rounded to 2 decimal places. An empty target set scores 0.
func ConfidenceScore(matchedCount, targetCount int) float64 {
	if targetCount <= 0 {
		return 0
	}
	ratio := float64(matchedCount) / float64(targetCount)
	return math.Round(ratio*100*100) / 100
}

// Notes summarizes the analysis for human readers.
func Notes(matchedCount, targetCount, missingCount int) string {
	return fmt.Sprintf(
		"Found %d matching skills out of %d required. Identified %d skill gaps to address.",
		matchedCount, targetCount, missingCount,
	)
}
