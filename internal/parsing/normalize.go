// Package parsing provides skill normalization and resume text parsing.
package parsing

import "strings"

// skillAliases maps common skill abbreviations to canonical names.
// Loaded once at process start; treated as immutable.
var skillAliases = map[string]string{
	"ml":   "machine learning",
	"dl":   "deep learning",
	"ai":   "artificial intelligence",
	"rct":  "randomized controlled trials",
	"rcts": "randomized controlled trials",
}

// NormalizeSkill canonicalizes a skill name for comparison: lowercase, trim,
// then alias expansion. The function is total and idempotent.
func NormalizeSkill(skill string) string {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills normalizes every skill in order, preserving duplicates.
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, len(skills))
	for i, s := range skills {
		normalized[i] = NormalizeSkill(s)
	}
	return normalized
}

// DedupeSkills removes duplicate normalized skills, keeping first-occurrence order.
func DedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		normalized := NormalizeSkill(s)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
