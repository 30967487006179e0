// Package gap computes skill-gap analyses between candidate skills and job
// requirements: overlap calculation, gap prioritization, and orchestration of
// the optional LLM-backed rationale pass.
package gap

import (
	"strings"

	"github.com/jonathan/skillbridge/internal/parsing"
)

// ComputeOverlap partitions the target skills into those the candidate covers
// and those missing. Both inputs are normalized before comparison. Target
// skills are deduplicated by normalized form, so every distinct target skill
// lands in exactly one of the two result slices. Order follows the target
// list; candidate order never affects the outcome.
//
// Matching is a bidirectional substring test: "python" matches "python
// programming" and vice versa. This is intentionally permissive and produces
// false positives for very short tokens ("r" inside "nursing"). The first
// matching candidate wins; no scoring among multiple matches.
func ComputeOverlap(candidateSkills, targetSkills []string) (matched, missing []string) {
	candidates := parsing.NormalizeSkills(candidateSkills)
	targets := parsing.DedupeSkills(targetSkills)

	matched = make([]string, 0, len(targets))
	missing = make([]string, 0, len(targets))

	for _, target := range targets {
		if matchesAny(target, candidates) {
			matched = append(matched, target)
		} else {
			missing = append(missing, target)
		}
	}

	return matched, missing
}

func matchesAny(target string, candidates []string) bool {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, target) || strings.Contains(target, candidate) {
			return true
		}
	}
	return false
}
