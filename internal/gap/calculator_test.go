package gap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOverlap_Basic(t *testing.T) {
	matched, missing := ComputeOverlap(
		[]string{"python", "data science"},
		[]string{"python", "machine learning", "sql"},
	)

	assert.Equal(t, []string{"python"}, matched)
	assert.Equal(t, []string{"machine learning", "sql"}, missing)
}

func TestComputeOverlap_EmptyTargets(t *testing.T) {
	matched, missing := ComputeOverlap([]string{"python"}, nil)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestComputeOverlap_EmptyCandidates(t *testing.T) {
	matched, missing := ComputeOverlap(nil, []string{"python", "sql"})
	assert.Empty(t, matched)
	assert.Equal(t, []string{"python", "sql"}, missing)
}

func TestComputeOverlap_SubstringBothDirections(t *testing.T) {
	// Target inside candidate
	matched, _ := ComputeOverlap([]string{"python programming"}, []string{"python"})
	assert.Equal(t, []string{"python"}, matched)

	// Candidate inside target
	matched, _ = ComputeOverlap([]string{"python"}, []string{"advanced python"})
	assert.Equal(t, []string{"advanced python"}, matched)
}

func TestComputeOverlap_AliasResolution(t *testing.T) {
	matched, missing := ComputeOverlap([]string{"ML"}, []string{"machine learning"})
	assert.Equal(t, []string{"machine learning"}, matched)
	assert.Empty(t, missing)
}

func TestComputeOverlap_ShortTokenOvermatch(t *testing.T) {
	// Known heuristic limitation: "r" is a substring of "nursing"
	matched, _ := ComputeOverlap([]string{"nursing"}, []string{"R"})
	assert.Equal(t, []string{"r"}, matched)
}

func TestComputeOverlap_DuplicateTargetsCollapse(t *testing.T) {
	matched, missing := ComputeOverlap(
		[]string{"python"},
		[]string{"Python", "python", "ML", "machine learning"},
	)

	assert.Equal(t, []string{"python"}, matched)
	assert.Equal(t, []string{"machine learning"}, missing)
}

func TestComputeOverlap_EveryTargetClassifiedOnce(t *testing.T) {
	candidates := []string{"python", "sql", "pandas"}
	targets := []string{"Python", "ML", "sql", "SQL", "tensorflow", "machine learning"}

	matched, missing := ComputeOverlap(candidates, targets)

	// Distinct normalized targets: python, machine learning, sql, tensorflow
	assert.Equal(t, 4, len(matched)+len(missing))
}

func TestComputeOverlap_CandidateOrderInsensitive(t *testing.T) {
	candidates := []string{"python", "data science", "sql", "pandas"}
	targets := []string{"python", "machine learning", "sql", "statistics"}

	wantMatched, wantMissing := ComputeOverlap(candidates, targets)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]string(nil), candidates...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		matched, missing := ComputeOverlap(shuffled, targets)
		assert.ElementsMatch(t, wantMatched, matched)
		assert.Equal(t, wantMissing, missing)
	}
}

func TestComputeOverlap_TargetOrderPreserved(t *testing.T) {
	_, missing := ComputeOverlap(nil, []string{"sql", "python", "statistics"})
	assert.Equal(t, []string{"sql", "python", "statistics"}, missing)

	_, missing = ComputeOverlap(nil, []string{"statistics", "sql", "python"})
	assert.Equal(t, []string{"statistics", "sql", "python"}, missing)
}
