package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillbridge/internal/scholar"
	"github.com/jonathan/skillbridge/internal/types"
)

// fakeSearcher implements Searcher with canned results.
type fakeSearcher struct {
	papers      map[string][]scholar.Paper
	caseStudies []scholar.Paper
	calls       int
	lastSkills  []string
}

func (f *fakeSearcher) PapersForSkills(ctx context.Context, skills []string, domain string) map[string][]scholar.Paper {
	f.calls++
	f.lastSkills = skills
	return f.papers
}

func (f *fakeSearcher) CaseStudies(ctx context.Context, topic, domain string) []scholar.Paper {
	f.calls++
	return f.caseStudies
}

func baseCurriculum() *types.Curriculum {
	return &types.Curriculum{
		Title:   "Training Program for ML Intern in biotech",
		Modules: []types.CurriculumModule{{Title: "Module 1: Sql"}},
		Resources: []types.Resource{
			{Type: "tutorial", Title: "Online Tutorials", URL: "Search for relevant tutorials on the identified skills"},
		},
		CaseStudies: []types.CaseStudy{
			{Title: "Biotech Case Study 1", LearningOutcomes: []string{"Practical application"}},
		},
		EstimatedDuration: "2 weeks",
	}
}

func TestEnrich_AppendsResourcesAndCaseStudies(t *testing.T) {
	searcher := &fakeSearcher{
		papers: map[string][]scholar.Paper{
			"sql": {{ID: "p1", Title: "Query Optimization", Authors: "A. Smith", Year: 2020, URL: "https://example.org/p1"}},
		},
		caseStudies: []scholar.Paper{
			{ID: "c1", Title: "SQL at Scale", Abstract: "How a warehouse grew.", Venue: "VLDB"},
		},
	}

	cur := baseCurriculum()
	enriched := NewMerger(searcher).Enrich(context.Background(), cur, []string{"sql"}, "biotech")
	require.NotNil(t, enriched)

	require.Len(t, enriched.Resources, 2)
	added := enriched.Resources[1]
	assert.Equal(t, "paper", added.Type)
	assert.Equal(t, "Query Optimization (A. Smith, 2020)", added.Title)
	assert.Equal(t, "https://example.org/p1", added.URL)
	assert.Equal(t, "sql", added.Topic)

	require.Len(t, enriched.CaseStudies, 2)
	study := enriched.CaseStudies[1]
	assert.Equal(t, "SQL at Scale", study.Title)
	assert.Equal(t, "How a warehouse grew.", study.Description)
	assert.Contains(t, study.LearningOutcomes, "Published in VLDB")
}

func TestEnrich_InputNotMutated(t *testing.T) {
	searcher := &fakeSearcher{
		papers: map[string][]scholar.Paper{
			"sql": {{ID: "p1", Title: "Paper", URL: "u"}},
		},
	}

	cur := baseCurriculum()
	original := cur.Clone()

	enriched := NewMerger(searcher).Enrich(context.Background(), cur, []string{"sql"}, "")

	assert.Equal(t, original, cur)
	assert.NotEqual(t, cur, enriched)
}

func TestEnrich_EmptyResultsReturnInputUnchanged(t *testing.T) {
	cur := baseCurriculum()
	enriched := NewMerger(&fakeSearcher{}).Enrich(context.Background(), cur, []string{"sql"}, "biotech")

	// Same pointer: nothing to commit
	assert.Same(t, cur, enriched)
}

func TestEnrich_CancelledContextReturnsInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	searcher := &fakeSearcher{
		papers: map[string][]scholar.Paper{"sql": {{ID: "p1", Title: "Paper"}}},
	}

	cur := baseCurriculum()
	enriched := NewMerger(searcher).Enrich(ctx, cur, []string{"sql"}, "")

	assert.Same(t, cur, enriched)
}

func TestEnrich_NeverDecreasesLengths(t *testing.T) {
	searchers := []*fakeSearcher{
		{},
		{papers: map[string][]scholar.Paper{"a": {{ID: "p", Title: "T"}}}},
		{caseStudies: []scholar.Paper{{ID: "c", Title: "C"}}},
	}

	for _, searcher := range searchers {
		cur := baseCurriculum()
		enriched := NewMerger(searcher).Enrich(context.Background(), cur, []string{"a"}, "d")

		assert.GreaterOrEqual(t, len(enriched.Resources), len(cur.Resources))
		assert.GreaterOrEqual(t, len(enriched.CaseStudies), len(cur.CaseStudies))
	}
}

func TestEnrich_TopicsBounded(t *testing.T) {
	searcher := &fakeSearcher{}
	merger := NewMerger(searcher)

	topics := []string{"a", "b", "c", "d", "e", "f", "g"}
	merger.Enrich(context.Background(), baseCurriculum(), topics, "")

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, searcher.lastSkills)
}

func TestEnrich_NoTopics(t *testing.T) {
	searcher := &fakeSearcher{}
	cur := baseCurriculum()

	enriched := NewMerger(searcher).Enrich(context.Background(), cur, nil, "")

	assert.Same(t, cur, enriched)
	assert.Zero(t, searcher.calls)
}

func TestEnrich_NilCurriculum(t *testing.T) {
	assert.Nil(t, NewMerger(&fakeSearcher{}).Enrich(context.Background(), nil, []string{"a"}, ""))
}

func TestEnrich_PreservesExistingOrder(t *testing.T) {
	searcher := &fakeSearcher{
		papers: map[string][]scholar.Paper{"sql": {{ID: "p1", Title: "New Paper", URL: "u"}}},
	}

	cur := baseCurriculum()
	enriched := NewMerger(searcher).Enrich(context.Background(), cur, []string{"sql"}, "")

	// Existing entries keep their positions; new ones append
	assert.Equal(t, "Online Tutorials", enriched.Resources[0].Title)
	assert.Equal(t, "Biotech Case Study 1", enriched.CaseStudies[0].Title)
}
