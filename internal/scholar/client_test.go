package scholar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paperSearchPayload = `{
	"data": [
		{
			"paperId": "p1",
			"title": "Causal Inference in Clinical Trials",
			"abstract": "A study of causal methods.",
			"year": 2021,
			"citationCount": 42,
			"url": "https://example.org/p1",
			"venue": "JAMA",
			"authors": [{"name": "A. Smith"}, {"name": "B. Jones"}],
			"openAccessPdf": {"url": "https://example.org/p1.pdf"}
		},
		{
			"paperId": "p2",
			"title": "Machine Learning for Health Data",
			"authors": []
		}
	]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", WithBaseURL(server.URL), WithoutPacing())
	return server, client
}

func TestSearchPapers(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/paper/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "causal inference", r.URL.Query().Get("query"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Contains(t, r.URL.Query().Get("fields"), "paperId")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(paperSearchPayload))
	})

	papers := client.SearchPapers(context.Background(), "causal inference", 3)
	require.Len(t, papers, 2)

	first := papers[0]
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, "Causal Inference in Clinical Trials", first.Title)
	assert.Equal(t, "A. Smith, B. Jones", first.Authors)
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, 42, first.Citations)
	assert.Equal(t, "https://example.org/p1.pdf", first.PDFURL)

	second := papers[1]
	assert.Equal(t, "Unknown", second.Authors)
	assert.Empty(t, second.PDFURL)
	assert.Equal(t, "https://www.semanticscholar.org/paper/p2", second.URL)
}

func TestSearchPapers_RateLimitReturnsEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	papers := client.SearchPapers(context.Background(), "python", 3)
	assert.Empty(t, papers)
}

func TestSearchPapers_ServerErrorReturnsEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Empty(t, client.SearchPapers(context.Background(), "python", 3))
}

func TestSearchPapers_MalformedPayloadReturnsEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	assert.Empty(t, client.SearchPapers(context.Background(), "python", 3))
}

func TestSearchPapers_AbstractTruncation(t *testing.T) {
	long := strings.Repeat("a", 900)
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"paperId": "p1", "title": "T", "abstract": "` + long + `"}]}`))
	})

	papers := client.SearchPapers(context.Background(), "python", 1)
	require.Len(t, papers, 1)
	assert.Len(t, papers[0].Abstract, 500)
}

func TestSearchPapers_AbstractTruncationKeepsRunesIntact(t *testing.T) {
	// A two-byte rune straddles the truncation boundary.
	long := strings.Repeat("a", 499) + strings.Repeat("é", 10)
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"paperId": "p1", "title": "T", "abstract": "` + long + `"}]}`))
	})

	papers := client.SearchPapers(context.Background(), "python", 1)
	require.Len(t, papers, 1)
	assert.True(t, utf8.ValidString(papers[0].Abstract))
	assert.Equal(t, strings.Repeat("a", 499), papers[0].Abstract)
}

func TestSearchPapers_EtAlFormatting(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"paperId": "p1", "title": "T",
			"authors": [{"name": "A"}, {"name": "B"}, {"name": "C"}, {"name": "D"}]}]}`))
	})

	papers := client.SearchPapers(context.Background(), "python", 1)
	require.Len(t, papers, 1)
	assert.Equal(t, "A, B, C, et al.", papers[0].Authors)
}

func TestPapersForSkills(t *testing.T) {
	var queries []string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"data": [{"paperId": "p1", "title": "T"}]}`))
	})

	results := client.PapersForSkills(context.Background(), []string{"sql", "pytorch"}, "biotech")

	require.Len(t, results, 2)
	assert.Len(t, results["sql"], 1)
	assert.Len(t, results["pytorch"], 1)
	assert.Equal(t, []string{"sql biotech", "pytorch biotech"}, queries)
}

func TestPapersForSkills_BoundedToFiveSkills(t *testing.T) {
	requests := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	skills := []string{"a", "b", "c", "d", "e", "f", "g"}
	results := client.PapersForSkills(context.Background(), skills, "")

	assert.Len(t, results, MaxSkillsPerBatch)
	assert.Equal(t, MaxSkillsPerBatch, requests)
}

func TestPapersForSkills_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	// Cancelled context stops iteration without panicking
	results := client.PapersForSkills(ctx, []string{"a", "b", "c"}, "")
	assert.LessOrEqual(t, len(results), 1)
}

func TestCaseStudies_DedupesAndBounds(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Every query returns the same two papers; dedupe keeps them once
		_, _ = w.Write([]byte(`{"data": [
			{"paperId": "p1", "title": "One"},
			{"paperId": "p2", "title": "Two"}
		]}`))
	})

	papers := client.CaseStudies(context.Background(), "machine learning", "biotech")

	require.Len(t, papers, 2)
	assert.Equal(t, "p1", papers[0].ID)
	assert.Equal(t, "p2", papers[1].ID)
}

func TestCaseStudies_QueryVariants(t *testing.T) {
	var queries []string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	client.CaseStudies(context.Background(), "sql", "finance")

	require.Len(t, queries, 3)
	assert.Equal(t, "sql case study finance", queries[0])
	assert.Equal(t, "sql industry application finance", queries[1])
	assert.Equal(t, "sql practical implementation", queries[2])
}

func TestLearningResources_LevelTerms(t *testing.T) {
	var queries []string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	client.LearningResources(context.Background(), "pytorch", "beginner")

	require.Len(t, queries, 2)
	assert.Equal(t, "pytorch introduction", queries[0])
	assert.Equal(t, "pytorch tutorial", queries[1])
}

func TestLearningResources_UnknownLevelUsesIntermediate(t *testing.T) {
	var queries []string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	client.LearningResources(context.Background(), "sql", "wizard")

	require.Len(t, queries, 2)
	assert.Equal(t, "sql survey", queries[0])
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.True(t, client.pacing)
}
