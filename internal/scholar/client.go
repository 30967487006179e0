// Package scholar provides a Semantic Scholar client used to enrich
// curricula with research papers and case studies. All lookups are
// best-effort: rate limits and API errors surface as empty result sets.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultBaseURL is the Semantic Scholar Graph API endpoint.
const DefaultBaseURL = "https://api.semanticscholar.org/graph/v1"

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

const (
	// MaxSkillsPerBatch bounds per-skill paper lookups to respect rate limits.
	MaxSkillsPerBatch = 5
	// PapersPerSkill is the default paper count fetched for each skill.
	PapersPerSkill = 3
	// CaseStudyLimit bounds case-study results per topic.
	CaseStudyLimit = 3

	// skillPacing is the delay between successive per-skill searches.
	skillPacing = 500 * time.Millisecond
	// queryPacing is the delay between successive query-variant searches.
	queryPacing = 300 * time.Millisecond

	// maxAbstractLength truncates abstracts for display.
	maxAbstractLength = 500
	// maxNamedAuthors lists this many authors before "et al."
	maxNamedAuthors = 3
)

// searchFields are the paper fields requested from the API.
var searchFields = strings.Join([]string{
	"paperId", "title", "abstract", "year", "citationCount",
	"url", "authors", "venue", "openAccessPdf",
}, ",")

// Paper is a formatted research paper result.
type Paper struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Abstract  string `json:"abstract,omitempty"`
	Authors   string `json:"authors"`
	Year      int    `json:"year,omitempty"`
	Citations int    `json:"citations"`
	Venue     string `json:"venue,omitempty"`
	URL       string `json:"url"`
	PDFURL    string `json:"pdf_url,omitempty"`
}

// Client queries the Semantic Scholar Graph API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	pacing     bool
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithoutPacing disables inter-request delays. Used by tests.
func WithoutPacing() Option {
	return func(c *Client) { c.pacing = false }
}

// NewClient creates a Semantic Scholar client. The API key is optional; it
// raises the upstream rate limit when present.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		pacing:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiPaper mirrors the Graph API response shape.
type apiPaper struct {
	PaperID       string      `json:"paperId"`
	Title         string      `json:"title"`
	Abstract      string      `json:"abstract"`
	Year          int         `json:"year"`
	CitationCount int         `json:"citationCount"`
	URL           string      `json:"url"`
	Venue         string      `json:"venue"`
	Authors       []apiAuthor `json:"authors"`
	OpenAccessPDF *openAccess `json:"openAccessPdf"`
}

type apiAuthor struct {
	Name string `json:"name"`
}

type openAccess struct {
	URL string `json:"url"`
}

type searchResponse struct {
	Data []apiPaper `json:"data"`
}

// SearchPapers searches for papers matching the query. API errors, rate
// limits, and malformed payloads all return an empty slice with a logged
// warning; the caller never sees an error.
func (c *Client) SearchPapers(ctx context.Context, query string, limit int) []Paper {
	endpoint := fmt.Sprintf("%s/paper/search?%s", c.baseURL, url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {searchFields},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("Warning: building paper search request failed: %v", err)
		return nil
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Warning: paper search failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		log.Printf("Warning: Semantic Scholar rate limit reached")
		return nil
	case resp.StatusCode != http.StatusOK:
		log.Printf("Warning: Semantic Scholar API error: %d", resp.StatusCode)
		return nil
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Warning: decoding paper search response failed: %v", err)
		return nil
	}

	return formatPapers(payload.Data)
}

// PapersForSkills fetches papers for each skill, bounded to MaxSkillsPerBatch
// skills with a pacing delay between lookups. The domain contextualizes each
// query when present. Cancelling the context stops the iteration and returns
// what was collected so far.
func (c *Client) PapersForSkills(ctx context.Context, skills []string, domain string) map[string][]Paper {
	if len(skills) > MaxSkillsPerBatch {
		skills = skills[:MaxSkillsPerBatch]
	}

	results := make(map[string][]Paper, len(skills))
	for i, skill := range skills {
		query := skill
		if domain != "" {
			query = strings.TrimSpace(skill + " " + domain)
		}
		results[skill] = c.SearchPapers(ctx, query, PapersPerSkill)

		if i < len(skills)-1 && !c.pause(ctx, skillPacing) {
			break
		}
	}
	return results
}

// CaseStudies fetches case-study papers for a topic using three query
// variants, deduplicated by paper id and bounded to CaseStudyLimit.
func (c *Client) CaseStudies(ctx context.Context, topic, domain string) []Paper {
	queries := []string{
		strings.TrimSpace(fmt.Sprintf("%s case study %s", topic, domain)),
		strings.TrimSpace(fmt.Sprintf("%s industry application %s", topic, domain)),
		fmt.Sprintf("%s practical implementation", topic),
	}

	var all []Paper
	seen := make(map[string]bool)

	for i, query := range queries {
		for _, paper := range c.SearchPapers(ctx, query, 2) {
			if seen[paper.ID] {
				continue
			}
			seen[paper.ID] = true
			all = append(all, paper)
		}

		if i < len(queries)-1 && !c.pause(ctx, queryPacing) {
			break
		}
	}

	if len(all) > CaseStudyLimit {
		all = all[:CaseStudyLimit]
	}
	return all
}

// levelQueryTerms maps difficulty levels to learning-resource search terms.
var levelQueryTerms = map[string][]string{
	"beginner":     {"introduction", "tutorial", "beginner guide"},
	"intermediate": {"survey", "overview", "practical"},
	"advanced":     {"advanced", "state-of-the-art", "deep dive"},
}

// LearningResources fetches learning-focused papers for a skill at the given
// difficulty level. Unknown levels use the intermediate terms. Results are
// deduplicated by paper id and bounded to 5.
func (c *Client) LearningResources(ctx context.Context, skill, level string) []Paper {
	terms, ok := levelQueryTerms[level]
	if !ok {
		terms = levelQueryTerms["intermediate"]
	}

	var all []Paper
	for i, term := range terms[:2] {
		all = append(all, c.SearchPapers(ctx, skill+" "+term, 2)...)

		if i < 1 && !c.pause(ctx, queryPacing) {
			break
		}
	}

	seen := make(map[string]bool)
	unique := make([]Paper, 0, len(all))
	for _, paper := range all {
		if seen[paper.ID] {
			continue
		}
		seen[paper.ID] = true
		unique = append(unique, paper)
	}

	if len(unique) > 5 {
		unique = unique[:5]
	}
	return unique
}

// pause sleeps for the pacing interval, returning false if the context was
// cancelled first.
func (c *Client) pause(ctx context.Context, d time.Duration) bool {
	if !c.pacing {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func formatPapers(papers []apiPaper) []Paper {
	formatted := make([]Paper, 0, len(papers))
	for _, p := range papers {
		if p.PaperID == "" && p.Title == "" {
			continue
		}

		title := p.Title
		if title == "" {
			title = "Untitled"
		}

		abstract := p.Abstract
		if len(abstract) > maxAbstractLength {
			cut := maxAbstractLength
			for cut > 0 && !utf8.RuneStart(abstract[cut]) {
				cut--
			}
			abstract = abstract[:cut]
		}

		paperURL := p.URL
		if paperURL == "" {
			paperURL = "https://www.semanticscholar.org/paper/" + p.PaperID
		}

		pdfURL := ""
		if p.OpenAccessPDF != nil {
			pdfURL = p.OpenAccessPDF.URL
		}

		formatted = append(formatted, Paper{
			ID:        p.PaperID,
			Title:     title,
			Abstract:  abstract,
			Authors:   formatAuthors(p.Authors),
			Year:      p.Year,
			Citations: p.CitationCount,
			Venue:     p.Venue,
			URL:       paperURL,
			PDFURL:    pdfURL,
		})
	}
	return formatted
}

func formatAuthors(authors []apiAuthor) string {
	if len(authors) == 0 {
		return "Unknown"
	}

	names := make([]string, 0, maxNamedAuthors+1)
	for i, a := range authors {
		if i == maxNamedAuthors {
			names = append(names, "et al.")
			break
		}
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
