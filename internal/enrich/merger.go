// Package enrich augments assembled curricula with externally retrieved
// reference material. Enrichment is strictly additive and best-effort: the
// deterministic curriculum is never lost to a failed lookup.
package enrich

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/skillbridge/internal/scholar"
	"github.com/jonathan/skillbridge/internal/types"
)

// MaxTopics bounds how many topics are enriched per curriculum.
const MaxTopics = 5

// Searcher is the reference-search collaborator. scholar.Client satisfies it.
type Searcher interface {
	PapersForSkills(ctx context.Context, skills []string, domain string) map[string][]scholar.Paper
	CaseStudies(ctx context.Context, topic, domain string) []scholar.Paper
}

// Merger appends externally fetched papers and case studies to a curriculum.
type Merger struct {
	searcher Searcher
}

// NewMerger creates a Merger backed by the given reference-search client.
func NewMerger(searcher Searcher) *Merger {
	return &Merger{searcher: searcher}
}

// Enrich returns a copy of the curriculum with paper resources appended per
// topic and case-study entries appended for the leading topic. All appends are
// collected first and committed onto a deep copy at the end; on cancellation
// or when the collaborator produces nothing, the input is returned unchanged.
// Existing fields are never removed or reordered. Enrich never fails.
func (m *Merger) Enrich(ctx context.Context, cur *types.Curriculum, topics []string, domain string) *types.Curriculum {
	if cur == nil {
		return nil
	}
	if m.searcher == nil || len(topics) == 0 {
		return cur
	}
	if len(topics) > MaxTopics {
		topics = topics[:MaxTopics]
	}

	papersByTopic := m.searcher.PapersForSkills(ctx, topics, domain)
	if ctx.Err() != nil {
		log.Printf("Warning: enrichment cancelled, keeping unenriched curriculum")
		return cur
	}

	var resources []types.Resource
	for _, topic := range topics {
		for _, paper := range papersByTopic[topic] {
			resources = append(resources, paperResource(paper, topic))
		}
	}

	caseStudies := m.searcher.CaseStudies(ctx, topics[0], domain)
	if ctx.Err() != nil {
		log.Printf("Warning: enrichment cancelled, keeping unenriched curriculum")
		return cur
	}

	if len(resources) == 0 && len(caseStudies) == 0 {
		log.Printf("Warning: enrichment found no reference material, keeping curriculum as assembled")
		return cur
	}

	// Commit all appends onto a deep copy in one step
	enriched := cur.Clone()
	enriched.Resources = append(enriched.Resources, resources...)
	for _, paper := range caseStudies {
		enriched.CaseStudies = append(enriched.CaseStudies, paperCaseStudy(paper))
	}
	return enriched
}

func paperResource(paper scholar.Paper, topic string) types.Resource {
	title := paper.Title
	if paper.Year > 0 {
		title = fmt.Sprintf("%s (%s, %d)", paper.Title, paper.Authors, paper.Year)
	} else if paper.Authors != "" && paper.Authors != "Unknown" {
		title = fmt.Sprintf("%s (%s)", paper.Title, paper.Authors)
	}

	url := paper.URL
	if paper.PDFURL != "" {
		url = paper.PDFURL
	}

	return types.Resource{
		Type:  "paper",
		Title: title,
		URL:   url,
		Topic: topic,
	}
}

func paperCaseStudy(paper scholar.Paper) types.CaseStudy {
	description := paper.Abstract
	if description == "" {
		description = fmt.Sprintf("Published research: %s", paper.Title)
	}

	outcomes := []string{"Practical application"}
	if paper.Venue != "" {
		outcomes = append(outcomes, fmt.Sprintf("Published in %s", paper.Venue))
	}

	return types.CaseStudy{
		Title:            paper.Title,
		Description:      description,
		LearningOutcomes: outcomes,
	}
}
