// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillbridge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeSummary outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintResumeSummary(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:       %s\n", resume.Filename))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", len(resume.Skills)))
	sb.WriteString(fmt.Sprintf("Experience: %d entries\n", len(resume.Experience)))
	sb.WriteString(fmt.Sprintf("Education:  %d entries", len(resume.Education)))

	if len(resume.Skills) > 0 {
		count := min(len(resume.Skills), maxItemsToShow)
		sb.WriteString("\n\nTop skills:\n")
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", resume.Skills[i]))
		}
		if len(resume.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more", len(resume.Skills)-maxItemsToShow))
		}
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapAnalysis outputs matched and missing skills with the confidence score.
func (p *Printer) PrintGapAnalysis(analysis *types.GapAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Confidence: %.2f%%\n", analysis.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("Matched:    %d  Missing: %d\n", len(analysis.MatchedSkills), len(analysis.MissingSkills)))

	if len(analysis.TopPriorityGaps) > 0 {
		sb.WriteString("\nTop priority gaps:\n")
		for _, g := range analysis.TopPriorityGaps {
			sb.WriteString(fmt.Sprintf("  #%d %s (%s)\n", g.Priority, g.Skill, g.Importance))
		}
	}

	if analysis.Notes != "" {
		sb.WriteString("\n" + analysis.Notes)
	}

	p.printBox("GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCurriculum outputs the curriculum outline: modules, phases and milestones.
func (p *Printer) PrintCurriculum(cur *types.Curriculum) {
	if cur == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", cur.Title))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", cur.EstimatedDuration))
	sb.WriteString("\nModules:\n")

	count := min(len(cur.Modules), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := cur.Modules[i]
		sb.WriteString(fmt.Sprintf("  %s [%s, %s]\n", m.Title, m.Difficulty, m.EstimatedDuration))
	}
	if len(cur.Modules) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cur.Modules)-maxItemsToShow))
	}

	if len(cur.Phases) > 0 {
		sb.WriteString("\nPhases:\n")
		for _, phase := range cur.Phases {
			sb.WriteString(fmt.Sprintf("  %d. %s (%d modules)\n", phase.PhaseNumber, phase.PhaseName, len(phase.Modules)))
		}
	}

	if len(cur.Milestones) > 0 {
		sb.WriteString("\nMilestones:\n")
		for _, ms := range cur.Milestones {
			sb.WriteString(fmt.Sprintf("  Week %d: %s\n", ms.Week, ms.Checkpoint))
		}
	}

	if len(cur.Resources) > 0 || len(cur.CaseStudies) > 0 {
		sb.WriteString(fmt.Sprintf("\nResources: %d  Case studies: %d", len(cur.Resources), len(cur.CaseStudies)))
	}

	p.printBox("TRAINING CURRICULUM", strings.TrimSuffix(sb.String(), "\n"))
}
