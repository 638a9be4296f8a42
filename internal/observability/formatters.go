// Package observability provides the structured logger plus formatted
// output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-match/internal/fairness"
	"github.com/jonathan/talent-match/internal/types"
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

// PrintRequirement outputs a human-readable summary of a project requirement.
func (p *Printer) PrintRequirement(req *types.ProjectRequirement) {
	if req == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", req.Title))
	sb.WriteString(fmt.Sprintf("Type:     %s  Urgency: %s\n", req.ProjectType, req.Urgency))
	sb.WriteString(fmt.Sprintf("Budget:   %.0f-%.0f %s/h\n", req.Budget.Min, req.Budget.Max, req.Budget.Currency))
	sb.WriteString("\n")

	if len(req.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(req.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := req.RequiredSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s", s.Name))
			if s.MinLevel != "" {
				sb.WriteString(fmt.Sprintf(" (%s+)", s.MinLevel))
			}
			sb.WriteString("\n")
		}
		if len(req.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(req.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(req.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", req.PreferredSkills[i].Name))
		}
		if len(req.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(req.PreferredSkills)-3))
		}
	}

	p.printBox("PROJECT REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the top N generated matches with scores and reasons.
func (p *Printer) PrintMatches(matches []types.GeneratedMatch) {
	if len(matches) == 0 {
		p.printBox("GENERATED MATCHES", "No candidates matched.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", m.Score.Rank, m.Score.TalentID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Confidence: %.2f\n", m.Score.TotalScore, m.Score.Confidence))
		if len(m.Score.Reasons) > 0 {
			reason := m.Score.Reasons[0]
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reason))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-maxItemsToShow))
	}

	p.printBox("GENERATED MATCHES", sb.String())
}

// PrintBiasReport outputs the fairness audit findings.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBiasReport(report fairness.Report) {
	if report.Severity == fairness.SeverityNone {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO FAIRNESS FINDINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Severity: %s  Adjusted: %d\n\n", report.Severity, report.AdjustedCount))

	for _, c := range report.Checks {
		if !c.Triggered {
			continue
		}
		detail := c.Detail
		if len(detail) > 45 {
			detail = detail[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", c.Name, c.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", detail))
	}

	for _, r := range report.Recommendations {
		if len(r) > 50 {
			r = r[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("→ %s\n", r))
	}

	p.printBox("FAIRNESS AUDIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatistics outputs the aggregate match statistics of a requirement.
func (p *Printer) PrintStatistics(stats *types.MatchStatistics) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matches:       %d\n", stats.TotalMatches))
	sb.WriteString(fmt.Sprintf("Average score: %.2f\n", stats.AverageScore))
	sb.WriteString(fmt.Sprintf("Response rate: %.0f%%\n", stats.ResponseRate*100))

	if len(stats.StatusBreakdown) > 0 {
		sb.WriteString("\nStatus breakdown:\n")
		for _, status := range []types.MatchStatus{
			types.StatusPending, types.StatusViewed, types.StatusInterested,
			types.StatusNotInterested, types.StatusContacted, types.StatusHired,
		} {
			if n := stats.StatusBreakdown[status]; n > 0 {
				sb.WriteString(fmt.Sprintf("  %-15s %d\n", status, n))
			}
		}
	}

	if len(stats.TopSkillMatches) > 0 {
		sb.WriteString("\nTop matched skills:\n")
		count := min(len(stats.TopSkillMatches), 3)
		for i := 0; i < count; i++ {
			f := stats.TopSkillMatches[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", f.Skill, f.Count))
		}
	}

	p.printBox("MATCH STATISTICS", strings.TrimSuffix(sb.String(), "\n"))
}
