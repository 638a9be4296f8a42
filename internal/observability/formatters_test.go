package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/fairness"
	"github.com/jonathan/talent-match/internal/types"
)

func TestPrintRequirement(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	req := &types.ProjectRequirement{
		Title:       "Payments platform rebuild",
		ProjectType: types.ProjectDevelopment,
		Urgency:     types.UrgencyHigh,
		Budget:      types.BudgetRange{Min: 60, Max: 120, Currency: "USD"},
		RequiredSkills: []types.SkillRequirement{
			{Name: "go", MinLevel: types.LevelSenior},
			{Name: "postgresql"},
		},
		PreferredSkills: []types.SkillRequirement{
			{Name: "kubernetes"},
		},
	}

	p.PrintRequirement(req)
	output := buf.String()

	assert.Contains(t, output, "PROJECT REQUIREMENT")
	assert.Contains(t, output, "Payments platform rebuild")
	assert.Contains(t, output, "go")
	assert.Contains(t, output, "senior")
	assert.Contains(t, output, "kubernetes")
}

func TestPrintRequirement_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirement(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	matches := []types.GeneratedMatch{
		{
			ID: uuid.New(),
			Score: types.MatchScore{
				TalentID:   uuid.New(),
				TotalScore: 0.91,
				Rank:       1,
				Confidence: 0.8,
				Reasons:    []string{"Strong skill match: go"},
			},
			Status: types.StatusPending,
		},
	}

	p.PrintMatches(matches)
	output := buf.String()

	assert.Contains(t, output, "GENERATED MATCHES")
	assert.Contains(t, output, "0.91")
	assert.Contains(t, output, "Strong skill match: go")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches(nil)

	assert.Contains(t, buf.String(), "No candidates matched.")
}

func TestPrintBiasReport_Clean(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBiasReport(fairness.Report{Severity: fairness.SeverityNone})

	assert.Contains(t, buf.String(), "NO FAIRNESS FINDINGS")
}

func TestPrintBiasReport_Findings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBiasReport(fairness.Report{
		Severity:      fairness.SeverityMedium,
		AdjustedCount: 2,
		Checks: []fairness.Check{
			{Name: "score_variance", Triggered: true, Severity: fairness.SeverityMedium, Detail: "spread too wide"},
			{Name: "score_clustering", Triggered: false},
		},
		Recommendations: []string{"Review the requirement's weight profile"},
	})
	output := buf.String()

	assert.Contains(t, output, "FAIRNESS AUDIT")
	assert.Contains(t, output, "score_variance")
	assert.NotContains(t, output, "score_clustering")
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStatistics(&types.MatchStatistics{
		TotalMatches: 3,
		AverageScore: 0.72,
		ResponseRate: 1.0 / 3.0,
		StatusBreakdown: map[types.MatchStatus]int{
			types.StatusPending:    2,
			types.StatusInterested: 1,
		},
		TopSkillMatches: []types.SkillFrequency{{Skill: "react", Count: 3}},
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH STATISTICS")
	assert.Contains(t, output, "0.72")
	assert.Contains(t, output, "react (3)")
}
