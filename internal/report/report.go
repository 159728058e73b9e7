// Package report renders assessments and comparisons for the terminal.
// All functions are pure string builders; the TUI and the headless
// runner share them.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/windscout/internal/assessment"
	"github.com/kingrea/windscout/internal/compare"
	"github.com/kingrea/windscout/internal/pipeline"
	"github.com/kingrea/windscout/internal/stage"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	headingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	badStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	neutralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	recommendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true).Underline(true)
)

// RenderRun renders the whole run: both site reports, the comparison
// table, and the recommendation (or the reason it is unavailable).
func RenderRun(run pipeline.Run) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Assessment run %s", run.RunID)))
	b.WriteString("\n\n")
	for _, siteRun := range run.Sites {
		b.WriteString(RenderSiteRun(siteRun))
		b.WriteString("\n")
	}
	if run.Comparison != nil {
		b.WriteString(RenderComparison(*run.Comparison))
	} else if run.ComparisonError != "" {
		b.WriteString(badStyle.Render("Comparison unavailable: " + run.ComparisonError))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSiteRun renders one site's stage trace and assessment.
func RenderSiteRun(siteRun pipeline.SiteRun) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("▸ " + siteRun.Site))
	b.WriteString("\n")
	for _, status := range siteRun.Stages {
		b.WriteString("  ")
		b.WriteString(renderStageStatus(status))
		b.WriteString("\n")
	}
	b.WriteString(RenderAssessment(siteRun.Assessment))
	return b.String()
}

func renderStageStatus(status pipeline.StageStatus) string {
	var style lipgloss.Style
	var mark string
	switch status.Status {
	case stage.StatusCompleted:
		style, mark = goodStyle, "✓"
	case stage.StatusSkipped:
		style, mark = warnStyle, "−"
	default:
		style, mark = badStyle, "✗"
	}
	line := fmt.Sprintf("%s %-12s %s", mark, status.ID, status.Message)
	if status.Error != "" {
		line = fmt.Sprintf("%s %-12s %s", mark, status.ID, status.Error)
	}
	return style.Render(line)
}

// RenderAssessment renders the accumulated sections for one site.
func RenderAssessment(a *assessment.Assessment) string {
	if a == nil {
		return ""
	}
	var b strings.Builder
	if a.Coordinates != nil {
		b.WriteString(row("Coordinates", a.Coordinates.String()))
	}
	if a.Imagery != nil {
		b.WriteString(row("Viability", string(a.Imagery.Viability)))
	}
	if a.Sentiment != nil {
		b.WriteString(row("Sentiment", tallyLine(a.Sentiment)))
		b.WriteString(row("Lawsuits", fmt.Sprintf("%t", a.Sentiment.LawsuitsFound)))
	}
	if a.Land != nil {
		b.WriteString(row("Ownership", fmt.Sprintf("%s (%s acquisition)", a.Land.Ownership, a.Land.AcquisitionDifficulty)))
	}
	if a.Environment != nil {
		b.WriteString(row("Findings", strings.Join(a.Environment.KeyFindings, "; ")))
	}
	if a.Grid != nil {
		b.WriteString(row("Grid", fmt.Sprintf("%.1f away, cost %.0f", a.Grid.Distance, a.Grid.EstimatedCost)))
	}
	for _, failure := range a.Failures {
		b.WriteString("  ")
		b.WriteString(badStyle.Render(fmt.Sprintf("! %s: %s", failure.StageID, failure.Err)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderComparison renders the side-by-side table and recommendation.
func RenderComparison(cmp compare.Comparison) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("▸ Comparison"))
	b.WriteString("\n")
	left, right := cmp.Sides[0], cmp.Sides[1]
	width := maxInt(len(left.Site), 12)
	header := fmt.Sprintf("  %-22s %-*s  %s", "", width, left.Site, right.Site)
	b.WriteString(neutralStyle.Render(header))
	b.WriteString("\n")
	rows := []struct {
		label         string
		first, second string
	}{
		{"viability", string(left.Viability), string(right.Viability)},
		{"grid cost", fmt.Sprintf("%.0f", left.GridCost), fmt.Sprintf("%.0f", right.GridCost)},
		{"grid distance", fmt.Sprintf("%.1f", left.GridDistance), fmt.Sprintf("%.1f", right.GridDistance)},
		{"ownership", left.Ownership, right.Ownership},
		{"acquisition", left.Acquisition, right.Acquisition},
		{"sentiment balance", fmt.Sprintf("%+d", left.SentimentBalance), fmt.Sprintf("%+d", right.SentimentBalance)},
		{"lawsuits", fmt.Sprintf("%t", left.LawsuitsFound), fmt.Sprintf("%t", right.LawsuitsFound)},
	}
	for _, entry := range rows {
		line := fmt.Sprintf("  %-22s %-*s  %s", entry.label, width, entry.first, entry.second)
		b.WriteString(labelStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(recommendStyle.Render(fmt.Sprintf("Recommendation: %s", cmp.Recommendation.Site)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  decided on %s: %s", cmp.Recommendation.Dimension, cmp.Recommendation.Rationale)))
	b.WriteString("\n")
	return b.String()
}

func row(label, value string) string {
	return "  " + labelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + neutralStyle.Render(value) + "\n"
}

func tallyLine(s *assessment.SentimentSection) string {
	labels := s.Labels()
	if len(labels) == 0 {
		return "no posts"
	}
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%d %s", s.Tally[label], label))
	}
	return strings.Join(parts, ", ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
