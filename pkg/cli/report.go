package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studyforge/studyforge/pkg/review"
)

// Theme defines the color scheme for terminal rendering.
type Theme struct {
	Pass    lipgloss.Color
	Error   lipgloss.Color
	Suggest lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Pass:    lipgloss.Color("#00ff9f"),
	Error:   lipgloss.Color("#ff5c57"),
	Suggest: lipgloss.Color("#f3f99d"),
	Dim:     lipgloss.Color("#6e7681"),
}

type reportStyles struct {
	header  lipgloss.Style
	pass    lipgloss.Style
	errMark lipgloss.Style
	sugMark lipgloss.Style
	dim     lipgloss.Style
}

func newReportStyles(t Theme) reportStyles {
	return reportStyles{
		header:  lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(t.Pass),
		errMark: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		sugMark: lipgloss.NewStyle().Foreground(t.Suggest),
		dim:     lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// RenderReport renders a review report for the terminal: failing errors
// first, then failing suggestions, then the passing rules dimmed.
func RenderReport(r *review.Report, t Theme) string {
	s := newReportStyles(t)
	var b strings.Builder

	if r.Valid {
		b.WriteString(s.header.Render("Review: ") + s.pass.Render("valid"))
	} else {
		b.WriteString(s.header.Render("Review: ") + s.errMark.Render("invalid"))
	}
	b.WriteString("\n")

	writeGroup := func(mark lipgloss.Style, marker string, findings []review.Finding) {
		for _, f := range findings {
			fmt.Fprintf(&b, "%s %s: %s\n", mark.Render(marker), f.Rule, f.Message)
			if f.Remediation != "" {
				fmt.Fprintf(&b, "    %s\n", s.dim.Render(f.Remediation))
			}
		}
	}

	writeGroup(s.errMark, "✗", r.Failed(review.SeverityError))
	writeGroup(s.sugMark, "△", r.Failed(review.SeveritySuggestion))

	for _, f := range r.Findings {
		if f.Passed {
			fmt.Fprintf(&b, "%s %s\n", s.pass.Render("✓"), s.dim.Render(f.Rule))
		}
	}
	return b.String()
}
