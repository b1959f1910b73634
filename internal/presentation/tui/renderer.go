package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/bonsono/sonolog/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses a dark theme by default, but could be configurable.
func NewRenderer() func(string) (string, error) {
	// Automatically detect light/dark background
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ReportMarkdown lays out a final report as a markdown document for
// terminal rendering.
func ReportMarkdown(report domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	fmt.Fprintf(&b, "**Classificação:** %s\n\n", report.Severity.Label())
	fmt.Fprintf(&b, "%s\n", report.Summary)

	if len(report.Findings) > 0 {
		b.WriteString("\n## Achados\n\n")
		for _, finding := range report.Findings {
			fmt.Fprintf(&b, "- %s\n", finding)
		}
	}

	b.WriteString("\n## Recomendações\n\n")
	for i, rec := range report.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	return b.String()
}

// QuestionMarkdown lays out a question with its progress and options.
func QuestionMarkdown(prompt string, step, total int, options []domain.Option) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### Pergunta %d de %d\n\n", step, total)
	fmt.Fprintf(&b, "%s\n", prompt)

	if len(options) > 0 {
		b.WriteString("\n")
		for i, opt := range options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Label)
		}
	}

	return b.String()
}
