// Package report renders the market summary for the terminal: one styled
// table per extract and a bar chart contrasting gainers with losers.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"niftycli/internal/analysis"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6B7280"))

	gainerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	loserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)
)

// Printer renders summary tables to a writer
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintSummary renders every extract as a titled two-column table
func (p *Printer) PrintSummary(summary *analysis.MarketSummary) {
	for _, extract := range summary.Extracts() {
		p.printExtract(extract)
	}
}

func (p *Printer) printExtract(extract analysis.NamedExtract) {
	fmt.Fprintln(p.w, titleStyle.Render(extract.Title))
	fmt.Fprintln(p.w, headerStyle.Render(fmt.Sprintf("%-14s %12s", "Symbol", extract.ValueHeader)))

	if len(extract.Records) == 0 {
		fmt.Fprintln(p.w, emptyStyle.Render("no qualifying stocks"))
		return
	}

	for _, r := range extract.Records {
		style := gainerStyle
		if extract.Value(r) < 0 {
			style = loserStyle
		}
		fmt.Fprintln(p.w, style.Render(fmt.Sprintf("%-14s %12.2f", r.Symbol, extract.Value(r))))
	}
}
