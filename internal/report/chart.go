package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"niftycli/internal/analysis"
	"niftycli/internal/dataprocessing"
)

// chartWidth is the maximum bar length in terminal cells
const chartWidth = 40

var chartTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7C3AED")).
	MarginTop(1)

// BarChart renders a horizontal bar chart of the session's top gainers and
// losers, gainers and losers distinguished by color. Bars are scaled to the
// largest absolute percent change in either extract.
func BarChart(w io.Writer, summary *analysis.MarketSummary) {
	gainers := summary.TopGainers
	losers := summary.TopLosers

	maxAbs := 0.0
	for _, r := range gainers {
		maxAbs = math.Max(maxAbs, math.Abs(r.PChange))
	}
	for _, r := range losers {
		maxAbs = math.Max(maxAbs, math.Abs(r.PChange))
	}
	if maxAbs == 0 {
		return
	}

	fmt.Fprintln(w, chartTitleStyle.Render("Top Gainers and Losers of the Day"))
	for _, r := range gainers {
		drawBar(w, r, maxAbs, gainerStyle)
	}
	for _, r := range losers {
		drawBar(w, r, maxAbs, loserStyle)
	}
}

func drawBar(w io.Writer, r dataprocessing.StockRecord, maxAbs float64, style lipgloss.Style) {
	length := int(math.Round(math.Abs(r.PChange) / maxAbs * chartWidth))
	if length == 0 && r.PChange != 0 {
		length = 1
	}

	bar := strings.Repeat("█", length)
	fmt.Fprintf(w, "%-14s %s %.2f%%\n", r.Symbol, style.Render(bar), r.PChange)
}
