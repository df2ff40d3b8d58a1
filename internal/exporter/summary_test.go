package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"niftycli/internal/analysis"
	"niftycli/internal/config"
	"niftycli/internal/dataprocessing"
)

func testSummary() *analysis.MarketSummary {
	gainer := dataprocessing.StockRecord{Symbol: "UP", PChange: 4.2, LastPrice: 120, High52Week: 200, Low52Week: 80, Change30D: 9.5}
	loser := dataprocessing.StockRecord{Symbol: "DOWN", PChange: -3.1, LastPrice: 55, High52Week: 90, Low52Week: 40, Change30D: -1.0}

	return &analysis.MarketSummary{
		TopGainers:    []dataprocessing.StockRecord{gainer},
		TopLosers:     []dataprocessing.StockRecord{loser},
		BelowHigh:     []dataprocessing.StockRecord{loser},
		AboveLow:      []dataprocessing.StockRecord{gainer},
		Top30DReturns: []dataprocessing.StockRecord{gainer},
	}
}

func TestExport(t *testing.T) {
	paths := config.PathsFor(t.TempDir())
	exp := NewSummaryExporter(paths, nil)

	require.NoError(t, exp.Export(context.Background(), testSummary()))

	// One CSV per extract, projected to its display column pair.
	data, err := os.ReadFile(paths.GetReportPath("top_gainers.csv"))
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Symbol", "PChange"}, rows[0])
	assert.Equal(t, []string{"UP", "4.20"}, rows[1])

	data, err = os.ReadFile(paths.GetReportPath("below_52w_high.csv"))
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Symbol", "LastPrice"}, rows[0])
	assert.Equal(t, []string{"DOWN", "55.00"}, rows[1])

	data, err = os.ReadFile(paths.GetReportPath("top_30d_returns.csv"))
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Symbol", "Change30D"}, rows[0])
	assert.Equal(t, []string{"UP", "9.50"}, rows[1])

	// Combined JSON document.
	jsonData, err := os.ReadFile(paths.SummaryJSON)
	require.NoError(t, err)
	var decoded analysis.MarketSummary
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	require.Len(t, decoded.TopGainers, 1)
	assert.Equal(t, "UP", decoded.TopGainers[0].Symbol)

	// Workbook with one sheet per extract.
	f, err := excelize.OpenFile(paths.SummaryXLSX)
	require.NoError(t, err)
	defer f.Close()
	assert.ElementsMatch(t,
		[]string{"Top Gainers", "Top Losers", "Below 52W High", "Above 52W Low", "Top 30D Returns"},
		f.GetSheetList())

	cell, err := f.GetCellValue("Top Losers", "A2")
	require.NoError(t, err)
	assert.Equal(t, "DOWN", cell)
}

func TestExport_Deterministic(t *testing.T) {
	paths := config.PathsFor(t.TempDir())
	exp := NewSummaryExporter(paths, nil)

	require.NoError(t, exp.Export(context.Background(), testSummary()))
	first, err := os.ReadFile(paths.SummaryJSON)
	require.NoError(t, err)

	require.NoError(t, exp.Export(context.Background(), testSummary()))
	second, err := os.ReadFile(paths.SummaryJSON)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
