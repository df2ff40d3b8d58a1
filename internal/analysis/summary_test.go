package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftycli/internal/config"
	"niftycli/internal/dataprocessing"
)

func summaryInput() *dataprocessing.RecordSet {
	return dataprocessing.NewRecordSet([]dataprocessing.StockRecord{
		{Symbol: "AAA", PChange: 5, LastPrice: 60, High52Week: 100, Low52Week: 10, Change30D: 12},
		{Symbol: "BBB", PChange: -4, LastPrice: 95, High52Week: 100, Low52Week: 90, Change30D: -2},
		{Symbol: "CCC", PChange: 8, LastPrice: 300, High52Week: 500, Low52Week: 100, Change30D: 20},
		{Symbol: "DDD", PChange: -1, LastPrice: 15, High52Week: 100, Low52Week: 10, Change30D: 3},
		{Symbol: "EEE", PChange: 2, LastPrice: 45, High52Week: 50, Low52Week: 30, Change30D: 7},
		{Symbol: "FFF", PChange: 11, LastPrice: 800, High52Week: 900, Low52Week: 400, Change30D: 9},
	})
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(summaryInput(), config.Default().Analysis)
	require.NoError(t, err)

	assert.Equal(t, []string{"FFF", "CCC", "AAA", "EEE", "DDD"}, symbols(summary.TopGainers))
	assert.Equal(t, []string{"BBB", "DDD", "EEE", "AAA", "CCC"}, symbols(summary.TopLosers))

	// Qualifiers for below-high: AAA (60<=70), CCC (300<=350), DDD (15<=70).
	assert.Equal(t, []string{"CCC", "AAA", "DDD"}, symbols(summary.BelowHigh))

	// Qualifiers for above-low: AAA (60>=12), DDD (15>=12), CCC (300>=120),
	// EEE (45>=36), FFF (800>=480); lowest last price first.
	assert.Equal(t, []string{"DDD", "EEE", "AAA", "CCC", "FFF"}, symbols(summary.AboveLow))

	assert.Equal(t, []string{"CCC", "AAA", "FFF", "EEE", "DDD"}, symbols(summary.Top30DReturns))
}

func TestSummarize_SmallDataset(t *testing.T) {
	rs := dataprocessing.NewRecordSet([]dataprocessing.StockRecord{
		{Symbol: "ONLY", PChange: 1, LastPrice: 10, High52Week: 20, Low52Week: 5, Change30D: 1},
	})

	summary, err := Summarize(rs, config.Default().Analysis)
	require.NoError(t, err)
	assert.Len(t, summary.TopGainers, 1)
	assert.Len(t, summary.TopLosers, 1)
}

func TestSummarize_InvalidExtractSize(t *testing.T) {
	cfg := config.Default().Analysis
	cfg.ExtractSize = 0

	_, err := Summarize(summaryInput(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRank)
}

func TestSummarize_Deterministic(t *testing.T) {
	cfg := config.Default().Analysis

	first, err := Summarize(summaryInput(), cfg)
	require.NoError(t, err)
	second, err := Summarize(summaryInput(), cfg)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestExtractsOrderAndNames(t *testing.T) {
	summary, err := Summarize(summaryInput(), config.Default().Analysis)
	require.NoError(t, err)

	extracts := summary.Extracts()
	require.Len(t, extracts, 5)
	assert.Equal(t, ExtractTopGainers, extracts[0].Name)
	assert.Equal(t, ExtractTopLosers, extracts[1].Name)
	assert.Equal(t, ExtractBelowHigh, extracts[2].Name)
	assert.Equal(t, ExtractAboveLow, extracts[3].Name)
	assert.Equal(t, ExtractTop30DReturns, extracts[4].Name)
}
