package analysis

import (
	"fmt"

	"niftycli/internal/config"
	"niftycli/internal/dataprocessing"
)

// Extract names used by the exporter and the HTTP surface
const (
	ExtractTopGainers    = "top_gainers"
	ExtractTopLosers     = "top_losers"
	ExtractBelowHigh     = "below_52w_high"
	ExtractAboveLow      = "above_52w_low"
	ExtractTop30DReturns = "top_30d_returns"
)

// MarketSummary holds the five extracts of one pipeline run
type MarketSummary struct {
	TopGainers    []dataprocessing.StockRecord `json:"top_gainers"`
	TopLosers     []dataprocessing.StockRecord `json:"top_losers"`
	BelowHigh     []dataprocessing.StockRecord `json:"below_52w_high"`
	AboveLow      []dataprocessing.StockRecord `json:"above_52w_low"`
	Top30DReturns []dataprocessing.StockRecord `json:"top_30d_returns"`
}

// Extracts returns the five extracts keyed by name, in presentation order.
// Each carries its display column: percent change for gainers/losers, last
// price for the threshold extracts, 30-day change for the returns extract.
func (s *MarketSummary) Extracts() []NamedExtract {
	return []NamedExtract{
		{Name: ExtractTopGainers, Title: "Top Gainers", Records: s.TopGainers, ValueHeader: "PChange", Value: ByPChange},
		{Name: ExtractTopLosers, Title: "Top Losers", Records: s.TopLosers, ValueHeader: "PChange", Value: ByPChange},
		{Name: ExtractBelowHigh, Title: "Stocks 30% Below 52-Week High", Records: s.BelowHigh, ValueHeader: "LastPrice", Value: ByLastPrice},
		{Name: ExtractAboveLow, Title: "Stocks 20% Above 52-Week Low", Records: s.AboveLow, ValueHeader: "LastPrice", Value: ByLastPrice},
		{Name: ExtractTop30DReturns, Title: "Top 30-Day Returns", Records: s.Top30DReturns, ValueHeader: "Change30D", Value: ByChange30D},
	}
}

// NamedExtract pairs an extract with its stable name, display title, and the
// single value column it is presented with
type NamedExtract struct {
	Name        string
	Title       string
	Records     []dataprocessing.StockRecord
	ValueHeader string
	Value       Field
}

// Summarize computes the five extracts from a cleaned RecordSet. The input
// is never mutated; each extract is a fresh sequence. With the default
// configuration this reproduces the standard daily summary: five records per
// extract, 0.7 and 1.2 threshold multipliers.
func Summarize(rs *dataprocessing.RecordSet, cfg config.AnalysisConfig) (*MarketSummary, error) {
	records := rs.Records()
	n := cfg.ExtractSize

	gainers, err := TopN(records, ByPChange, n)
	if err != nil {
		return nil, fmt.Errorf("top gainers: %w", err)
	}

	losers, err := BottomN(records, ByPChange, n)
	if err != nil {
		return nil, fmt.Errorf("top losers: %w", err)
	}

	belowHigh, err := BelowHighExtract(records, cfg.BelowHighThreshold, n)
	if err != nil {
		return nil, fmt.Errorf("below-high extract: %w", err)
	}

	aboveLow, err := AboveLowExtract(records, cfg.AboveLowThreshold, n)
	if err != nil {
		return nil, fmt.Errorf("above-low extract: %w", err)
	}

	top30d, err := TopN(records, ByChange30D, n)
	if err != nil {
		return nil, fmt.Errorf("30-day returns: %w", err)
	}

	return &MarketSummary{
		TopGainers:    gainers,
		TopLosers:     losers,
		BelowHigh:     belowHigh,
		AboveLow:      aboveLow,
		Top30DReturns: top30d,
	}, nil
}
