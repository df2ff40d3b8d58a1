package analysis

import (
	"niftycli/internal/dataprocessing"
)

// BelowHighExtract selects stocks trading well below their yearly high:
// lastPrice <= threshold * high52week (inclusive), then the n highest by
// last price among the qualifiers. An empty qualifying subset is not an
// error, it yields an empty extract.
func BelowHighExtract(records []dataprocessing.StockRecord, threshold float64, n int) ([]dataprocessing.StockRecord, error) {
	filtered := filter(records, func(r dataprocessing.StockRecord) bool {
		return r.LastPrice <= threshold*r.High52Week
	})
	return TopN(filtered, ByLastPrice, n)
}

// AboveLowExtract selects stocks trading well above their yearly low:
// lastPrice >= threshold * low52week (inclusive), then the n lowest by last
// price among the qualifiers. Ranking by last price rather than by distance
// to the low is deliberate; it mirrors the established summary exactly.
func AboveLowExtract(records []dataprocessing.StockRecord, threshold float64, n int) ([]dataprocessing.StockRecord, error) {
	filtered := filter(records, func(r dataprocessing.StockRecord) bool {
		return r.LastPrice >= threshold*r.Low52Week
	})
	return BottomN(filtered, ByLastPrice, n)
}

// filter returns the records passing the predicate, preserving source order
func filter(records []dataprocessing.StockRecord, keep func(dataprocessing.StockRecord) bool) []dataprocessing.StockRecord {
	out := make([]dataprocessing.StockRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
