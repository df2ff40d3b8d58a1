package analysis

import (
	"errors"
	"fmt"
	"sort"

	"niftycli/internal/dataprocessing"
)

// ErrInvalidRank reports a programmer-contract violation: a rank size that is
// not a positive integer.
var ErrInvalidRank = errors.New("rank size must be positive")

// Field selects the numeric ranking key from a record
type Field func(dataprocessing.StockRecord) float64

// Ranking keys for the standard extracts
var (
	ByPChange   Field = func(r dataprocessing.StockRecord) float64 { return r.PChange }
	ByLastPrice Field = func(r dataprocessing.StockRecord) float64 { return r.LastPrice }
	ByChange30D Field = func(r dataprocessing.StockRecord) float64 { return r.Change30D }
)

// TopN returns the n records with the largest key value, descending. Ties
// keep source order (the earlier record precedes an equal-valued later one).
// Short inputs return what exists; n <= 0 is an error.
func TopN(records []dataprocessing.StockRecord, key Field, n int) ([]dataprocessing.StockRecord, error) {
	return rank(records, key, n, true)
}

// BottomN returns the n records with the smallest key value, ascending,
// with the same stable tie-break and take-what-exists semantics as TopN.
func BottomN(records []dataprocessing.StockRecord, key Field, n int) ([]dataprocessing.StockRecord, error) {
	return rank(records, key, n, false)
}

func rank(records []dataprocessing.StockRecord, key Field, n int, descending bool) ([]dataprocessing.StockRecord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRank, n)
	}

	// Copy so the caller's slice (and the RecordSet behind it) stays untouched.
	sorted := make([]dataprocessing.StockRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return key(sorted[i]) > key(sorted[j])
		}
		return key(sorted[i]) < key(sorted[j])
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}
