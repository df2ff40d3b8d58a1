package dataprocessing

// StockRecord is one row of the cleaned dataset. All numeric fields are
// finite; rows that could not be fully parsed never become records.
// High52Week >= LastPrice >= Low52Week is expected but not enforced, the
// exchange export is occasionally inconsistent and downstream filters
// tolerate that.
type StockRecord struct {
	Symbol     string  `json:"symbol"`
	PChange    float64 `json:"p_change"`
	LastPrice  float64 `json:"last_price"`
	High52Week float64 `json:"high_52_week"`
	Low52Week  float64 `json:"low_52_week"`
	Change30D  float64 `json:"change_30d"`
}

// RecordSet is the ordered, cleaned dataset produced by a single load.
// Insertion order equals source row order after invalid rows were dropped.
// A RecordSet is never updated in place; a new input file means a new load.
type RecordSet struct {
	records []StockRecord
	dropped int
}

// NewRecordSet builds a RecordSet from already-cleaned records.
// Exposed for tests and for callers that assemble records by hand.
func NewRecordSet(records []StockRecord) *RecordSet {
	return &RecordSet{records: records}
}

// Records returns the cleaned rows in source order. Callers must treat the
// returned slice as read-only; ranking and filtering copy before sorting.
func (rs *RecordSet) Records() []StockRecord {
	return rs.records
}

// Len returns the number of surviving rows
func (rs *RecordSet) Len() int {
	return len(rs.records)
}

// Dropped returns the number of source rows silently excluded during
// normalization. Only this aggregate is observable; individual cell
// failures are not errors.
func (rs *RecordSet) Dropped() int {
	return rs.dropped
}
