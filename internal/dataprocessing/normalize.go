package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// missingSentinel marks a missing numeric value in the raw export
const missingSentinel = "-"

// parseNumeric coerces one raw cell to a float. The trimmed sentinel "-"
// means the value is undefined; otherwise thousands-separator commas are
// removed and the remainder parsed as a decimal number. Any parse failure
// or non-finite result also yields undefined.
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == missingSentinel {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// buildRecords converts raw data rows into StockRecords using the resolved
// column positions. A row missing any numeric value, or with an empty symbol,
// is dropped whole; no partial records survive. Returns the cleaned records
// in source order and the count of dropped rows.
func buildRecords(rows [][]string, cols columnIndices) ([]StockRecord, int) {
	records := make([]StockRecord, 0, len(rows))
	dropped := 0

	cell := func(row []string, field string) string {
		idx := cols[field]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	for _, row := range rows {
		symbol := strings.TrimSpace(cell(row, FieldSymbol))
		if symbol == "" {
			dropped++
			continue
		}

		values := make(map[string]float64, len(numericFields))
		complete := true
		for _, field := range numericFields {
			v, ok := parseNumeric(cell(row, field))
			if !ok {
				complete = false
				break
			}
			values[field] = v
		}
		if !complete {
			dropped++
			continue
		}

		records = append(records, StockRecord{
			Symbol:     symbol,
			PChange:    values[FieldPChange],
			LastPrice:  values[FieldLastPrice],
			High52Week: values[FieldHigh52Week],
			Low52Week:  values[FieldLow52Week],
			Change30D:  values[FieldChange30D],
		})
	}

	return records, dropped
}
