package dataprocessing

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical field names used throughout analysis
const (
	FieldSymbol     = "symbol"
	FieldPChange    = "pChange"
	FieldLastPrice  = "lastPrice"
	FieldHigh52Week = "high52week"
	FieldLow52Week  = "low52week"
	FieldChange30D  = "change30d"
)

// DefaultColumnMap maps the raw NSE header names to canonical field names.
// Raw headers are compared after trimming and collapsing internal whitespace,
// so the export's "30 D   %CHNG" header (repeated internal spaces) still
// matches its entry here.
var DefaultColumnMap = map[string]string{
	"SYMBOL":     FieldSymbol,
	"%CHNG":      FieldPChange,
	"LTP":        FieldLastPrice,
	"52W H":      FieldHigh52Week,
	"52W L":      FieldLow52Week,
	"30 D %CHNG": FieldChange30D,
}

// canonicalFields lists every field a record needs, in display order
var canonicalFields = []string{
	FieldSymbol,
	FieldPChange,
	FieldLastPrice,
	FieldHigh52Week,
	FieldLow52Week,
	FieldChange30D,
}

// numericFields are the canonical fields that normalization must coerce
var numericFields = []string{
	FieldPChange,
	FieldLastPrice,
	FieldHigh52Week,
	FieldLow52Week,
	FieldChange30D,
}

// SchemaError is fatal to a load: one or more canonical columns could not be
// located after header translation, so no dataset can be produced at all.
type SchemaError struct {
	Missing []string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// columnIndices maps canonical field names to their column position
type columnIndices map[string]int

// normalizeHeader trims surrounding whitespace and collapses internal runs of
// whitespace to a single space
func normalizeHeader(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	return strings.Join(strings.Fields(raw), " ")
}

// mapColumns translates raw header cells through the column map and locates
// every canonical field. The first matching column wins when a raw header
// repeats. Returns a SchemaError naming each canonical field that is absent
// after translation.
func mapColumns(header []string, columnMap map[string]string) (columnIndices, error) {
	indices := make(columnIndices, len(canonicalFields))

	for i, raw := range header {
		canonical, ok := columnMap[normalizeHeader(raw)]
		if !ok {
			continue
		}
		if _, seen := indices[canonical]; seen {
			continue
		}
		indices[canonical] = i
	}

	var missing []string
	for _, field := range canonicalFields {
		if _, ok := indices[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}

	return indices, nil
}
