package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Loader reads a raw tabular export and produces a cleaned RecordSet
type Loader struct {
	logger    *slog.Logger
	columnMap map[string]string
}

// NewLoader creates a loader using the standard NSE column map
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger.With(slog.String("component", "loader")),
		columnMap: DefaultColumnMap,
	}
}

// LoadFile loads a RecordSet from a CSV or xlsx export on disk
func (l *Loader) LoadFile(ctx context.Context, path string) (*RecordSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return l.loadWorkbook(ctx, path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		return l.LoadCSV(ctx, f)
	}
}

// LoadCSV loads a RecordSet from CSV content. The first row must be the
// header line; the exchange export carries a UTF-8 BOM which is stripped
// before parsing.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader) (*RecordSet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	// Remove BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return l.build(ctx, rows)
}

// loadWorkbook loads a RecordSet from the first sheet of a workbook
func (l *Loader) loadWorkbook(ctx context.Context, path string) (*RecordSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return l.build(ctx, rows)
}

// build runs header translation and numeric normalization over raw rows
func (l *Loader) build(ctx context.Context, rows [][]string) (*RecordSet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("input has no header row")
	}

	cols, err := mapColumns(rows[0], l.columnMap)
	if err != nil {
		return nil, fmt.Errorf("header translation failed: %w", err)
	}

	records, dropped := buildRecords(rows[1:], cols)

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("source_rows", len(rows)-1),
		slog.Int("records", len(records)),
		slog.Int("dropped", dropped))

	return &RecordSet{records: records, dropped: dropped}, nil
}
