package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"niftycli/internal/analysis"
	"niftycli/internal/config"
)

// SummaryExporter writes every extract of a market summary to the reports
// directory
type SummaryExporter struct {
	paths  *config.Paths
	csv    *CSVWriter
	logger *slog.Logger
}

// NewSummaryExporter creates a summary exporter
func NewSummaryExporter(paths *config.Paths, logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{
		paths:  paths,
		csv:    NewCSVWriter(logger),
		logger: logger.With(slog.String("component", "summary_exporter")),
	}
}

// Export writes the five extract CSVs concurrently, then the combined JSON
// document and the summary workbook.
func (e *SummaryExporter) Export(ctx context.Context, summary *analysis.MarketSummary) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, extract := range summary.Extracts() {
		extract := extract
		g.Go(func() error {
			path := e.paths.GetReportPath(extract.Name + ".csv")
			headers, records := projectExtract(extract)
			if err := e.csv.WriteSimpleCSV(path, headers, records); err != nil {
				return fmt.Errorf("export %s: %w", extract.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := e.writeJSON(summary); err != nil {
		return err
	}

	if err := e.writeWorkbook(summary); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "summary exported",
		slog.String("reports_dir", e.paths.ReportsDir))
	return nil
}

// projectExtract reduces an extract to its display column pair
func projectExtract(extract analysis.NamedExtract) ([]string, [][]string) {
	headers := []string{"Symbol", extract.ValueHeader}

	records := make([][]string, 0, len(extract.Records))
	for _, r := range extract.Records {
		records = append(records, []string{r.Symbol, formatFloat(extract.Value(r))})
	}

	return headers, records
}

// writeJSON writes the complete summary as one JSON document
func (e *SummaryExporter) writeJSON(summary *analysis.MarketSummary) error {
	path := e.paths.SummaryJSON
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary JSON: %w", err)
	}

	return nil
}

// writeWorkbook writes the summary workbook, one sheet per extract
func (e *SummaryExporter) writeWorkbook(summary *analysis.MarketSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, extract := range summary.Extracts() {
		sheet := sheetName(extract.Name)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		headers, records := projectExtract(extract)
		headerRow := toInterfaces(headers)
		if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
		for j, record := range records {
			row := toInterfaces(record)
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d: %w", j, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(e.paths.SummaryXLSX), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(e.paths.SummaryXLSX); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// sheetName maps an extract name to a sheet title within Excel's 31-char limit
func sheetName(name string) string {
	switch name {
	case analysis.ExtractTopGainers:
		return "Top Gainers"
	case analysis.ExtractTopLosers:
		return "Top Losers"
	case analysis.ExtractBelowHigh:
		return "Below 52W High"
	case analysis.ExtractAboveLow:
		return "Above 52W Low"
	case analysis.ExtractTop30DReturns:
		return "Top 30D Returns"
	default:
		return name
	}
}

func toInterfaces(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
