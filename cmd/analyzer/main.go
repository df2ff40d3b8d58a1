// Command analyzer computes the daily market summary from the newest
// downloaded CSV (or an explicit file), prints it to the terminal, and
// writes the CSV, JSON, and Excel reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"niftycli/internal/analysis"
	"niftycli/internal/config"
	"niftycli/internal/exporter"
	"niftycli/internal/infrastructure"
	"niftycli/internal/report"
	"niftycli/internal/services"
)

func main() {
	var logger *slog.Logger
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n", r)
			fmt.Printf("Stack trace:\n%s\n", debug.Stack())
			if logger != nil {
				logger.Error("analyzer panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
			os.Exit(1)
		}
	}()

	inFile := flag.String("in", "", "source CSV or Excel file (defaults to the newest download)")
	chart := flag.Bool("chart", true, "print the gainers/losers bar chart")
	export := flag.Bool("export", true, "write CSV, JSON and Excel reports")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Printf("Error: failed to initialize paths: %v\n", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Printf("Error: failed to create directories: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	logCfg.Output = "file" // keep stdout clean for the report tables
	logCfg.FilePath = paths.GetLogPath("analyzer.log")
	logger = infrastructure.MustInitializeLogger(logCfg)
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	service := services.NewSummaryService(paths, cfg.Analysis, logger)

	var summary *analysis.MarketSummary
	if *inFile != "" {
		summary, err = service.SummaryForFile(ctx, *inFile)
	} else {
		summary, err = service.Summary(ctx)
	}
	if err != nil {
		logger.ErrorContext(ctx, "analysis failed", slog.String("error", err.Error()))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printer := report.NewPrinter(os.Stdout)
	printer.PrintSummary(summary)
	if *chart {
		report.BarChart(os.Stdout, summary)
	}

	if *export {
		if err := exporter.NewSummaryExporter(paths, logger).Export(ctx, summary); err != nil {
			logger.ErrorContext(ctx, "export failed", slog.String("error", err.Error()))
			fmt.Printf("Error: export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReports written to %s\n", paths.ReportsDir)
	}
}
