// Command scraper downloads the current Nifty-50 equity CSV from the NSE
// live market page into the downloads directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"niftycli/internal/config"
	"niftycli/internal/fetch"
	"niftycli/internal/infrastructure"
)

func main() {
	var logger *slog.Logger
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n", r)
			fmt.Printf("Stack trace:\n%s\n", debug.Stack())
			if logger != nil {
				logger.Error("scraper panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
			os.Exit(1)
		}
	}()

	outDir := flag.String("out", "", "directory to save the download (defaults to data/downloads relative to executable)")
	headless := flag.Bool("headless", true, "run browser headless")
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

	downloadDir := *outDir
	if downloadDir == "" {
		downloadDir = paths.DownloadsDir
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Scrape.Headless = *headless

	logCfg := cfg.Logging
	logCfg.FilePath = paths.GetLogPath("scraper.log")
	logger = infrastructure.MustInitializeLogger(logCfg)
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "starting download",
		slog.String("url", cfg.Scrape.URL),
		slog.String("out_dir", downloadDir),
		slog.Bool("headless", cfg.Scrape.Headless))

	fetcher := fetch.NewFetcher(cfg.Scrape, downloadDir, logger)
	path, err := fetcher.Download(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "download failed", slog.String("error", err.Error()))
		fmt.Printf("Error: download failed: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "download complete", slog.String("file", path))
	fmt.Printf("Downloaded: %s\n", path)
}
