package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"niftycli/internal/config"
)

// downloadButtonID is the CSV export control on the NSE live-equity page
const downloadButtonID = "#dnldEquityStock"

// Fetcher drives a headless browser session against the NSE equity page and
// downloads the day's CSV export. It is the acquisition collaborator of the
// analysis pipeline; the pipeline itself only ever sees the downloaded file.
type Fetcher struct {
	cfg         config.ScrapeConfig
	downloadDir string
	logger      *slog.Logger
}

// NewFetcher creates a fetcher that saves downloads into downloadDir
func NewFetcher(cfg config.ScrapeConfig, downloadDir string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		cfg:         cfg,
		downloadDir: downloadDir,
		logger:      logger.With(slog.String("component", "fetcher")),
	}
}

// Download navigates to the equity page, clicks the CSV export control, and
// waits for the file to land in the download directory. Returns the path of
// the downloaded file.
func (f *Fetcher) Download(ctx context.Context) (string, error) {
	if err := os.MkdirAll(f.downloadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	before, err := snapshotCSVs(f.downloadDir)
	if err != nil {
		return "", fmt.Errorf("failed to scan download directory: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	pageCtx, cancelPage := context.WithTimeout(taskCtx, f.cfg.PageTimeout)
	defer cancelPage()

	f.logger.InfoContext(ctx, "starting acquisition",
		slog.String("url", f.cfg.URL),
		slog.Bool("headless", f.cfg.Headless))

	err = chromedp.Run(pageCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(f.downloadDir),
		timedAction("navigate", f.logger, chromedp.Navigate(f.cfg.URL)),
		chromedp.WaitVisible(downloadButtonID, chromedp.ByID),
		timedAction("click_download", f.logger, chromedp.Click(downloadButtonID, chromedp.ByID)),
	)
	if err != nil {
		return "", fmt.Errorf("browser session failed: %w", err)
	}

	path, err := f.waitForDownload(taskCtx, before)
	if err != nil {
		return "", err
	}

	f.logger.InfoContext(ctx, "CSV downloaded", slog.String("path", path))
	return path, nil
}

// waitForDownload polls the download directory until a CSV that was not in
// the before snapshot appears and has finished writing
func (f *Fetcher) waitForDownload(ctx context.Context, before map[string]time.Time) (string, error) {
	deadline := time.Now().Add(f.cfg.DownloadWait)
	limiter := rate.NewLimiter(rate.Every(f.cfg.PollInterval), 1)

	var candidate string
	var lastSize int64 = -1

	for time.Now().Before(deadline) {
		if err := limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("download wait canceled: %w", err)
		}

		name, err := newCSV(f.downloadDir, before)
		if err != nil {
			return "", err
		}
		if name == "" {
			continue
		}

		// A second sighting at the same size means Chrome finished writing
		// (in-progress downloads keep a .crdownload suffix anyway).
		path := filepath.Join(f.downloadDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if name == candidate && info.Size() == lastSize {
			return path, nil
		}
		candidate = name
		lastSize = info.Size()
	}

	return "", fmt.Errorf("no CSV appeared in %s within %s", f.downloadDir, f.cfg.DownloadWait)
}

// newCSV returns the name of a completed CSV not present in the snapshot
func newCSV(dir string, before map[string]time.Time) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read download directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		if _, existed := before[name]; existed {
			continue
		}
		return name, nil
	}

	return "", nil
}

// snapshotCSVs records the CSV files already present in the directory
func snapshotCSVs(dir string) (map[string]time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]time.Time{}, nil
		}
		return nil, err
	}

	snapshot := make(map[string]time.Time)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshot[entry.Name()] = info.ModTime()
	}

	return snapshot, nil
}

// timedAction wraps a chromedp action with duration logging
func timedAction(name string, logger *slog.Logger, act chromedp.Action) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		start := time.Now()
		err := act.Do(ctx)
		logger.Debug("browser action",
			slog.String("action", name),
			slog.Duration("took", time.Since(start)),
			slog.Bool("ok", err == nil))
		return err
	})
}
