// Package services contains the business layer between the HTTP handlers
// and the data pipeline.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"niftycli/internal/analysis"
	"niftycli/internal/config"
	"niftycli/internal/dataprocessing"
	"niftycli/internal/files"
)

// ErrNoData is returned when no source file has been downloaded yet
var ErrNoData = errors.New("no market data file available")

// ErrUnknownExtract is returned when a requested extract name does not exist
var ErrUnknownExtract = errors.New("unknown extract")

// SummaryService computes the market summary from the newest downloaded
// file. Results are cached per source file and recomputed only when a newer
// file appears.
type SummaryService struct {
	paths     *config.Paths
	cfg       config.AnalysisConfig
	loader    *dataprocessing.Loader
	discovery *files.Discovery
	logger    *slog.Logger
	metrics   *PipelineMetrics

	mu         sync.RWMutex
	cached     *analysis.MarketSummary
	cachedPath string
	cachedMod  time.Time
}

// NewSummaryService creates a summary service
func NewSummaryService(paths *config.Paths, cfg config.AnalysisConfig, logger *slog.Logger) *SummaryService {
	return &SummaryService{
		paths:     paths,
		cfg:       cfg,
		loader:    dataprocessing.NewLoader(logger),
		discovery: files.NewDiscovery(paths.DownloadsDir),
		logger:    logger.With(slog.String("service", "summary")),
	}
}

// SetMetrics attaches pipeline metrics observed on every recomputation
func (s *SummaryService) SetMetrics(metrics *PipelineMetrics) {
	s.metrics = metrics
}

// Summary returns the market summary for the newest downloaded file,
// recomputing it if the file changed since the last call.
func (s *SummaryService) Summary(ctx context.Context) (*analysis.MarketSummary, error) {
	latest, err := s.discovery.LatestCSV(s.paths.DownloadsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	s.mu.RLock()
	if s.cached != nil && s.cachedPath == latest.Path && s.cachedMod.Equal(latest.ModTime) {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	return s.refresh(ctx, latest)
}

// SummaryForFile computes the summary for a specific source file, bypassing
// discovery and the cache.
func (s *SummaryService) SummaryForFile(ctx context.Context, path string) (*analysis.MarketSummary, error) {
	records, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return analysis.Summarize(records, s.cfg)
}

// Extract returns a single named extract from the current summary
func (s *SummaryService) Extract(ctx context.Context, name string) (*analysis.NamedExtract, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	for _, extract := range summary.Extracts() {
		if extract.Name == name {
			return &extract, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownExtract, name)
}

// SourceFile reports the file the current summary is based on
func (s *SummaryService) SourceFile(ctx context.Context) (files.FileInfo, error) {
	return s.discovery.LatestCSV(s.paths.DownloadsDir)
}

func (s *SummaryService) refresh(ctx context.Context, source files.FileInfo) (*analysis.MarketSummary, error) {
	start := time.Now()

	records, err := s.loader.LoadFile(ctx, source.Path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source.Path, err)
	}

	summary, err := analysis.Summarize(records, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("summarizing %s: %w", source.Path, err)
	}

	if s.metrics != nil {
		s.metrics.observe(records.Dropped(), time.Since(start).Seconds())
	}

	s.mu.Lock()
	s.cached = summary
	s.cachedPath = source.Path
	s.cachedMod = source.ModTime
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "summary refreshed",
		slog.String("source", source.Path),
		slog.Time("modified", source.ModTime),
	)

	return summary, nil
}
