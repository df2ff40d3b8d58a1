package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"niftycli/internal/config"
	"niftycli/internal/files"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	paths     *config.Paths
	discovery *files.Discovery
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Data      *DataHealth            `json:"data,omitempty"`
}

// DataHealth reports the state of the downloaded market data
type DataHealth struct {
	Status     string    `json:"status"`
	SourceFile string    `json:"source_file,omitempty"`
	Modified   time.Time `json:"modified,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// VersionInfo represents build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		discovery: files.NewDiscovery(paths.DownloadsDir),
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns the overall application health. The service is
// healthy even without data; the data section reports availability
// separately so callers can distinguish "up" from "ready to serve".
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Data: s.dataHealth(ctx),
	}
}

// LivenessCheck reports whether the process is alive
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
	}
}

// ReadinessCheck reports whether the service can serve a summary
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Data:      s.dataHealth(ctx),
	}
	if status.Data.Status == "available" {
		status.Status = "ready"
	} else {
		status.Status = "not_ready"
	}
	return status
}

// Version returns build information
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (s *HealthService) dataHealth(ctx context.Context) *DataHealth {
	latest, err := s.discovery.LatestCSV(s.paths.DownloadsDir)
	if err != nil {
		return &DataHealth{
			Status:  "unavailable",
			Message: fmt.Sprintf("no downloaded files: %v", err),
		}
	}
	return &DataHealth{
		Status:     "available",
		SourceFile: latest.Name,
		Modified:   latest.ModTime,
	}
}
