package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	DownloadsDir  string
	ReportsDir    string
	LogsDir       string

	// Well-known report files
	SummaryJSON string
	SummaryXLSX string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are relative to the executable directory, never the current
// working directory, so the tool behaves the same wherever it is invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsFor(filepath.Dir(exe)), nil
}

// PathsFor builds the path set rooted at the given directory.
// Directory structure:
//
//	<root>/
//	  ├── data/
//	  │   ├── downloads/   (CSV files from the scraper)
//	  │   └── reports/     (generated extract files)
//	  └── logs/
func PathsFor(root string) *Paths {
	dataDir := filepath.Join(root, "data")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		ExecutableDir: root,
		DataDir:       dataDir,
		DownloadsDir:  filepath.Join(dataDir, "downloads"),
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(root, "logs"),

		SummaryJSON: filepath.Join(reportsDir, "market_summary.json"),
		SummaryXLSX: filepath.Join(reportsDir, "market_summary.xlsx"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DataDir,
		p.DownloadsDir,
		p.ReportsDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetDownloadPath returns the full path for a file in the downloads directory
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// GetReportPath returns the full path for a file in the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
