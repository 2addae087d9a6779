package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source table file names. These match the reference dataset layout and
// are the names both the loader and the synthetic generator use.
const (
	VesselSpecsFile = "vessel_specifications.csv"
	NavigationFile  = "navigation_logs.csv"
	EnvironmentFile = "environmental_conditions.csv"
	FuelFile        = "fuel_consumption.csv"
	MaintenanceFile = "maintenance_incidents.csv"
)

// Output file names produced by a pipeline run.
const (
	IntegratedDataFile   = "integrated_data.csv"
	VesselMetricsFile    = "vessel_metrics.csv"
	DataSummaryFile      = "data_summary.csv"
	ExcelReportFile      = "analytics_report.xlsx"
	ExecutiveSummaryFile = "executive_summary.txt"
)

// Paths centralizes filesystem locations for a pipeline run. All relative
// directories are resolved against the working directory.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths builds a Paths from configuration, resolving relative
// directories to absolute ones.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	p := &Paths{
		DataDir:    cfg.DataDir,
		ReportsDir: cfg.ReportsDir,
		LogsDir:    cfg.LogsDir,
	}

	for _, dir := range []*string{&p.DataDir, &p.ReportsDir, &p.LogsDir} {
		if filepath.IsAbs(*dir) {
			continue
		}
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", *dir, err)
		}
		*dir = abs
	}

	return p, nil
}

// EnsureDirectories creates the data, reports, and logs directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDataPath returns the full path for a file in the data directory.
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetReportPath returns the full path for a file in the reports directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a file in the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
