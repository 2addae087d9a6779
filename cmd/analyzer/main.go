// Command analyzer runs the full fleet analytics pipeline: it loads (or
// generates) the five source datasets, integrates them into a fact
// table, derives per-record scores, aggregates per-vessel metrics, and
// exports CSV, Excel, and text reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fleetcli/internal/config"
	"fleetcli/internal/infrastructure"
	"fleetcli/internal/operations"
	"fleetcli/internal/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFile = flag.String("config", "", "path to YAML configuration file")
		dataDir    = flag.String("data", "", "source data directory (overrides config)")
		outDir     = flag.String("out", "", "report output directory (overrides config)")
		generate   = flag.Bool("generate", false, "generate a synthetic dataset instead of loading existing files")
		vessels    = flag.Int("vessels", 0, "number of vessels to generate (overrides config)")
		records    = flag.Int("records", 0, "number of navigation records to generate (overrides config)")
		seed       = flag.Int64("seed", 0, "random seed for generation (overrides config)")
		traces     = flag.Bool("traces", false, "emit OpenTelemetry spans to stderr")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}
	if *vessels > 0 {
		cfg.Pipeline.NumVessels = *vessels
	}
	if *records > 0 {
		cfg.Pipeline.NavRecords = *records
	}
	if *seed != 0 {
		cfg.Pipeline.Seed = *seed
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		slog.Error("failed to resolve paths", "error", err)
		return 1
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create directories", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		return 1
	}

	ctx := context.Background()

	var spanWriter io.Writer = io.Discard
	if *traces {
		spanWriter = os.Stderr
	}
	tracing, err := infrastructure.InitializeTracing(spanWriter, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tracing.Shutdown(shutdownCtx)
	}()

	fileValidator := validation.NewFileValidator(logger)
	if !*generate {
		matches, _ := filepath.Glob(filepath.Join(paths.DataDir, "*.csv"))
		if len(matches) == 0 {
			logger.Info("no source files found, generating a synthetic dataset",
				slog.String("dir", paths.DataDir))
			*generate = true
		} else if err := fileValidator.ValidateInputDirectory(paths.DataDir, "*.csv"); err != nil {
			logger.Error("input directory validation failed",
				slog.String("dir", paths.DataDir),
				slog.String("error", err.Error()))
			return 1
		}
	}
	if err := fileValidator.ValidateOutputDirectory(paths.ReportsDir); err != nil {
		logger.Error("output directory validation failed",
			slog.String("dir", paths.ReportsDir),
			slog.String("error", err.Error()))
		return 1
	}

	manager := operations.NewManager(logger, []operations.Stage{
		operations.NewSourceStage(logger, paths, cfg.Pipeline, *generate),
		operations.NewIntegrationStage(logger),
		operations.NewScoringStage(logger),
		operations.NewAggregationStage(logger, cfg.Pipeline.Workers),
		operations.NewValidationStage(logger),
		operations.NewExportStage(logger, paths, cfg.Pipeline.ExcelRowLimit),
	})

	state, err := manager.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		return 1
	}

	if state.Validation != nil && !state.Validation.OK() {
		logger.Warn("data quality validation failed; reports were still produced",
			slog.Any("issues", state.Validation.Issues))
	}

	fmt.Printf("Pipeline completed in %s\n", state.Duration().Round(time.Millisecond))
	fmt.Printf("Fact records: %d, vessels: %d\n", len(state.Facts), len(state.Metrics))
	fmt.Printf("Reports written to %s\n", paths.ReportsDir)

	return 0
}
