// Command datagen writes a synthetic fleet dataset, producing the five
// source CSV files the analyzer consumes. Generation is deterministic
// for a given seed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fleetcli/internal/config"
	"fleetcli/internal/datagen"
	"fleetcli/internal/exporter"
	"fleetcli/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		outDir  = flag.String("out", "data", "directory for the generated CSV files")
		vessels = flag.Int("vessels", 50, "number of vessels")
		records = flag.Int("records", 5000, "number of navigation records")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  "info",
		Output: "console",
	})
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		return 1
	}

	paths, err := config.NewPaths(config.PathsConfig{
		DataDir:    *outDir,
		ReportsDir: *outDir,
		LogsDir:    *outDir,
	})
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		return 1
	}
	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		return 1
	}

	gen := datagen.NewGenerator(*seed, *vessels, *records, datagen.WithLogger(logger))
	tables := gen.Generate()

	if err := exporter.NewCSVWriter(paths).WriteSourceTables(tables); err != nil {
		logger.Error("failed to write dataset", "error", err)
		return 1
	}

	fmt.Printf("Generated %d vessels, %d navigation records in %s\n",
		len(tables.Vessels), len(tables.Navigation), paths.DataDir)

	return 0
}
