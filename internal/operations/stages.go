package operations

import (
	"context"
	"fmt"
	"log/slog"

	"fleetcli/internal/analytics"
	"fleetcli/internal/config"
	"fleetcli/internal/datagen"
	"fleetcli/internal/dataprocessing"
	"fleetcli/internal/exporter"
	"fleetcli/internal/validation"
)

// SourceStage acquires the five source tables, either by loading CSV
// files from the data directory or by generating a synthetic dataset and
// persisting it there.
type SourceStage struct {
	logger   *slog.Logger
	paths    *config.Paths
	pipeline config.PipelineConfig
	generate bool
}

// NewSourceStage creates the source acquisition stage. When generate is
// true the stage synthesizes the dataset instead of loading it.
func NewSourceStage(logger *slog.Logger, paths *config.Paths, pipeline config.PipelineConfig, generate bool) *SourceStage {
	return &SourceStage{logger: logger, paths: paths, pipeline: pipeline, generate: generate}
}

func (s *SourceStage) ID() string   { return StageIDSource }
func (s *SourceStage) Name() string { return StageNameSource }

func (s *SourceStage) Validate(state *OperationState) error {
	return nil
}

func (s *SourceStage) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return NewCancellationError(s.ID(), err)
	}

	if s.generate {
		gen := datagen.NewGenerator(s.pipeline.Seed, s.pipeline.NumVessels, s.pipeline.NavRecords,
			datagen.WithLogger(s.logger))
		tables := gen.Generate()
		if err := exporter.NewCSVWriter(s.paths).WriteSourceTables(tables); err != nil {
			return NewExecutionError(s.ID(), err)
		}
		state.Tables = tables
		return nil
	}

	tables, err := dataprocessing.NewLoader(s.logger).LoadDirectory(s.paths.DataDir)
	if err != nil {
		return NewExecutionError(s.ID(), err)
	}
	state.Tables = tables
	return nil
}

// IntegrationStage merges the source tables into the fact table.
type IntegrationStage struct {
	logger *slog.Logger
}

func NewIntegrationStage(logger *slog.Logger) *IntegrationStage {
	return &IntegrationStage{logger: logger}
}

func (s *IntegrationStage) ID() string   { return StageIDIntegration }
func (s *IntegrationStage) Name() string { return StageNameIntegration }

func (s *IntegrationStage) Validate(state *OperationState) error {
	if state.Tables == nil {
		return NewInvalidStateError(s.ID(), "no source tables loaded")
	}
	return nil
}

func (s *IntegrationStage) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return NewCancellationError(s.ID(), err)
	}
	state.Facts = dataprocessing.NewIntegrator(s.logger).Merge(ctx, state.Tables)
	return nil
}

// ScoringStage computes the derived per-record scores on the fact table.
type ScoringStage struct {
	logger *slog.Logger
}

func NewScoringStage(logger *slog.Logger) *ScoringStage {
	return &ScoringStage{logger: logger}
}

func (s *ScoringStage) ID() string   { return StageIDScoring }
func (s *ScoringStage) Name() string { return StageNameScoring }

func (s *ScoringStage) Validate(state *OperationState) error {
	if state.Facts == nil {
		return NewInvalidStateError(s.ID(), "fact table not built")
	}
	return nil
}

func (s *ScoringStage) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return NewCancellationError(s.ID(), err)
	}
	state.Facts = analytics.NewDeriver(s.logger).Score(ctx, state.Facts)
	return nil
}

// ValidationStage runs data quality checks on the scored fact table. A
// failed check is recorded on the state and logged but does not abort
// the run, so reports are still produced for inspection.
type ValidationStage struct {
	logger *slog.Logger
}

func NewValidationStage(logger *slog.Logger) *ValidationStage {
	return &ValidationStage{logger: logger}
}

func (s *ValidationStage) ID() string   { return StageIDValidation }
func (s *ValidationStage) Name() string { return StageNameValidation }

func (s *ValidationStage) Validate(state *OperationState) error {
	if state.Facts == nil {
		return NewInvalidStateError(s.ID(), "fact table not built")
	}
	return nil
}

func (s *ValidationStage) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return NewCancellationError(s.ID(), err)
	}
	result := validation.NewDataQualityValidator(s.logger).ValidateFacts(state.Facts)
	state.Validation = &result
	return nil
}

// AggregationStage reduces the scored fact table to per-vessel metrics.
type AggregationStage struct {
	logger  *slog.Logger
	workers int
}

func NewAggregationStage(logger *slog.Logger, workers int) *AggregationStage {
	return &AggregationStage{logger: logger, workers: workers}
}

func (s *AggregationStage) ID() string   { return StageIDAggregation }
func (s *AggregationStage) Name() string { return StageNameAggregation }

func (s *AggregationStage) Validate(state *OperationState) error {
	if state.Facts == nil {
		return NewInvalidStateError(s.ID(), "fact table not built")
	}
	return nil
}

func (s *AggregationStage) Execute(ctx context.Context, state *OperationState) error {
	metrics, err := analytics.NewAggregator(s.logger, s.workers).Aggregate(ctx, state.Facts)
	if err != nil {
		return NewExecutionError(s.ID(), err)
	}
	state.Metrics = metrics
	return nil
}

// ExportStage writes every output artifact: the fact table and metrics
// CSVs, the summary statistics, the Excel workbook, and the executive
// summary.
type ExportStage struct {
	logger        *slog.Logger
	paths         *config.Paths
	excelRowLimit int
}

func NewExportStage(logger *slog.Logger, paths *config.Paths, excelRowLimit int) *ExportStage {
	return &ExportStage{logger: logger, paths: paths, excelRowLimit: excelRowLimit}
}

func (s *ExportStage) ID() string   { return StageIDExport }
func (s *ExportStage) Name() string { return StageNameExport }

func (s *ExportStage) Validate(state *OperationState) error {
	if state.Facts == nil {
		return NewInvalidStateError(s.ID(), "fact table not built")
	}
	if state.Metrics == nil {
		return NewInvalidStateError(s.ID(), "vessel metrics not aggregated")
	}
	return nil
}

func (s *ExportStage) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return NewCancellationError(s.ID(), err)
	}

	csvWriter := exporter.NewCSVWriter(s.paths)
	if err := csvWriter.WriteFactTable(config.IntegratedDataFile, state.Facts); err != nil {
		return NewExecutionError(s.ID(), fmt.Errorf("fact table export: %w", err))
	}
	if err := csvWriter.WriteVesselMetrics(config.VesselMetricsFile, state.Metrics); err != nil {
		return NewExecutionError(s.ID(), fmt.Errorf("vessel metrics export: %w", err))
	}
	if err := csvWriter.WriteSummaryStats(config.DataSummaryFile, state.Facts); err != nil {
		return NewExecutionError(s.ID(), fmt.Errorf("summary statistics export: %w", err))
	}

	excelWriter := exporter.NewExcelWriter(s.paths, s.excelRowLimit)
	if err := excelWriter.WriteReport(state.Facts, state.Metrics); err != nil {
		return NewExecutionError(s.ID(), fmt.Errorf("workbook export: %w", err))
	}

	summaryWriter := exporter.NewSummaryWriter(s.paths)
	if err := summaryWriter.WriteExecutiveSummary(state.Facts, state.Metrics); err != nil {
		return NewExecutionError(s.ID(), fmt.Errorf("executive summary export: %w", err))
	}

	return nil
}
