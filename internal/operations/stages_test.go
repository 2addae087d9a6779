package operations

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/internal/config"
	"fleetcli/internal/validation"
	"fleetcli/pkg/contracts/domain"
)

func stagePaths(t *testing.T) *config.Paths {
	t.Helper()
	base := t.TempDir()
	paths, err := config.NewPaths(config.PathsConfig{
		DataDir:    filepath.Join(base, "data"),
		ReportsDir: filepath.Join(base, "reports"),
		LogsDir:    filepath.Join(base, "logs"),
	})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		NumVessels:    3,
		NavRecords:    90,
		Seed:          42,
		ExcelRowLimit: 1000,
		Workers:       2,
	}
}

func TestSourceStage_GeneratePersistsDataset(t *testing.T) {
	paths := stagePaths(t)
	stage := NewSourceStage(slog.Default(), paths, testPipelineConfig(), true)
	state := NewOperationState("test")

	require.NoError(t, stage.Execute(context.Background(), state))

	require.NotNil(t, state.Tables)
	assert.Len(t, state.Tables.Vessels, 3)
	assert.Len(t, state.Tables.Navigation, 90)

	for _, name := range []string{
		config.VesselSpecsFile, config.NavigationFile, config.EnvironmentFile,
		config.FuelFile, config.MaintenanceFile,
	} {
		_, err := os.Stat(paths.GetDataPath(name))
		assert.NoError(t, err, name)
	}
}

func TestSourceStage_LoadRoundTripsGeneratedDataset(t *testing.T) {
	paths := stagePaths(t)
	state := NewOperationState("test")

	generate := NewSourceStage(slog.Default(), paths, testPipelineConfig(), true)
	require.NoError(t, generate.Execute(context.Background(), state))
	generated := state.Tables

	loadState := NewOperationState("test-load")
	load := NewSourceStage(slog.Default(), paths, testPipelineConfig(), false)
	require.NoError(t, load.Execute(context.Background(), loadState))

	require.NotNil(t, loadState.Tables)
	assert.Len(t, loadState.Tables.Vessels, len(generated.Vessels))
	assert.Len(t, loadState.Tables.Navigation, len(generated.Navigation))
	assert.Len(t, loadState.Tables.Fuel, len(generated.Fuel))
	assert.Len(t, loadState.Tables.Maintenance, len(generated.Maintenance))
	assert.Equal(t, generated.Vessels[0].VesselID, loadState.Tables.Vessels[0].VesselID)
}

func TestSourceStage_LoadEmptyDirectoryFails(t *testing.T) {
	paths := stagePaths(t)
	stage := NewSourceStage(slog.Default(), paths, testPipelineConfig(), false)
	state := NewOperationState("test")

	err := stage.Execute(context.Background(), state)

	require.Error(t, err)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, ErrorTypeExecution, opErr.Type)
}

func TestStageValidate_OrderingGuards(t *testing.T) {
	logger := slog.Default()
	empty := NewOperationState("test")

	tests := []struct {
		name  string
		stage Stage
	}{
		{"integration requires tables", NewIntegrationStage(logger)},
		{"scoring requires facts", NewScoringStage(logger)},
		{"validation requires facts", NewValidationStage(logger)},
		{"aggregation requires facts", NewAggregationStage(logger, 1)},
		{"export requires facts and metrics", NewExportStage(logger, nil, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stage.Validate(empty)
			require.Error(t, err)
			var opErr *OperationError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, ErrorTypeInvalidState, opErr.Type)
		})
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	paths := stagePaths(t)
	logger := slog.Default()
	cfg := testPipelineConfig()

	manager := NewManager(logger, []Stage{
		NewSourceStage(logger, paths, cfg, true),
		NewIntegrationStage(logger),
		NewScoringStage(logger),
		NewAggregationStage(logger, cfg.Workers),
		NewValidationStage(logger),
		NewExportStage(logger, paths, cfg.ExcelRowLimit),
	})

	state, err := manager.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OperationStatusCompleted, state.GetStatus())

	// The fact table keeps navigation grain.
	assert.Len(t, state.Facts, len(state.Tables.Navigation))
	assert.Len(t, state.Metrics, cfg.NumVessels)

	require.NotNil(t, state.Validation)
	assert.Equal(t, validation.StatusPassed, state.Validation.Status)

	// Every derived score is within its documented bounds.
	for i := range state.Facts {
		r := &state.Facts[i]
		assert.GreaterOrEqual(t, r.FuelEfficiencyScore, 0.0)
		assert.LessOrEqual(t, r.FuelEfficiencyScore, 100.0)
		assert.GreaterOrEqual(t, r.EngineHealthScore, 20.0)
		assert.LessOrEqual(t, r.EngineHealthScore, 100.0)
	}

	// Metrics are sorted by composite risk, descending.
	for i := 1; i < len(state.Metrics); i++ {
		assert.GreaterOrEqual(t,
			state.Metrics[i-1].CompositeRiskScore,
			state.Metrics[i].CompositeRiskScore)
	}

	for _, name := range []string{
		config.IntegratedDataFile, config.VesselMetricsFile,
		config.DataSummaryFile, config.ExcelReportFile, config.ExecutiveSummaryFile,
	} {
		_, statErr := os.Stat(paths.GetReportPath(name))
		assert.NoError(t, statErr, name)
	}
}

func TestPipeline_EndToEnd_Deterministic(t *testing.T) {
	logger := slog.Default()
	cfg := testPipelineConfig()

	run := func() []domain.VesselMetrics {
		paths := stagePaths(t)
		manager := NewManager(logger, []Stage{
			NewSourceStage(logger, paths, cfg, true),
			NewIntegrationStage(logger),
			NewScoringStage(logger),
			NewAggregationStage(logger, cfg.Workers),
			NewValidationStage(logger),
		})
		state, err := manager.Run(context.Background())
		require.NoError(t, err)
		return state.Metrics
	}

	assert.Equal(t, run(), run())
}
