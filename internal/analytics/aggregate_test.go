package analytics

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/pkg/contracts/domain"
)

func TestAggregator_Aggregate_SumsAndMeans(t *testing.T) {
	facts := []domain.FactRecord{
		{
			VesselID: "V001", SpeedKnots: 10, DistanceNM: 100,
			HasFuel: true, FuelPerNMLiters: 2, EngineLoadPercent: 60,
			HasEnvironment: true, WaveHeightMeters: 1.0,
			FuelEfficiencyScore: 80, VesselUtilizationRate: 70,
			EngineHealthScore: 90, StormRiskIndex: 20, NavigationDifficulty: 30,
			MaintenanceCostUSD: 500, RepairTimeHours: 2,
		},
		{
			VesselID: "V001", SpeedKnots: 20, DistanceNM: 200,
			HasFuel: true, FuelPerNMLiters: 4, EngineLoadPercent: 80,
			HasEnvironment: true, WaveHeightMeters: 3.0,
			FuelEfficiencyScore: 60, VesselUtilizationRate: 50,
			EngineHealthScore: 70, StormRiskIndex: 40, NavigationDifficulty: 50,
			MaintenanceCostUSD: 1500, RepairTimeHours: 6,
		},
	}

	metrics, err := NewAggregator(slog.Default(), 1).Aggregate(context.Background(), facts)

	require.NoError(t, err)
	require.Len(t, metrics, 1)
	m := metrics[0]

	assert.Equal(t, "V001", m.VesselID)
	assert.InDelta(t, 15.0, m.AvgSpeed, 1e-9)
	assert.InDelta(t, 300.0, m.TotalDistanceNM, 1e-9)
	// 300 nm over 6 liters-per-nm summed: 50 nm per liter.
	assert.InDelta(t, 50.0, m.FuelNMPerLiter, 1e-9)
	assert.InDelta(t, 70.0, m.AvgFuelEfficiencyScore, 1e-9)
	assert.InDelta(t, 60.0, m.AvgUtilizationRate, 1e-9)
	assert.InDelta(t, 80.0, m.AvgEngineHealth, 1e-9)
	assert.InDelta(t, 70.0, m.AvgEngineLoad, 1e-9)
	assert.InDelta(t, 2.0, m.AvgWaveHeight, 1e-9)
	assert.InDelta(t, 40.0, m.AvgNavigationDifficulty, 1e-9)
	assert.InDelta(t, 2000.0, m.TotalMaintenanceCost, 1e-9)
	assert.InDelta(t, 8.0, m.TotalRepairHours, 1e-9)
}

func TestAggregator_Aggregate_CompositeRiskScore(t *testing.T) {
	facts := []domain.FactRecord{
		{
			VesselID: "V001",
			HasFuel:  true, EngineLoadPercent: 60,
			EngineHealthScore: 70, StormRiskIndex: 40,
			MaintenanceCostUSD: 5000,
		},
	}

	metrics, err := NewAggregator(slog.Default(), 1).Aggregate(context.Background(), facts)

	require.NoError(t, err)
	require.Len(t, metrics, 1)
	// 0.35*(100-70) + 0.25*(5000/10000) + 0.25*40 + 0.15*60 = 29.625
	assert.InDelta(t, 29.625, metrics[0].CompositeRiskScore, 1e-9)
	assert.Equal(t, domain.RiskLevelLow, domain.RiskLevelOf(metrics[0].CompositeRiskScore))
}

func TestAggregator_Aggregate_MissingDataDefaults(t *testing.T) {
	// A vessel with no fuel or environment rows: engine load and wave
	// aggregates are absent, and the composite uses the documented
	// defaults for its terms.
	facts := []domain.FactRecord{
		{VesselID: "V001", EngineHealthScore: 75, FuelEfficiencyScore: 50},
	}

	metrics, err := NewAggregator(slog.Default(), 1).Aggregate(context.Background(), facts)

	require.NoError(t, err)
	require.Len(t, metrics, 1)
	m := metrics[0]

	assert.True(t, domain.IsMissing(m.AvgEngineLoad))
	assert.True(t, domain.IsMissing(m.AvgWaveHeight))
	assert.Zero(t, m.FuelNMPerLiter)
	// 0.35*(100-75) + 0 + 0 + 0.15*50 = 16.25
	assert.InDelta(t, 16.25, m.CompositeRiskScore, 1e-9)
}

func TestAggregator_Aggregate_SortedByRiskDescending(t *testing.T) {
	facts := []domain.FactRecord{
		{VesselID: "V001", EngineHealthScore: 90},
		{VesselID: "V002", EngineHealthScore: 30, StormRiskIndex: 80},
		{VesselID: "V003", EngineHealthScore: 60},
	}

	metrics, err := NewAggregator(slog.Default(), 4).Aggregate(context.Background(), facts)

	require.NoError(t, err)
	require.Len(t, metrics, 3)
	for i := 1; i < len(metrics); i++ {
		assert.GreaterOrEqual(t, metrics[i-1].CompositeRiskScore, metrics[i].CompositeRiskScore)
	}
	assert.Equal(t, "V002", metrics[0].VesselID)
}

func TestAggregator_Aggregate_TieBrokenByVesselID(t *testing.T) {
	facts := []domain.FactRecord{
		{VesselID: "V002", EngineHealthScore: 75},
		{VesselID: "V001", EngineHealthScore: 75},
	}

	metrics, err := NewAggregator(slog.Default(), 2).Aggregate(context.Background(), facts)

	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, metrics[0].CompositeRiskScore, metrics[1].CompositeRiskScore)
	assert.Equal(t, "V001", metrics[0].VesselID)
	assert.Equal(t, "V002", metrics[1].VesselID)
}

func TestAggregator_Aggregate_Empty(t *testing.T) {
	metrics, err := NewAggregator(slog.Default(), 0).Aggregate(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, metrics)
}

func TestAggregator_Aggregate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	facts := []domain.FactRecord{{VesselID: "V001"}}
	_, err := NewAggregator(slog.Default(), 1).Aggregate(ctx, facts)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompositeRiskScore_Bounded(t *testing.T) {
	m := domain.VesselMetrics{
		AvgEngineHealth:      math.NaN(),
		AvgEngineLoad:        math.NaN(),
		TotalMaintenanceCost: 1e9,
	}

	score := compositeRiskScore(m, math.NaN())

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}
