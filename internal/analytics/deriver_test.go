package analytics

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/pkg/contracts/domain"
)

func TestDeriver_Score_NMPerLiterAndEfficiency(t *testing.T) {
	facts := []domain.FactRecord{
		{VesselID: "V001", DistanceNM: 10, HasFuel: true, FuelPerNMLiters: 5, EngineRPM: 1000},
		{VesselID: "V001", DistanceNM: 20, HasFuel: true, FuelPerNMLiters: 5, EngineRPM: 1000},
	}

	scored := NewDeriver(slog.Default()).Score(context.Background(), facts)

	require.Len(t, scored, 2)
	// NM per liter: 10/5 = 2 and 20/5 = 4; p95 of [2, 4] interpolates
	// to 3.9, so the scores are 2/3.9*100 and 4/3.9*100 clamped.
	assert.InDelta(t, 2.0, scored[0].NMPerLiter, 1e-9)
	assert.InDelta(t, 4.0, scored[1].NMPerLiter, 1e-9)
	assert.InDelta(t, 2.0/3.9*100, scored[0].FuelEfficiencyScore, 1e-9)
	assert.Equal(t, 100.0, scored[1].FuelEfficiencyScore)
}

func TestDeriver_Score_MissingFuelUsesDefaults(t *testing.T) {
	facts := []domain.FactRecord{
		{VesselID: "V001", SpeedKnots: 10, EngineRPM: 1200},
	}

	scored := NewDeriver(slog.Default()).Score(context.Background(), facts)

	require.Len(t, scored, 1)
	assert.Zero(t, scored[0].NMPerLiter)
	assert.Equal(t, 50.0, scored[0].FuelEfficiencyScore)
	// Utilization with default 50% load: 50*0.6 + (10/25*100)*0.4 = 46.
	assert.InDelta(t, 46.0, scored[0].VesselUtilizationRate, 1e-9)
}

func TestDeriver_Score_ZeroDistanceOrFuel(t *testing.T) {
	tests := []struct {
		name string
		fact domain.FactRecord
	}{
		{
			name: "zero distance",
			fact: domain.FactRecord{HasFuel: true, FuelPerNMLiters: 5, DistanceNM: 0},
		},
		{
			name: "zero fuel per nm",
			fact: domain.FactRecord{HasFuel: true, FuelPerNMLiters: 0, DistanceNM: 10},
		},
	}

	deriver := NewDeriver(slog.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := deriver.Score(context.Background(), []domain.FactRecord{tt.fact})
			require.Len(t, scored, 1)
			assert.Zero(t, scored[0].NMPerLiter)
			assert.Equal(t, 50.0, scored[0].FuelEfficiencyScore)
		})
	}
}

func TestDeriver_Score_StormRiskIndex(t *testing.T) {
	facts := []domain.FactRecord{
		{HasEnvironment: true, StormProbabilityPercent: 60, WaveHeightMeters: 3},
		{HasEnvironment: true, StormProbabilityPercent: 100, WaveHeightMeters: 12},
		{},
	}

	scored := NewDeriver(slog.Default()).Score(context.Background(), facts)

	require.Len(t, scored, 3)
	// 60*0.5 + 3/6*50 = 55
	assert.InDelta(t, 55.0, scored[0].StormRiskIndex, 1e-9)
	// 100*0.5 + 12/6*50 = 150, clamped to 100.
	assert.Equal(t, 100.0, scored[1].StormRiskIndex)
	// No environment data: both terms default to zero.
	assert.Zero(t, scored[2].StormRiskIndex)
}

func TestDeriver_Score_EngineHealth(t *testing.T) {
	tests := []struct {
		name string
		fact domain.FactRecord
		want float64
	}{
		{
			name: "idle engine gets neutral default",
			fact: domain.FactRecord{EngineRPM: 0},
			want: 75.0,
		},
		{
			name: "running engine with penalties",
			fact: domain.FactRecord{
				EngineRPM: 1500, HasFuel: true, EngineLoadPercent: 50,
				MaintenanceCostUSD: 1000, RepairTimeHours: 4,
			},
			// 100 - (50*0.4 + 1000/100*0.3 + 4*0.5) = 100 - 25 = 75
			want: 75.0,
		},
		{
			name: "heavy penalties clamp to floor of 20",
			fact: domain.FactRecord{
				EngineRPM: 1500, HasFuel: true, EngineLoadPercent: 100,
				MaintenanceCostUSD: 50000, RepairTimeHours: 40,
			},
			want: 20.0,
		},
		{
			name: "running engine without fuel data uses default load",
			fact: domain.FactRecord{EngineRPM: 1200},
			// 100 - 50*0.4 = 80
			want: 80.0,
		},
	}

	deriver := NewDeriver(slog.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := deriver.Score(context.Background(), []domain.FactRecord{tt.fact})
			require.Len(t, scored, 1)
			assert.InDelta(t, tt.want, scored[0].EngineHealthScore, 1e-9)
		})
	}
}

func TestDeriver_Score_NavigationDifficulty(t *testing.T) {
	facts := []domain.FactRecord{
		{HasEnvironment: true, WaveHeightMeters: 2, WindSpeedKnots: 10, VisibilityKm: 8},
		// Missing environment: visibility defaults to 10 km.
		{},
	}

	scored := NewDeriver(slog.Default()).Score(context.Background(), facts)

	require.Len(t, scored, 2)
	// 2*10 + 10*2 + (100 - 8*5) = 100
	assert.InDelta(t, 100.0, scored[0].NavigationDifficulty, 1e-9)
	// 0 + 0 + (100 - 10*5) = 50
	assert.InDelta(t, 50.0, scored[1].NavigationDifficulty, 1e-9)
}

func TestDeriver_Score_AllScoresBounded(t *testing.T) {
	facts := []domain.FactRecord{
		{
			VesselID: "V001", SpeedKnots: 80, EngineRPM: 3000,
			HasFuel: true, FuelPerNMLiters: 0.1, DistanceNM: 500,
			LoadWeightPercent: 120, EngineLoadPercent: 150,
			HasEnvironment: true, WaveHeightMeters: 15, WindSpeedKnots: 90,
			VisibilityKm: 0, StormProbabilityPercent: 100,
			MaintenanceCostUSD: 100000, RepairTimeHours: 100,
		},
		{VesselID: "V002"},
	}

	scored := NewDeriver(slog.Default()).Score(context.Background(), facts)

	for i, r := range scored {
		assert.GreaterOrEqual(t, r.FuelEfficiencyScore, 0.0, "row %d", i)
		assert.LessOrEqual(t, r.FuelEfficiencyScore, 100.0, "row %d", i)
		assert.GreaterOrEqual(t, r.VesselUtilizationRate, 0.0, "row %d", i)
		assert.LessOrEqual(t, r.VesselUtilizationRate, 100.0, "row %d", i)
		assert.GreaterOrEqual(t, r.StormRiskIndex, 0.0, "row %d", i)
		assert.LessOrEqual(t, r.StormRiskIndex, 100.0, "row %d", i)
		assert.GreaterOrEqual(t, r.EngineHealthScore, 20.0, "row %d", i)
		assert.LessOrEqual(t, r.EngineHealthScore, 100.0, "row %d", i)
		assert.GreaterOrEqual(t, r.NavigationDifficulty, 0.0, "row %d", i)
		assert.LessOrEqual(t, r.NavigationDifficulty, 100.0, "row %d", i)
	}
}

func TestDeriver_Score_Deterministic(t *testing.T) {
	facts := []domain.FactRecord{
		{VesselID: "V001", DistanceNM: 10, HasFuel: true, FuelPerNMLiters: 2, EngineRPM: 900, SpeedKnots: 14},
		{VesselID: "V002", DistanceNM: 30, HasFuel: true, FuelPerNMLiters: 6, EngineRPM: 1100, SpeedKnots: 9},
	}

	deriver := NewDeriver(slog.Default())
	first := deriver.Score(context.Background(), facts)
	second := deriver.Score(context.Background(), facts)

	assert.Equal(t, first, second)
}

func TestDeriver_Score_DoesNotMutateInput(t *testing.T) {
	facts := []domain.FactRecord{
		{VesselID: "V001", DistanceNM: 10, HasFuel: true, FuelPerNMLiters: 2, EngineRPM: 900},
	}

	NewDeriver(slog.Default()).Score(context.Background(), facts)

	assert.Zero(t, facts[0].NMPerLiter)
	assert.Zero(t, facts[0].FuelEfficiencyScore)
}
