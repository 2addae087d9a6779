package analytics

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"fleetcli/pkg/contracts/domain"
)

// Composite risk score component weights. The engine health term defaults
// to 75 and the engine load term to 50 when a vessel has no underlying
// values to average; the maintenance term defaults to 0.
const (
	weightEngineHealthDeficit = 0.35
	weightMaintenanceCost     = 0.25
	weightStormRisk           = 0.25
	weightEngineLoad          = 0.15

	// maintenanceCostScale converts total maintenance cost in USD to a
	// 0-100 risk contribution before clipping.
	maintenanceCostScale = 10000.0
)

// Aggregator reduces the scored fact table to one metrics row per vessel
// and computes the composite risk score. Vessels are processed on a
// key-disjoint worker pool: each worker owns whole vessels, so no two
// workers ever touch the same output row, and aggregation only starts
// after scoring (including its global percentile pass) has completed.
type Aggregator struct {
	logger  *slog.Logger
	workers int
}

// NewAggregator creates an aggregator. workers <= 0 means one worker per
// CPU.
func NewAggregator(logger *slog.Logger, workers int) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Aggregator{logger: logger, workers: workers}
}

// Aggregate groups the scored fact table by vessel, applies mean to rate
// and score fields and sum to cumulative fields, computes the composite
// risk score, and returns the result sorted by that score descending
// (ties broken by vessel ID for determinism).
func (a *Aggregator) Aggregate(ctx context.Context, facts []domain.FactRecord) ([]domain.VesselMetrics, error) {
	byVessel := make(map[string][]domain.FactRecord)
	var order []string
	for _, fact := range facts {
		if _, seen := byVessel[fact.VesselID]; !seen {
			order = append(order, fact.VesselID)
		}
		byVessel[fact.VesselID] = append(byVessel[fact.VesselID], fact)
	}
	sort.Strings(order)

	metrics := make([]domain.VesselMetrics, len(order))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, vesselID := range order {
		i, vesselID := i, vesselID
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			metrics[i] = aggregateVessel(vesselID, byVessel[vesselID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].CompositeRiskScore != metrics[j].CompositeRiskScore {
			return metrics[i].CompositeRiskScore > metrics[j].CompositeRiskScore
		}
		return metrics[i].VesselID < metrics[j].VesselID
	})

	a.logger.InfoContext(ctx, "aggregated vessel metrics",
		slog.Int("vessels", len(metrics)),
		slog.Int("fact_records", len(facts)))

	return metrics, nil
}

func aggregateVessel(vesselID string, rows []domain.FactRecord) domain.VesselMetrics {
	var (
		sumDistance  float64
		sumFuelPerNM float64
		totalCost    float64
		totalRepair  float64

		speeds, utils, effs, healths, storms, navDiffs []float64
		loads, waves                                   []float64
	)

	for _, r := range rows {
		sumDistance += r.DistanceNM
		totalCost += r.MaintenanceCostUSD
		totalRepair += r.RepairTimeHours

		speeds = append(speeds, r.SpeedKnots)
		utils = append(utils, r.VesselUtilizationRate)
		effs = append(effs, r.FuelEfficiencyScore)
		healths = append(healths, r.EngineHealthScore)
		storms = append(storms, r.StormRiskIndex)
		navDiffs = append(navDiffs, r.NavigationDifficulty)

		if r.HasFuel {
			sumFuelPerNM += r.FuelPerNMLiters
			loads = append(loads, r.EngineLoadPercent)
		}
		if r.HasEnvironment {
			waves = append(waves, r.WaveHeightMeters)
		}
	}

	m := domain.VesselMetrics{
		VesselID:                vesselID,
		AvgFuelEfficiencyScore:  mean(effs),
		AvgSpeed:                mean(speeds),
		AvgUtilizationRate:      mean(utils),
		TotalDistanceNM:         sumDistance,
		AvgEngineHealth:         mean(healths),
		AvgEngineLoad:           mean(loads),
		AvgWaveHeight:           mean(waves),
		AvgNavigationDifficulty: mean(navDiffs),
		TotalMaintenanceCost:    totalCost,
		TotalRepairHours:        totalRepair,
	}

	if sumFuelPerNM > 0 {
		m.FuelNMPerLiter = sumDistance / sumFuelPerNM
	}

	m.CompositeRiskScore = compositeRiskScore(m, mean(storms))
	return m
}

// compositeRiskScore blends engine-health deficit, maintenance cost,
// storm risk, and engine load into one bounded figure.
func compositeRiskScore(m domain.VesselMetrics, avgStormRisk float64) float64 {
	engineHealth := m.AvgEngineHealth
	if math.IsNaN(engineHealth) {
		engineHealth = defaultEngineHealthScore
	}
	engineLoad := m.AvgEngineLoad
	if math.IsNaN(engineLoad) {
		engineLoad = defaultEngineLoadPercent
	}
	if math.IsNaN(avgStormRisk) {
		avgStormRisk = 0
	}

	score := weightEngineHealthDeficit*(100-engineHealth) +
		weightMaintenanceCost*clamp(m.TotalMaintenanceCost/maintenanceCostScale, 0, 100) +
		weightStormRisk*avgStormRisk +
		weightEngineLoad*engineLoad

	return clamp(score, 0, 100)
}
