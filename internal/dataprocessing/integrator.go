package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"fleetcli/pkg/contracts/domain"
)

// Integrator merges the five source tables into the fact table. The merge
// is deterministic for deterministic inputs and never drops or duplicates
// a navigation row: the output has exactly one row per deduplicated
// (vessel, timestamp) navigation sample.
type Integrator struct {
	logger   *slog.Logger
	backfill *BackwardFillProcessor
}

// NewIntegrator creates an integrator.
func NewIntegrator(logger *slog.Logger) *Integrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Integrator{
		logger:   logger,
		backfill: NewBackwardFillProcessor(),
	}
}

// Merge produces the integrated fact table at navigation grain:
//
//  1. deduplicate navigation on (vessel, timestamp) keeping the first
//     occurrence, and sort ascending by (vessel, timestamp)
//  2. attach environment by truncated hour, first sample per hour winning
//  3. backward-fill rows left without an environment block
//  4. attach fuel by (vessel, calendar date), first record per day winning
//  5. attach the static vessel specification
//  6. attach the daily maintenance aggregate; days without incidents get
//     zero repair hours and zero cost
func (it *Integrator) Merge(ctx context.Context, tables *domain.SourceTables) []domain.FactRecord {
	nav := dedupeNavigation(tables.Navigation)
	sort.SliceStable(nav, func(i, j int) bool {
		if nav[i].VesselID != nav[j].VesselID {
			return nav[i].VesselID < nav[j].VesselID
		}
		return nav[i].Timestamp.Before(nav[j].Timestamp)
	})

	envByHour := indexEnvironmentByHour(tables.Environment)

	facts := make([]domain.FactRecord, 0, len(nav))
	for _, rec := range nav {
		fact := domain.FactRecord{
			VesselID:               rec.VesselID,
			Timestamp:              rec.Timestamp,
			Latitude:               rec.Latitude,
			Longitude:              rec.Longitude,
			SpeedKnots:             rec.SpeedKnots,
			EngineRPM:              rec.EngineRPM,
			DepthMeters:            rec.DepthMeters,
			DistanceNM:             rec.DistanceNM,
			CourseDeviationDegrees: rec.CourseDeviationDegrees,
		}
		if env, ok := envByHour[rec.Timestamp.Truncate(time.Hour)]; ok {
			attachEnvironment(&fact, env)
		}
		facts = append(facts, fact)
	}

	facts, fillStats := it.backfill.FillEnvironmentWithStats(facts)

	fuelByDay := indexFuelByDay(tables.Fuel)
	specByID := indexVessels(tables.Vessels)
	maintByDay := aggregateMaintenanceDaily(tables.Maintenance)

	for i := range facts {
		fact := &facts[i]
		dayKey := dateKey(fact.VesselID, fact.Timestamp)

		if fuel, ok := fuelByDay[dayKey]; ok {
			fact.HasFuel = true
			fact.FuelPerHourLiters = fuel.FuelPerHourLiters
			fact.FuelPerNMLiters = fuel.FuelPerNMLiters
			fact.FuelCostUSD = fuel.FuelCostUSD
			fact.LoadWeightPercent = fuel.LoadWeightPercent
			fact.EngineLoadPercent = fuel.EngineLoadPercent
		}

		if spec, ok := specByID[fact.VesselID]; ok {
			fact.HasSpec = true
			fact.VesselType = spec.Type
			fact.EnginePowerKW = spec.EnginePowerKW
			fact.FuelType = spec.FuelType
			fact.MaxDepthMeters = spec.MaxDepthMeters
			fact.LoadCapacityTons = spec.LoadCapacityTons
			fact.LengthMeters = spec.LengthMeters
			fact.YearBuilt = spec.YearBuilt
		}

		// No incident on a day means zero hours and zero cost, not
		// missing data.
		if daily, ok := maintByDay[dayKey]; ok {
			fact.MaintenanceTypes = strings.Join(daily.types, ", ")
			fact.RepairTimeHours = daily.repairHours
			fact.MaintenanceCostUSD = daily.costUSD
			fact.RiskCategory = daily.modalRiskCategory()
		}
	}

	it.logger.InfoContext(ctx, "integrated source tables",
		slog.Int("navigation_records", len(tables.Navigation)),
		slog.Int("fact_records", len(facts)),
		slog.Int("env_backfilled", fillStats.FilledCount),
		slog.Int("env_gaps_remaining", fillStats.UnfilledGaps))

	return facts
}

func attachEnvironment(fact *domain.FactRecord, env domain.EnvironmentSample) {
	fact.HasEnvironment = true
	fact.WaveHeightMeters = env.WaveHeightMeters
	fact.WindSpeedKnots = env.WindSpeedKnots
	fact.VisibilityKm = env.VisibilityKm
	fact.SeaTemperatureC = env.SeaTemperatureC
	fact.OceanCurrentKnots = env.OceanCurrentKnots
	fact.StormProbabilityPercent = env.StormProbabilityPercent
}

// dedupeNavigation keeps the first occurrence per (vessel, timestamp) in
// input order.
func dedupeNavigation(records []domain.NavigationRecord) []domain.NavigationRecord {
	seen := make(map[string]struct{}, len(records))
	result := make([]domain.NavigationRecord, 0, len(records))
	for _, rec := range records {
		key := rec.VesselID + "|" + rec.Timestamp.Format(time.RFC3339)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, rec)
	}
	return result
}

// indexEnvironmentByHour maps each truncated hour to its first sample in
// ascending timestamp order. Sampling coarser than an hour means at most
// one sample per hour in practice; on collision the earliest wins.
func indexEnvironmentByHour(samples []domain.EnvironmentSample) map[time.Time]domain.EnvironmentSample {
	ordered := make([]domain.EnvironmentSample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	index := make(map[time.Time]domain.EnvironmentSample, len(ordered))
	for _, sample := range ordered {
		hour := sample.Timestamp.Truncate(time.Hour)
		if _, exists := index[hour]; !exists {
			index[hour] = sample
		}
	}
	return index
}

// indexFuelByDay maps (vessel, date) to the first fuel record for that
// day in input order.
func indexFuelByDay(records []domain.FuelRecord) map[string]domain.FuelRecord {
	index := make(map[string]domain.FuelRecord, len(records))
	for _, rec := range records {
		key := dateKey(rec.VesselID, rec.Timestamp)
		if _, exists := index[key]; !exists {
			index[key] = rec
		}
	}
	return index
}

func indexVessels(vessels []domain.VesselSpec) map[string]domain.VesselSpec {
	index := make(map[string]domain.VesselSpec, len(vessels))
	for _, v := range vessels {
		if _, exists := index[v.VesselID]; !exists {
			index[v.VesselID] = v
		}
	}
	return index
}

// maintenanceDaily is the (vessel, date) aggregate of maintenance
// incidents.
type maintenanceDaily struct {
	repairHours float64
	costUSD     float64
	types       []string // unique, order of first occurrence
	riskCounts  map[string]int
	riskOrder   []string // order of first occurrence, breaks frequency ties
}

// modalRiskCategory returns the most frequent risk category; frequency
// ties go to the category seen first within the group.
func (m *maintenanceDaily) modalRiskCategory() string {
	best := ""
	bestCount := 0
	for _, category := range m.riskOrder {
		if count := m.riskCounts[category]; count > bestCount {
			best = category
			bestCount = count
		}
	}
	return best
}

func aggregateMaintenanceDaily(incidents []domain.MaintenanceIncident) map[string]*maintenanceDaily {
	index := make(map[string]*maintenanceDaily)
	for _, inc := range incidents {
		key := dateKey(inc.VesselID, inc.Timestamp)
		daily, ok := index[key]
		if !ok {
			daily = &maintenanceDaily{riskCounts: make(map[string]int)}
			index[key] = daily
		}
		daily.repairHours += inc.RepairTimeHours
		daily.costUSD += inc.MaintenanceCostUSD
		if inc.MaintenanceType != "" && !contains(daily.types, inc.MaintenanceType) {
			daily.types = append(daily.types, inc.MaintenanceType)
		}
		if inc.RiskCategory != "" {
			if _, seen := daily.riskCounts[inc.RiskCategory]; !seen {
				daily.riskOrder = append(daily.riskOrder, inc.RiskCategory)
			}
			daily.riskCounts[inc.RiskCategory]++
		}
	}
	return index
}

func dateKey(vesselID string, ts time.Time) string {
	return vesselID + "|" + ts.Format("2006-01-02")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
