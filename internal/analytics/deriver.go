package analytics

import (
	"context"
	"log/slog"

	"fleetcli/pkg/contracts/domain"
)

// Defaults substituted when a formula input is missing or out of range.
const (
	defaultFuelEfficiencyScore = 50.0
	defaultEngineHealthScore   = 75.0
	defaultLoadWeightPercent   = 50.0
	defaultEngineLoadPercent   = 50.0
	defaultVisibilityKm        = 10.0
)

// efficiencyPercentile is the normalization anchor for the fuel
// efficiency score: the 95th percentile of all positive NM-per-liter
// values across the fact table.
const efficiencyPercentile = 0.95

// Deriver computes the seven derived fields for every fact record. All
// formulas are total: missing inputs fall back to the defaults above and
// every score is clamped to its documented range.
type Deriver struct {
	logger *slog.Logger
}

// NewDeriver creates a metric deriver.
func NewDeriver(logger *slog.Logger) *Deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deriver{logger: logger}
}

// Score returns a scored copy of the fact table. It runs in two passes:
// the first computes NM-per-liter for every row and the cross-table 95th
// percentile, the second fills in the remaining scores. Re-running on the
// same input yields identical output.
func (d *Deriver) Score(ctx context.Context, facts []domain.FactRecord) []domain.FactRecord {
	result := make([]domain.FactRecord, len(facts))
	copy(result, facts)

	var positives []float64
	for i := range result {
		r := &result[i]
		r.NMPerLiter = 0
		if r.HasFuel && r.FuelPerNMLiters > 0 && r.DistanceNM > 0 {
			r.NMPerLiter = r.DistanceNM / r.FuelPerNMLiters
			positives = append(positives, r.NMPerLiter)
		}
	}

	p95 := percentileOf(positives, efficiencyPercentile)

	for i := range result {
		d.scoreRecord(&result[i], p95)
	}

	d.logger.InfoContext(ctx, "derived per-record metrics",
		slog.Int("records", len(result)),
		slog.Int("records_with_fuel_data", len(positives)),
		slog.Float64("nm_per_liter_p95", p95))

	return result
}

func (d *Deriver) scoreRecord(r *domain.FactRecord, p95 float64) {
	if r.NMPerLiter > 0 && p95 > 0 {
		r.FuelEfficiencyScore = clamp(r.NMPerLiter/p95*100, 0, 100)
	} else {
		r.FuelEfficiencyScore = defaultFuelEfficiencyScore
	}

	loadWeight := defaultLoadWeightPercent
	engineLoad := defaultEngineLoadPercent
	if r.HasFuel {
		loadWeight = r.LoadWeightPercent
		engineLoad = r.EngineLoadPercent
	}

	r.VesselUtilizationRate = clamp(loadWeight*0.6+(r.SpeedKnots/25*100)*0.4, 0, 100)

	var waveHeight, windSpeed, stormProbability float64
	visibility := defaultVisibilityKm
	if r.HasEnvironment {
		waveHeight = r.WaveHeightMeters
		windSpeed = r.WindSpeedKnots
		stormProbability = r.StormProbabilityPercent
		visibility = r.VisibilityKm
	}

	r.StormRiskIndex = clamp(stormProbability*0.5+waveHeight/6*50, 0, 100)

	if r.EngineRPM > 0 {
		penalty := engineLoad*0.4 + r.MaintenanceCostUSD/100*0.3 + r.RepairTimeHours*0.5
		r.EngineHealthScore = clamp(100-penalty, 20, 100)
	} else {
		r.EngineHealthScore = defaultEngineHealthScore
	}

	r.NavigationDifficulty = clamp(waveHeight*10+windSpeed*2+(100-visibility*5), 0, 100)
}
