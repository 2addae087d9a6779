package domain

import (
	"math"
)

// VesselMetrics is one row of the per-vessel metrics table: aggregates of
// the scored fact table plus the composite risk score. Rate and score
// fields are means over the vessel's fact rows; Total* fields are sums.
// Means over columns with no present values are NaN and render as empty
// cells on export.
type VesselMetrics struct {
	VesselID                string  `json:"vessel_id"`
	FuelNMPerLiter          float64 `json:"fuel_nm_per_liter"`
	AvgFuelEfficiencyScore  float64 `json:"avg_fuel_efficiency_score"`
	AvgSpeed                float64 `json:"avg_speed"`
	AvgUtilizationRate      float64 `json:"avg_utilization_rate"`
	TotalDistanceNM         float64 `json:"total_distance"`
	AvgEngineHealth         float64 `json:"avg_engine_health"`
	AvgEngineLoad           float64 `json:"avg_engine_load"`
	AvgWaveHeight           float64 `json:"avg_wave_height"`
	AvgNavigationDifficulty float64 `json:"avg_navigation_difficulty"`
	TotalMaintenanceCost    float64 `json:"total_maintenance_cost"`
	TotalRepairHours        float64 `json:"total_repair_hours"`
	CompositeRiskScore      float64 `json:"composite_risk_score"`
}

// RiskLevel bands a composite risk score for reporting.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Composite risk score band boundaries.
const (
	RiskThresholdMedium = 30.0
	RiskThresholdHigh   = 60.0
)

// RiskLevelOf classifies a composite risk score into its band.
func RiskLevelOf(score float64) RiskLevel {
	switch {
	case score >= RiskThresholdHigh:
		return RiskLevelHigh
	case score >= RiskThresholdMedium:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// IsMissing reports whether an aggregated value is absent (NaN), meaning
// the vessel had no fact rows carrying the underlying column.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
