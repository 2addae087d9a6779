package domain

import (
	"time"
)

// FactRecord is one row of the integrated fact table: the join of all five
// sources at navigation grain plus the derived scores. Optional sources are
// marked by the Has* flags; when a flag is false the corresponding fields
// hold zero values and the scoring formulas substitute their documented
// defaults. Maintenance fields are always present: a day without incidents
// is zero hours and zero cost, not missing data.
type FactRecord struct {
	// Navigation (timeline driver, always present)
	VesselID               string
	Timestamp              time.Time
	Latitude               float64
	Longitude              float64
	SpeedKnots             float64
	EngineRPM              float64
	DepthMeters            float64
	DistanceNM             float64
	CourseDeviationDegrees float64

	// Environment (joined by truncated hour, then backward-filled)
	HasEnvironment          bool
	WaveHeightMeters        float64
	WindSpeedKnots          float64
	VisibilityKm            float64
	SeaTemperatureC         float64
	OceanCurrentKnots       float64
	StormProbabilityPercent float64

	// Fuel (joined by vessel and calendar date)
	HasFuel           bool
	FuelPerHourLiters float64
	FuelPerNMLiters   float64
	FuelCostUSD       float64
	LoadWeightPercent float64
	EngineLoadPercent float64

	// Vessel specification (joined by vessel)
	HasSpec          bool
	VesselType       string
	EnginePowerKW    float64
	FuelType         string
	MaxDepthMeters   float64
	LoadCapacityTons float64
	LengthMeters     float64
	YearBuilt        int

	// Maintenance (daily aggregate, zero-valued when no incident matched)
	MaintenanceTypes   string
	RepairTimeHours    float64
	MaintenanceCostUSD float64
	RiskCategory       string

	// Derived scores
	NMPerLiter            float64
	FuelEfficiencyScore   float64
	VesselUtilizationRate float64
	StormRiskIndex        float64
	EngineHealthScore     float64
	NavigationDifficulty  float64
}

// FactColumn describes one numeric column of the fact table for generic
// consumers (quality validation, summary statistics). Value returns the
// column value for a record and whether it is present.
type FactColumn struct {
	Name  string
	Value func(r *FactRecord) (float64, bool)
}

func always(f func(r *FactRecord) float64) func(r *FactRecord) (float64, bool) {
	return func(r *FactRecord) (float64, bool) { return f(r), true }
}

func whenEnv(f func(r *FactRecord) float64) func(r *FactRecord) (float64, bool) {
	return func(r *FactRecord) (float64, bool) { return f(r), r.HasEnvironment }
}

func whenFuel(f func(r *FactRecord) float64) func(r *FactRecord) (float64, bool) {
	return func(r *FactRecord) (float64, bool) { return f(r), r.HasFuel }
}

// NumericFactColumns returns the numeric columns of the fact table in
// output order, source columns first, derived scores last.
func NumericFactColumns() []FactColumn {
	return []FactColumn{
		{"Latitude", always(func(r *FactRecord) float64 { return r.Latitude })},
		{"Longitude", always(func(r *FactRecord) float64 { return r.Longitude })},
		{"Speed_knots", always(func(r *FactRecord) float64 { return r.SpeedKnots })},
		{"Engine_RPM", always(func(r *FactRecord) float64 { return r.EngineRPM })},
		{"Depth_meters", always(func(r *FactRecord) float64 { return r.DepthMeters })},
		{"Distance_covered_nm", always(func(r *FactRecord) float64 { return r.DistanceNM })},
		{"Course_Deviation_degrees", always(func(r *FactRecord) float64 { return r.CourseDeviationDegrees })},
		{"Wave_Height_meters", whenEnv(func(r *FactRecord) float64 { return r.WaveHeightMeters })},
		{"Wind_Speed_knots", whenEnv(func(r *FactRecord) float64 { return r.WindSpeedKnots })},
		{"Visibility_km", whenEnv(func(r *FactRecord) float64 { return r.VisibilityKm })},
		{"Sea_Temperature_C", whenEnv(func(r *FactRecord) float64 { return r.SeaTemperatureC })},
		{"Ocean_Current_knots", whenEnv(func(r *FactRecord) float64 { return r.OceanCurrentKnots })},
		{"Storm_Probability_percent", whenEnv(func(r *FactRecord) float64 { return r.StormProbabilityPercent })},
		{"Fuel_Used_per_Hour_liters", whenFuel(func(r *FactRecord) float64 { return r.FuelPerHourLiters })},
		{"Fuel_Used_per_NM_liters", whenFuel(func(r *FactRecord) float64 { return r.FuelPerNMLiters })},
		{"Fuel_Cost_USD", whenFuel(func(r *FactRecord) float64 { return r.FuelCostUSD })},
		{"Load_Weight_percent", whenFuel(func(r *FactRecord) float64 { return r.LoadWeightPercent })},
		{"Engine_Load_percent", whenFuel(func(r *FactRecord) float64 { return r.EngineLoadPercent })},
		{"Repair_Time_hours", always(func(r *FactRecord) float64 { return r.RepairTimeHours })},
		{"Maintenance_Cost_USD", always(func(r *FactRecord) float64 { return r.MaintenanceCostUSD })},
		{"NM_per_Liter", always(func(r *FactRecord) float64 { return r.NMPerLiter })},
		{"Fuel_Efficiency_Score", always(func(r *FactRecord) float64 { return r.FuelEfficiencyScore })},
		{"Vessel_Utilization_Rate", always(func(r *FactRecord) float64 { return r.VesselUtilizationRate })},
		{"Storm_Risk_Index", always(func(r *FactRecord) float64 { return r.StormRiskIndex })},
		{"Engine_Health_Score", always(func(r *FactRecord) float64 { return r.EngineHealthScore })},
		{"Navigation_Difficulty", always(func(r *FactRecord) float64 { return r.NavigationDifficulty })},
	}
}
