package domain

import (
	"time"
)

// VesselSpec holds the static specification of a single vessel. One record
// exists per Vessel_ID and it never changes after creation.
type VesselSpec struct {
	VesselID         string  `json:"vessel_id"`
	Type             string  `json:"type"`
	EnginePowerKW    float64 `json:"engine_power_kw"`
	FuelType         string  `json:"fuel_type"`
	MaxDepthMeters   float64 `json:"max_depth_meters"`
	LoadCapacityTons float64 `json:"load_capacity_tons"`
	LengthMeters     float64 `json:"length_meters"`
	YearBuilt        int     `json:"year_built"`
}

// NavigationRecord is one hourly navigation sample for a vessel. The
// navigation log is the timeline driver: the integrated fact table has
// exactly one row per deduplicated (Vessel_ID, Timestamp) pair from here.
type NavigationRecord struct {
	VesselID               string    `json:"vessel_id"`
	Timestamp              time.Time `json:"timestamp"`
	Latitude               float64   `json:"latitude"`
	Longitude              float64   `json:"longitude"`
	SpeedKnots             float64   `json:"speed_knots"`
	EngineRPM              float64   `json:"engine_rpm"`
	DepthMeters            float64   `json:"depth_meters"`
	DistanceNM             float64   `json:"distance_covered_nm"`
	CourseDeviationDegrees float64   `json:"course_deviation_degrees"`
}

// EnvironmentSample is a fleet-wide environmental reading. Samples arrive
// at a coarser cadence than navigation (roughly every four hours) and are
// not vessel-specific; they join to navigation by truncated hour.
type EnvironmentSample struct {
	Timestamp               time.Time `json:"timestamp"`
	WaveHeightMeters        float64   `json:"wave_height_meters"`
	WindSpeedKnots          float64   `json:"wind_speed_knots"`
	VisibilityKm            float64   `json:"visibility_km"`
	SeaTemperatureC         float64   `json:"sea_temperature_c"`
	OceanCurrentKnots       float64   `json:"ocean_current_knots"`
	StormProbabilityPercent float64   `json:"storm_probability_percent"`
}

// FuelRecord is one fuel consumption log entry for a vessel. Fuel joins to
// navigation by (Vessel_ID, calendar date); when a day has several fuel
// rows the first in input order represents the day.
type FuelRecord struct {
	VesselID          string    `json:"vessel_id"`
	Timestamp         time.Time `json:"timestamp"`
	FuelPerHourLiters float64   `json:"fuel_used_per_hour_liters"`
	FuelPerNMLiters   float64   `json:"fuel_used_per_nm_liters"`
	FuelCostUSD       float64   `json:"fuel_cost_usd"`
	LoadWeightPercent float64   `json:"load_weight_percent"`
	EngineLoadPercent float64   `json:"engine_load_percent"`
}

// MaintenanceIncident is a single maintenance event. Incidents are sparse
// and are aggregated to (Vessel_ID, date) before joining: hours and cost
// summed, types concatenated, risk category reduced to the mode.
type MaintenanceIncident struct {
	VesselID           string    `json:"vessel_id"`
	Timestamp          time.Time `json:"timestamp"`
	MaintenanceType    string    `json:"maintenance_type"`
	RepairTimeHours    float64   `json:"repair_time_hours"`
	MaintenanceCostUSD float64   `json:"maintenance_cost_usd"`
	RiskCategory       string    `json:"risk_category"`
	IncidentType       string    `json:"incident_type"`
}

// SourceTables bundles the five raw datasets handed to the integrator.
// A nil or empty slice means that source was unavailable; the join layer
// degrades to the documented defaults for its columns.
type SourceTables struct {
	Vessels     []VesselSpec
	Navigation  []NavigationRecord
	Environment []EnvironmentSample
	Fuel        []FuelRecord
	Maintenance []MaintenanceIncident
}

// Loaded reports how many of the five sources carry at least one record.
func (s *SourceTables) Loaded() int {
	n := 0
	if len(s.Vessels) > 0 {
		n++
	}
	if len(s.Navigation) > 0 {
		n++
	}
	if len(s.Environment) > 0 {
		n++
	}
	if len(s.Fuel) > 0 {
		n++
	}
	if len(s.Maintenance) > 0 {
		n++
	}
	return n
}
