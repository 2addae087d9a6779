package exporter

import (
	"fmt"

	"fleetcli/internal/config"
	"fleetcli/pkg/contracts/domain"
)

// WriteSourceTables persists the five source tables to the data
// directory under their canonical file names, so generated datasets can
// later be reloaded like user-supplied ones.
func (w *CSVWriter) WriteSourceTables(tables *domain.SourceTables) error {
	vesselRecords := make([][]string, 0, len(tables.Vessels))
	for _, v := range tables.Vessels {
		vesselRecords = append(vesselRecords, []string{
			v.VesselID, v.Type, formatFloat(v.EnginePowerKW), v.FuelType,
			formatFloat(v.MaxDepthMeters), formatFloat(v.LoadCapacityTons),
			formatFloat(v.LengthMeters), formatInt(v.YearBuilt),
		})
	}
	if err := w.WriteSimpleCSV("data/"+config.VesselSpecsFile, []string{
		"Vessel_ID", "Type", "Engine_Power_kW", "Fuel_Type",
		"Max_Depth_meters", "Load_Capacity_tons", "Length_meters", "Year_Built",
	}, vesselRecords); err != nil {
		return fmt.Errorf("failed to write vessel specifications: %w", err)
	}

	navRecords := make([][]string, 0, len(tables.Navigation))
	for _, n := range tables.Navigation {
		navRecords = append(navRecords, []string{
			n.VesselID, formatTimestamp(n.Timestamp), formatFloat(n.Latitude),
			formatFloat(n.Longitude), formatFloat(n.SpeedKnots),
			formatFloat(n.EngineRPM), formatFloat(n.DepthMeters),
			formatFloat(n.DistanceNM), formatFloat(n.CourseDeviationDegrees),
		})
	}
	if err := w.WriteSimpleCSV("data/"+config.NavigationFile, []string{
		"Vessel_ID", "Timestamp", "Latitude", "Longitude", "Speed_knots",
		"Engine_RPM", "Depth_meters", "Distance_covered_nm", "Course_Deviation_degrees",
	}, navRecords); err != nil {
		return fmt.Errorf("failed to write navigation logs: %w", err)
	}

	envRecords := make([][]string, 0, len(tables.Environment))
	for _, e := range tables.Environment {
		envRecords = append(envRecords, []string{
			formatTimestamp(e.Timestamp), formatFloat(e.WaveHeightMeters),
			formatFloat(e.WindSpeedKnots), formatFloat(e.VisibilityKm),
			formatFloat(e.SeaTemperatureC), formatFloat(e.OceanCurrentKnots),
			formatFloat(e.StormProbabilityPercent),
		})
	}
	if err := w.WriteSimpleCSV("data/"+config.EnvironmentFile, []string{
		"Timestamp", "Wave_Height_meters", "Wind_Speed_knots", "Visibility_km",
		"Sea_Temperature_C", "Ocean_Current_knots", "Storm_Probability_percent",
	}, envRecords); err != nil {
		return fmt.Errorf("failed to write environmental conditions: %w", err)
	}

	fuelRecords := make([][]string, 0, len(tables.Fuel))
	for _, f := range tables.Fuel {
		fuelRecords = append(fuelRecords, []string{
			f.VesselID, formatTimestamp(f.Timestamp),
			formatFloat(f.FuelPerHourLiters), formatFloat(f.FuelPerNMLiters),
			formatFloat(f.FuelCostUSD), formatFloat(f.LoadWeightPercent),
			formatFloat(f.EngineLoadPercent),
		})
	}
	if err := w.WriteSimpleCSV("data/"+config.FuelFile, []string{
		"Vessel_ID", "Timestamp", "Fuel_Used_per_Hour_liters",
		"Fuel_Used_per_NM_liters", "Fuel_Cost_USD", "Load_Weight_percent",
		"Engine_Load_percent",
	}, fuelRecords); err != nil {
		return fmt.Errorf("failed to write fuel consumption: %w", err)
	}

	maintRecords := make([][]string, 0, len(tables.Maintenance))
	for _, m := range tables.Maintenance {
		maintRecords = append(maintRecords, []string{
			m.VesselID, formatTimestamp(m.Timestamp), m.MaintenanceType,
			formatFloat(m.RepairTimeHours), formatFloat(m.MaintenanceCostUSD),
			m.RiskCategory, m.IncidentType,
		})
	}
	if err := w.WriteSimpleCSV("data/"+config.MaintenanceFile, []string{
		"Vessel_ID", "Timestamp", "Maintenance_Type", "Repair_Time_hours",
		"Maintenance_Cost_USD", "Risk_Category", "Incident_Type",
	}, maintRecords); err != nil {
		return fmt.Errorf("failed to write maintenance incidents: %w", err)
	}

	return nil
}
