package exporter

import (
	"fmt"
	"log/slog"

	"fleetcli/pkg/contracts/domain"
)

// factTableHeaders lists the fact table columns in output order: source
// columns in join order, derived scores last.
var factTableHeaders = []string{
	"Vessel_ID", "Timestamp", "Latitude", "Longitude", "Speed_knots",
	"Engine_RPM", "Depth_meters", "Distance_covered_nm", "Course_Deviation_degrees",
	"Wave_Height_meters", "Wind_Speed_knots", "Visibility_km",
	"Sea_Temperature_C", "Ocean_Current_knots", "Storm_Probability_percent",
	"Fuel_Used_per_Hour_liters", "Fuel_Used_per_NM_liters", "Fuel_Cost_USD",
	"Load_Weight_percent", "Engine_Load_percent",
	"Type", "Engine_Power_kW", "Fuel_Type", "Max_Depth_meters",
	"Load_Capacity_tons", "Length_meters", "Year_Built",
	"Maintenance_Type", "Repair_Time_hours", "Maintenance_Cost_USD", "Risk_Category",
	"NM_per_Liter", "Fuel_Efficiency_Score", "Vessel_Utilization_Rate",
	"Storm_Risk_Index", "Engine_Health_Score", "Navigation_Difficulty",
}

// WriteFactTable streams the integrated fact table to a CSV file.
func (w *CSVWriter) WriteFactTable(filePath string, facts []domain.FactRecord) error {
	stream, err := w.CreateStreamWriter(filePath, factTableHeaders)
	if err != nil {
		return fmt.Errorf("failed to create fact table file: %w", err)
	}
	defer stream.Close()

	for i := range facts {
		if err := stream.WriteRecord(factRow(&facts[i])); err != nil {
			return fmt.Errorf("failed to write fact record %d: %w", i, err)
		}
	}

	slog.Info("wrote integrated fact table",
		slog.String("file", filePath),
		slog.Int("records", len(facts)))

	return nil
}

func factRow(r *domain.FactRecord) []string {
	yearBuilt := ""
	if r.HasSpec {
		yearBuilt = formatInt(r.YearBuilt)
	}
	return []string{
		r.VesselID,
		formatTimestamp(r.Timestamp),
		formatFloat(r.Latitude),
		formatFloat(r.Longitude),
		formatFloat(r.SpeedKnots),
		formatFloat(r.EngineRPM),
		formatFloat(r.DepthMeters),
		formatFloat(r.DistanceNM),
		formatFloat(r.CourseDeviationDegrees),
		formatOptional(r.WaveHeightMeters, r.HasEnvironment),
		formatOptional(r.WindSpeedKnots, r.HasEnvironment),
		formatOptional(r.VisibilityKm, r.HasEnvironment),
		formatOptional(r.SeaTemperatureC, r.HasEnvironment),
		formatOptional(r.OceanCurrentKnots, r.HasEnvironment),
		formatOptional(r.StormProbabilityPercent, r.HasEnvironment),
		formatOptional(r.FuelPerHourLiters, r.HasFuel),
		formatOptional(r.FuelPerNMLiters, r.HasFuel),
		formatOptional(r.FuelCostUSD, r.HasFuel),
		formatOptional(r.LoadWeightPercent, r.HasFuel),
		formatOptional(r.EngineLoadPercent, r.HasFuel),
		r.VesselType,
		formatOptional(r.EnginePowerKW, r.HasSpec),
		r.FuelType,
		formatOptional(r.MaxDepthMeters, r.HasSpec),
		formatOptional(r.LoadCapacityTons, r.HasSpec),
		formatOptional(r.LengthMeters, r.HasSpec),
		yearBuilt,
		r.MaintenanceTypes,
		formatFloat(r.RepairTimeHours),
		formatFloat(r.MaintenanceCostUSD),
		r.RiskCategory,
		formatFloat(r.NMPerLiter),
		formatFloat(r.FuelEfficiencyScore),
		formatFloat(r.VesselUtilizationRate),
		formatFloat(r.StormRiskIndex),
		formatFloat(r.EngineHealthScore),
		formatFloat(r.NavigationDifficulty),
	}
}
