package exporter

import (
	"fmt"
	"log/slog"

	"fleetcli/internal/analytics"
	"fleetcli/pkg/contracts/domain"
)

// vesselMetricsHeaders lists the per-vessel metrics columns in output
// order.
var vesselMetricsHeaders = []string{
	"Vessel_ID", "fuel_nm_per_liter", "avg_fuel_efficiency_score",
	"avg_speed", "avg_utilization_rate", "total_distance",
	"avg_engine_health", "avg_engine_load", "avg_wave_height",
	"avg_navigation_difficulty", "total_maintenance_cost",
	"total_repair_hours", "composite_risk_score",
}

// WriteVesselMetrics writes the per-vessel metrics table, preserving the
// caller's ordering (descending composite risk).
func (w *CSVWriter) WriteVesselMetrics(filePath string, metrics []domain.VesselMetrics) error {
	records := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, []string{
			m.VesselID,
			formatFloat(m.FuelNMPerLiter),
			formatFloat(m.AvgFuelEfficiencyScore),
			formatFloat(m.AvgSpeed),
			formatFloat(m.AvgUtilizationRate),
			formatFloat(m.TotalDistanceNM),
			formatFloat(m.AvgEngineHealth),
			formatFloat(m.AvgEngineLoad),
			formatFloat(m.AvgWaveHeight),
			formatFloat(m.AvgNavigationDifficulty),
			formatFloat(m.TotalMaintenanceCost),
			formatFloat(m.TotalRepairHours),
			formatFloat(m.CompositeRiskScore),
		})
	}

	if err := w.WriteSimpleCSV(filePath, vesselMetricsHeaders, records); err != nil {
		return fmt.Errorf("failed to write vessel metrics: %w", err)
	}

	slog.Info("wrote vessel metrics table",
		slog.String("file", filePath),
		slog.Int("vessels", len(metrics)))

	return nil
}

// WriteSummaryStats writes describe-style summary statistics for the
// numeric fact table columns.
func (w *CSVWriter) WriteSummaryStats(filePath string, facts []domain.FactRecord) error {
	headers := []string{"column", "count", "mean", "std", "min", "max"}

	stats := analytics.DescribeFacts(facts)
	records := make([][]string, 0, len(stats))
	for _, col := range stats {
		records = append(records, []string{
			col.Name,
			formatInt(col.Count),
			formatFloat(col.Mean),
			formatFloat(col.Std),
			formatFloat(col.Min),
			formatFloat(col.Max),
		})
	}

	if err := w.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write summary statistics: %w", err)
	}

	return nil
}
