package exporter

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"fleetcli/internal/analytics"
	"fleetcli/internal/config"
	"fleetcli/pkg/contracts/domain"
)

// ExcelWriter produces the combined analytics workbook. The fact table
// sheet is capped at rowLimit data rows to keep the workbook openable;
// the CSV export always carries the full table.
type ExcelWriter struct {
	paths    *config.Paths
	rowLimit int
}

// NewExcelWriter creates an Excel report writer. rowLimit caps the Data
// sheet; zero or negative means no cap.
func NewExcelWriter(paths *config.Paths, rowLimit int) *ExcelWriter {
	return &ExcelWriter{paths: paths, rowLimit: rowLimit}
}

// WriteReport writes the analytics workbook with Data, Metrics, and
// Summary sheets.
func (w *ExcelWriter) WriteReport(facts []domain.FactRecord, metrics []domain.VesselMetrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Data"); err != nil {
		return fmt.Errorf("failed to rename data sheet: %w", err)
	}

	truncated := false
	dataRows := facts
	if w.rowLimit > 0 && len(dataRows) > w.rowLimit {
		dataRows = dataRows[:w.rowLimit]
		truncated = true
	}

	if err := writeSheetRow(f, "Data", 1, stringCells(factTableHeaders)); err != nil {
		return err
	}
	for i := range dataRows {
		if err := writeSheetRow(f, "Data", i+2, factCells(&dataRows[i])); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Metrics"); err != nil {
		return fmt.Errorf("failed to create metrics sheet: %w", err)
	}
	if err := writeSheetRow(f, "Metrics", 1, stringCells(vesselMetricsHeaders)); err != nil {
		return err
	}
	for i, m := range metrics {
		row := []interface{}{
			m.VesselID,
			cellFloat(m.FuelNMPerLiter),
			cellFloat(m.AvgFuelEfficiencyScore),
			cellFloat(m.AvgSpeed),
			cellFloat(m.AvgUtilizationRate),
			cellFloat(m.TotalDistanceNM),
			cellFloat(m.AvgEngineHealth),
			cellFloat(m.AvgEngineLoad),
			cellFloat(m.AvgWaveHeight),
			cellFloat(m.AvgNavigationDifficulty),
			cellFloat(m.TotalMaintenanceCost),
			cellFloat(m.TotalRepairHours),
			cellFloat(m.CompositeRiskScore),
		}
		if err := writeSheetRow(f, "Metrics", i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSheetRow(f, "Summary", 1, stringCells([]string{"column", "count", "mean", "std", "min", "max"})); err != nil {
		return err
	}
	for i, col := range analytics.DescribeFacts(facts) {
		row := []interface{}{
			col.Name,
			col.Count,
			cellFloat(col.Mean),
			cellFloat(col.Std),
			cellFloat(col.Min),
			cellFloat(col.Max),
		}
		if err := writeSheetRow(f, "Summary", i+2, row); err != nil {
			return err
		}
	}

	fullPath := w.paths.GetReportPath(config.ExcelReportFile)
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}

	slog.Info("wrote analytics workbook",
		slog.String("file", fullPath),
		slog.Int("data_rows", len(dataRows)),
		slog.Bool("truncated", truncated),
		slog.Int("vessels", len(metrics)))

	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// factCells mirrors factRow with native cell types so numeric fact
// columns land as numbers in the workbook. Absent optional values are
// left as empty cells.
func factCells(r *domain.FactRecord) []interface{} {
	var yearBuilt interface{}
	if r.HasSpec {
		yearBuilt = r.YearBuilt
	}
	return []interface{}{
		r.VesselID,
		formatTimestamp(r.Timestamp),
		r.Latitude,
		r.Longitude,
		r.SpeedKnots,
		r.EngineRPM,
		r.DepthMeters,
		r.DistanceNM,
		r.CourseDeviationDegrees,
		cellOptional(r.WaveHeightMeters, r.HasEnvironment),
		cellOptional(r.WindSpeedKnots, r.HasEnvironment),
		cellOptional(r.VisibilityKm, r.HasEnvironment),
		cellOptional(r.SeaTemperatureC, r.HasEnvironment),
		cellOptional(r.OceanCurrentKnots, r.HasEnvironment),
		cellOptional(r.StormProbabilityPercent, r.HasEnvironment),
		cellOptional(r.FuelPerHourLiters, r.HasFuel),
		cellOptional(r.FuelPerNMLiters, r.HasFuel),
		cellOptional(r.FuelCostUSD, r.HasFuel),
		cellOptional(r.LoadWeightPercent, r.HasFuel),
		cellOptional(r.EngineLoadPercent, r.HasFuel),
		r.VesselType,
		cellOptional(r.EnginePowerKW, r.HasSpec),
		r.FuelType,
		cellOptional(r.MaxDepthMeters, r.HasSpec),
		cellOptional(r.LoadCapacityTons, r.HasSpec),
		cellOptional(r.LengthMeters, r.HasSpec),
		yearBuilt,
		r.MaintenanceTypes,
		r.RepairTimeHours,
		r.MaintenanceCostUSD,
		r.RiskCategory,
		r.NMPerLiter,
		r.FuelEfficiencyScore,
		r.VesselUtilizationRate,
		r.StormRiskIndex,
		r.EngineHealthScore,
		r.NavigationDifficulty,
	}
}

func cellFloat(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func cellOptional(v float64, present bool) interface{} {
	if !present {
		return nil
	}
	return v
}

func stringCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
