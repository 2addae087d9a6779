package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fleetcli/internal/config"
	fleeterrors "fleetcli/internal/errors"
	"fleetcli/pkg/contracts/domain"
)

// timestampLayouts are accepted in order. The reference datasets use the
// space-separated layout; RFC 3339 covers exported Go data.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Loader reads the five source CSV files from a directory. Missing files
// degrade gracefully: the corresponding table stays empty and downstream
// joins fall back to the documented defaults. Only a directory with zero
// loadable sources is fatal.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a source table loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadDirectory loads whichever of the five source files exist in dir.
// It returns MissingSourceError when none could be loaded and SchemaError
// when a present file lacks a required key column.
func (l *Loader) LoadDirectory(dir string) (*domain.SourceTables, error) {
	tables := &domain.SourceTables{}
	loaded := 0

	type sourceFile struct {
		name string
		load func(path string) (int, error)
	}

	sources := []sourceFile{
		{config.VesselSpecsFile, func(p string) (int, error) {
			records, err := l.loadVessels(p)
			tables.Vessels = records
			return len(records), err
		}},
		{config.NavigationFile, func(p string) (int, error) {
			records, err := l.loadNavigation(p)
			tables.Navigation = records
			return len(records), err
		}},
		{config.EnvironmentFile, func(p string) (int, error) {
			records, err := l.loadEnvironment(p)
			tables.Environment = records
			return len(records), err
		}},
		{config.FuelFile, func(p string) (int, error) {
			records, err := l.loadFuel(p)
			tables.Fuel = records
			return len(records), err
		}},
		{config.MaintenanceFile, func(p string) (int, error) {
			records, err := l.loadMaintenance(p)
			tables.Maintenance = records
			return len(records), err
		}},
	}

	for _, src := range sources {
		path := filepath.Join(dir, src.name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			l.logger.Warn("source file not found", slog.String("file", src.name))
			continue
		}
		count, err := src.load(path)
		if err != nil {
			return nil, err
		}
		l.logger.Info("loaded source file",
			slog.String("file", src.name),
			slog.Int("records", count))
		loaded++
	}

	if loaded == 0 {
		return nil, fleeterrors.NewMissingSourceError(dir)
	}

	return tables, nil
}

func (l *Loader) loadVessels(path string) ([]domain.VesselSpec, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	cols := newColumnSet(header)
	if err := cols.require(filepath.Base(path), "Vessel_ID"); err != nil {
		return nil, err
	}

	records := make([]domain.VesselSpec, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.VesselSpec{
			VesselID:         cols.str(row, "Vessel_ID"),
			Type:             cols.str(row, "Type"),
			EnginePowerKW:    cols.num(row, "Engine_Power_kW"),
			FuelType:         cols.str(row, "Fuel_Type"),
			MaxDepthMeters:   cols.num(row, "Max_Depth_meters"),
			LoadCapacityTons: cols.num(row, "Load_Capacity_tons"),
			LengthMeters:     cols.num(row, "Length_meters"),
			YearBuilt:        int(cols.num(row, "Year_Built")),
		})
	}
	return records, nil
}

func (l *Loader) loadNavigation(path string) ([]domain.NavigationRecord, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	cols := newColumnSet(header)
	if err := cols.require(filepath.Base(path), "Vessel_ID", "Timestamp"); err != nil {
		return nil, err
	}

	records := make([]domain.NavigationRecord, 0, len(rows))
	for i, row := range rows {
		ts, ok := l.timestamp(cols, row, path, i)
		if !ok {
			continue
		}
		records = append(records, domain.NavigationRecord{
			VesselID:               cols.str(row, "Vessel_ID"),
			Timestamp:              ts,
			Latitude:               cols.num(row, "Latitude"),
			Longitude:              cols.num(row, "Longitude"),
			SpeedKnots:             cols.num(row, "Speed_knots"),
			EngineRPM:              cols.num(row, "Engine_RPM"),
			DepthMeters:            cols.num(row, "Depth_meters"),
			DistanceNM:             cols.num(row, "Distance_covered_nm"),
			CourseDeviationDegrees: cols.num(row, "Course_Deviation_degrees"),
		})
	}
	return records, nil
}

func (l *Loader) loadEnvironment(path string) ([]domain.EnvironmentSample, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	cols := newColumnSet(header)
	if err := cols.require(filepath.Base(path), "Timestamp"); err != nil {
		return nil, err
	}

	records := make([]domain.EnvironmentSample, 0, len(rows))
	for i, row := range rows {
		ts, ok := l.timestamp(cols, row, path, i)
		if !ok {
			continue
		}
		records = append(records, domain.EnvironmentSample{
			Timestamp:               ts,
			WaveHeightMeters:        cols.num(row, "Wave_Height_meters"),
			WindSpeedKnots:          cols.num(row, "Wind_Speed_knots"),
			VisibilityKm:            cols.num(row, "Visibility_km"),
			SeaTemperatureC:         cols.num(row, "Sea_Temperature_C"),
			OceanCurrentKnots:       cols.num(row, "Ocean_Current_knots"),
			StormProbabilityPercent: cols.num(row, "Storm_Probability_percent"),
		})
	}
	return records, nil
}

func (l *Loader) loadFuel(path string) ([]domain.FuelRecord, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	cols := newColumnSet(header)
	if err := cols.require(filepath.Base(path), "Vessel_ID", "Timestamp"); err != nil {
		return nil, err
	}

	records := make([]domain.FuelRecord, 0, len(rows))
	for i, row := range rows {
		ts, ok := l.timestamp(cols, row, path, i)
		if !ok {
			continue
		}
		records = append(records, domain.FuelRecord{
			VesselID:          cols.str(row, "Vessel_ID"),
			Timestamp:         ts,
			FuelPerHourLiters: cols.num(row, "Fuel_Used_per_Hour_liters"),
			FuelPerNMLiters:   cols.num(row, "Fuel_Used_per_NM_liters"),
			FuelCostUSD:       cols.num(row, "Fuel_Cost_USD"),
			LoadWeightPercent: cols.num(row, "Load_Weight_percent"),
			EngineLoadPercent: cols.num(row, "Engine_Load_percent"),
		})
	}
	return records, nil
}

func (l *Loader) loadMaintenance(path string) ([]domain.MaintenanceIncident, error) {
	rows, header, err := l.readCSV(path)
	if err != nil {
		return nil, err
	}
	cols := newColumnSet(header)
	if err := cols.require(filepath.Base(path), "Vessel_ID", "Timestamp"); err != nil {
		return nil, err
	}

	records := make([]domain.MaintenanceIncident, 0, len(rows))
	for i, row := range rows {
		ts, ok := l.timestamp(cols, row, path, i)
		if !ok {
			continue
		}
		records = append(records, domain.MaintenanceIncident{
			VesselID:           cols.str(row, "Vessel_ID"),
			Timestamp:          ts,
			MaintenanceType:    cols.str(row, "Maintenance_Type"),
			RepairTimeHours:    cols.num(row, "Repair_Time_hours"),
			MaintenanceCostUSD: cols.num(row, "Maintenance_Cost_USD"),
			RiskCategory:       cols.str(row, "Risk_Category"),
			IncidentType:       cols.str(row, "Incident_Type"),
		})
	}
	return records, nil
}

// readCSV reads a CSV file, strips a UTF-8 BOM if present, and returns
// data rows plus the header.
func (l *Loader) readCSV(path string) ([][]string, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Remove BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[1:], records[0], nil
}

// timestamp parses the Timestamp column of a row, logging and skipping
// rows whose value fits no accepted layout.
func (l *Loader) timestamp(cols columnSet, row []string, path string, rowIdx int) (time.Time, bool) {
	raw := cols.str(row, "Timestamp")
	ts, err := ParseTimestamp(raw)
	if err != nil {
		l.logger.Warn("skipping row with unparseable timestamp",
			slog.String("file", filepath.Base(path)),
			slog.Int("row", rowIdx+2),
			slog.String("value", raw))
		return time.Time{}, false
	}
	return ts, true
}

// ParseTimestamp parses a timestamp in any of the accepted layouts.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// columnSet maps normalized column names to their index in a CSV header.
type columnSet map[string]int

func newColumnSet(header []string) columnSet {
	cols := make(columnSet, len(header))
	for i, col := range header {
		cleaned := strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF"))
		cols[strings.ToLower(cleaned)] = i
	}
	return cols
}

// require returns a SchemaError naming the source when a key column is
// absent.
func (c columnSet) require(source string, names ...string) error {
	for _, name := range names {
		if _, ok := c[strings.ToLower(name)]; !ok {
			return fleeterrors.NewSchemaError(source, name)
		}
	}
	return nil
}

func (c columnSet) str(row []string, name string) string {
	idx, ok := c[strings.ToLower(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// num parses a numeric cell, treating absent or malformed values as zero.
func (c columnSet) num(row []string, name string) float64 {
	raw := c.str(row, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
