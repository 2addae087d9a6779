package exporter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fleetcli/internal/config"
	"fleetcli/pkg/contracts/domain"
)

func sampleFacts(n int) []domain.FactRecord {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	facts := make([]domain.FactRecord, n)
	for i := range facts {
		facts[i] = domain.FactRecord{
			VesselID:  "V001",
			Timestamp: start.Add(time.Duration(i) * time.Hour),
		}
	}
	return facts
}

func TestExcelWriter_WriteReport(t *testing.T) {
	paths := testPaths(t)
	metrics := []domain.VesselMetrics{
		{VesselID: "V001", CompositeRiskScore: 42.5},
	}

	err := NewExcelWriter(paths, 0).WriteReport(sampleFacts(3), metrics)
	require.NoError(t, err)

	f, err := excelize.OpenFile(paths.GetReportPath(config.ExcelReportFile))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Data", "Metrics", "Summary"}, f.GetSheetList())

	dataRows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, dataRows, 4)
	assert.Equal(t, "Vessel_ID", dataRows[0][0])
	assert.Equal(t, "V001", dataRows[1][0])

	metricRows, err := f.GetRows("Metrics")
	require.NoError(t, err)
	require.Len(t, metricRows, 2)
	assert.Equal(t, "V001", metricRows[1][0])

	summaryRows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Greater(t, len(summaryRows), 1)
	assert.Equal(t, "column", summaryRows[0][0])
}

func TestExcelWriter_NumericCellsTyped(t *testing.T) {
	paths := testPaths(t)
	facts := sampleFacts(1)
	facts[0].SpeedKnots = 12.5
	metrics := []domain.VesselMetrics{{
		VesselID:           "V001",
		CompositeRiskScore: 42.5,
		AvgEngineLoad:      math.NaN(),
	}}

	require.NoError(t, NewExcelWriter(paths, 0).WriteReport(facts, metrics))

	f, err := excelize.OpenFile(paths.GetReportPath(config.ExcelReportFile))
	require.NoError(t, err)
	defer f.Close()

	// Speed_knots is column E; it must carry a numeric cell, not text.
	speedType, err := f.GetCellType("Data", "E2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, speedType)
	assert.NotEqual(t, excelize.CellTypeInlineString, speedType)

	speed, err := f.GetCellValue("Data", "E2")
	require.NoError(t, err)
	assert.Equal(t, "12.5", speed)

	idType, err := f.GetCellType("Data", "A2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, idType)

	// AvgEngineLoad is column H on the Metrics sheet; NaN stays blank.
	load, err := f.GetCellValue("Metrics", "H2")
	require.NoError(t, err)
	assert.Equal(t, "", load)
}

func TestExcelWriter_RowLimitTruncatesDataSheet(t *testing.T) {
	paths := testPaths(t)

	err := NewExcelWriter(paths, 5).WriteReport(sampleFacts(20), nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(paths.GetReportPath(config.ExcelReportFile))
	require.NoError(t, err)
	defer f.Close()

	dataRows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Len(t, dataRows, 6, "header plus capped data rows")
}
