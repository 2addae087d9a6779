package analytics

import (
	"math"

	"fleetcli/pkg/contracts/domain"
)

// ColumnStats holds summary statistics for one numeric fact table column.
// Count is the number of present values; the moments are NaN when no
// values are present.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// DescribeFacts computes summary statistics for every numeric column of
// the fact table, in column order.
func DescribeFacts(facts []domain.FactRecord) []ColumnStats {
	columns := domain.NumericFactColumns()
	stats := make([]ColumnStats, 0, len(columns))

	for _, col := range columns {
		var values []float64
		for i := range facts {
			if v, ok := col.Value(&facts[i]); ok {
				values = append(values, v)
			}
		}

		cs := ColumnStats{
			Name:  col.Name,
			Count: len(values),
			Mean:  mean(values),
			Std:   stdDev(values),
			Min:   math.NaN(),
			Max:   math.NaN(),
		}
		for i, v := range values {
			if i == 0 || v < cs.Min {
				cs.Min = v
			}
			if i == 0 || v > cs.Max {
				cs.Max = v
			}
		}
		stats = append(stats, cs)
	}

	return stats
}
