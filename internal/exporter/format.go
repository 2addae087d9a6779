package exporter

import (
	"math"
	"strconv"
	"time"
)

// timestampFormat is the layout used for timestamps in all tabular
// outputs, matching the source dataset convention.
const timestampFormat = "2006-01-02 15:04:05"

func formatTimestamp(ts time.Time) string {
	return ts.Format(timestampFormat)
}

// formatFloat renders a float for CSV output. NaN (an absent aggregate)
// renders as an empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatOptional renders a possibly-missing source value. Absent values
// render as empty cells.
func formatOptional(v float64, present bool) string {
	if !present {
		return ""
	}
	return formatFloat(v)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
