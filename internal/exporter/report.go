package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"fleetcli/internal/config"
	"fleetcli/pkg/contracts/domain"
)

const topRiskVessels = 5

// SummaryWriter writes the plain-text executive summary for a pipeline
// run.
type SummaryWriter struct {
	paths *config.Paths
}

// NewSummaryWriter creates an executive summary writer.
func NewSummaryWriter(paths *config.Paths) *SummaryWriter {
	return &SummaryWriter{paths: paths}
}

// WriteExecutiveSummary renders the fleet-level narrative report from the
// fact table and per-vessel metrics. metrics must be sorted by descending
// composite risk score, as produced by aggregation.
func (w *SummaryWriter) WriteExecutiveSummary(facts []domain.FactRecord, metrics []domain.VesselMetrics) error {
	var b strings.Builder

	b.WriteString("FLEET ANALYTICS EXECUTIVE SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("FLEET OVERVIEW\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "Vessels analyzed:        %d\n", len(metrics))
	fmt.Fprintf(&b, "Navigation records:      %d\n", len(facts))
	if span, ok := factTimeSpan(facts); ok {
		fmt.Fprintf(&b, "Reporting period:        %s\n", span)
	}
	b.WriteString("\n")

	b.WriteString("KEY OPERATIONAL METRICS\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "Avg fuel efficiency:     %s\n", summaryValue(fleetMean(metrics, func(m domain.VesselMetrics) float64 { return m.AvgFuelEfficiencyScore })))
	fmt.Fprintf(&b, "Avg utilization rate:    %s\n", summaryValue(fleetMean(metrics, func(m domain.VesselMetrics) float64 { return m.AvgUtilizationRate })))
	fmt.Fprintf(&b, "Avg engine health:       %s\n", summaryValue(fleetMean(metrics, func(m domain.VesselMetrics) float64 { return m.AvgEngineHealth })))
	fmt.Fprintf(&b, "Total distance (nm):     %.1f\n", fleetSum(metrics, func(m domain.VesselMetrics) float64 { return m.TotalDistanceNM }))
	b.WriteString("\n")

	b.WriteString("MAINTENANCE AND COST\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "Total maintenance cost:  $%.2f\n", fleetSum(metrics, func(m domain.VesselMetrics) float64 { return m.TotalMaintenanceCost }))
	fmt.Fprintf(&b, "Total repair hours:      %.1f\n", fleetSum(metrics, func(m domain.VesselMetrics) float64 { return m.TotalRepairHours }))
	b.WriteString("\n")

	b.WriteString("RISK DISTRIBUTION\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	counts := map[domain.RiskLevel]int{}
	for _, m := range metrics {
		counts[domain.RiskLevelOf(m.CompositeRiskScore)]++
	}
	for _, level := range []domain.RiskLevel{domain.RiskLevelHigh, domain.RiskLevelMedium, domain.RiskLevelLow} {
		fmt.Fprintf(&b, "%-8s %d vessels\n", string(level)+":", counts[level])
	}
	b.WriteString("\n")

	b.WriteString("HIGHEST RISK VESSELS\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	top := metrics
	if len(top) > topRiskVessels {
		top = top[:topRiskVessels]
	}
	for i, m := range top {
		fmt.Fprintf(&b, "%d. %s  risk=%.1f  health=%s  cost=$%.2f\n",
			i+1, m.VesselID, m.CompositeRiskScore,
			summaryValue(m.AvgEngineHealth), m.TotalMaintenanceCost)
	}
	b.WriteString("\n")

	b.WriteString("RECOMMENDATIONS\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, rec := range recommendations(metrics, counts) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	fullPath := w.paths.GetReportPath(config.ExecutiveSummaryFile)
	if err := os.WriteFile(fullPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write executive summary: %w", err)
	}

	slog.Info("wrote executive summary", slog.String("file", fullPath))

	return nil
}

func factTimeSpan(facts []domain.FactRecord) (string, bool) {
	if len(facts) == 0 {
		return "", false
	}
	first := facts[0].Timestamp
	last := facts[0].Timestamp
	for i := range facts {
		ts := facts[i].Timestamp
		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}
	return fmt.Sprintf("%s to %s", first.Format("2006-01-02"), last.Format("2006-01-02")), true
}

// fleetMean averages a metric over vessels, skipping absent values.
func fleetMean(metrics []domain.VesselMetrics, get func(domain.VesselMetrics) float64) float64 {
	sum := 0.0
	n := 0
	for _, m := range metrics {
		v := get(m)
		if domain.IsMissing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func fleetSum(metrics []domain.VesselMetrics, get func(domain.VesselMetrics) float64) float64 {
	sum := 0.0
	for _, m := range metrics {
		v := get(m)
		if domain.IsMissing(v) {
			continue
		}
		sum += v
	}
	return sum
}

func summaryValue(v float64) string {
	if domain.IsMissing(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

func recommendations(metrics []domain.VesselMetrics, counts map[domain.RiskLevel]int) []string {
	var recs []string
	if n := counts[domain.RiskLevelHigh]; n > 0 {
		recs = append(recs, fmt.Sprintf("Schedule inspections for the %d high-risk vessels before their next deployment.", n))
	}
	lowHealth := 0
	for _, m := range metrics {
		if !domain.IsMissing(m.AvgEngineHealth) && m.AvgEngineHealth < 50 {
			lowHealth++
		}
	}
	if lowHealth > 0 {
		recs = append(recs, fmt.Sprintf("Review engine maintenance plans for %d vessels with average engine health below 50.", lowHealth))
	}
	if eff := fleetMean(metrics, func(m domain.VesselMetrics) float64 { return m.AvgFuelEfficiencyScore }); !domain.IsMissing(eff) && eff < 40 {
		recs = append(recs, "Fleet fuel efficiency is below target; audit routing and load planning.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Fleet risk indicators are within normal ranges; continue routine monitoring.")
	}
	return recs
}
