package dataprocessing

import (
	"fleetcli/pkg/contracts/domain"
)

// BackwardFillProcessor fills environment gaps in the fact table using
// the next row that carries an environment block. This fills stretches
// before the first available sample, which means a navigation row can be
// scored with a sample recorded after it. That is the documented
// reconciliation policy, kept as-is; treat the scores as batch analytics,
// not point-in-time decisions.
type BackwardFillProcessor struct{}

// NewBackwardFillProcessor creates a new backward-fill processor
func NewBackwardFillProcessor() *BackwardFillProcessor {
	return &BackwardFillProcessor{}
}

// FillEnvironment returns a copy of facts with missing environment blocks
// filled from the next present one in slice order. Rows after the last
// present sample stay unfilled.
func (b *BackwardFillProcessor) FillEnvironment(facts []domain.FactRecord) []domain.FactRecord {
	if len(facts) == 0 {
		return facts
	}

	result := make([]domain.FactRecord, len(facts))
	copy(result, facts)

	var next *domain.FactRecord
	for i := len(result) - 1; i >= 0; i-- {
		if result[i].HasEnvironment {
			next = &result[i]
			continue
		}
		if next == nil {
			continue
		}
		result[i].HasEnvironment = true
		result[i].WaveHeightMeters = next.WaveHeightMeters
		result[i].WindSpeedKnots = next.WindSpeedKnots
		result[i].VisibilityKm = next.VisibilityKm
		result[i].SeaTemperatureC = next.SeaTemperatureC
		result[i].OceanCurrentKnots = next.OceanCurrentKnots
		result[i].StormProbabilityPercent = next.StormProbabilityPercent
	}

	return result
}

// BackfillStatistics summarizes a backward-fill pass.
type BackfillStatistics struct {
	TotalRecords int
	FilledCount  int
	UnfilledGaps int
}

// FillEnvironmentWithStats performs the fill and reports how many rows
// were filled and how many stayed without environment data.
func (b *BackwardFillProcessor) FillEnvironmentWithStats(facts []domain.FactRecord) ([]domain.FactRecord, BackfillStatistics) {
	missingBefore := 0
	for i := range facts {
		if !facts[i].HasEnvironment {
			missingBefore++
		}
	}

	filled := b.FillEnvironment(facts)

	missingAfter := 0
	for i := range filled {
		if !filled[i].HasEnvironment {
			missingAfter++
		}
	}

	return filled, BackfillStatistics{
		TotalRecords: len(filled),
		FilledCount:  missingBefore - missingAfter,
		UnfilledGaps: missingAfter,
	}
}
