package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/pkg/contracts/domain"
)

func envFact(wave float64) domain.FactRecord {
	return domain.FactRecord{HasEnvironment: true, WaveHeightMeters: wave}
}

func TestBackwardFillProcessor_FillEnvironment(t *testing.T) {
	tests := []struct {
		name       string
		facts      []domain.FactRecord
		wantWaves  []float64
		wantFilled []bool
	}{
		{
			name: "gap before first sample is filled from it",
			facts: []domain.FactRecord{
				{}, {}, envFact(2.0),
			},
			wantWaves:  []float64{2.0, 2.0, 2.0},
			wantFilled: []bool{true, true, true},
		},
		{
			name: "interior gap filled from the next sample",
			facts: []domain.FactRecord{
				envFact(1.0), {}, envFact(3.0),
			},
			wantWaves:  []float64{1.0, 3.0, 3.0},
			wantFilled: []bool{true, true, true},
		},
		{
			name: "trailing gap stays unfilled",
			facts: []domain.FactRecord{
				envFact(1.0), {}, {},
			},
			wantWaves:  []float64{1.0, 0, 0},
			wantFilled: []bool{true, false, false},
		},
		{
			name:       "no samples at all",
			facts:      []domain.FactRecord{{}, {}},
			wantWaves:  []float64{0, 0},
			wantFilled: []bool{false, false},
		},
	}

	processor := NewBackwardFillProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled := processor.FillEnvironment(tt.facts)

			require.Len(t, filled, len(tt.facts))
			for i := range filled {
				assert.Equal(t, tt.wantFilled[i], filled[i].HasEnvironment, "row %d presence", i)
				assert.Equal(t, tt.wantWaves[i], filled[i].WaveHeightMeters, "row %d wave", i)
			}
		})
	}
}

func TestBackwardFillProcessor_DoesNotMutateInput(t *testing.T) {
	facts := []domain.FactRecord{{}, envFact(2.0)}

	NewBackwardFillProcessor().FillEnvironment(facts)

	assert.False(t, facts[0].HasEnvironment)
}

func TestBackwardFillProcessor_FillEnvironmentWithStats(t *testing.T) {
	facts := []domain.FactRecord{
		{}, envFact(1.0), {}, {},
	}

	filled, stats := NewBackwardFillProcessor().FillEnvironmentWithStats(facts)

	assert.Len(t, filled, 4)
	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 1, stats.FilledCount)
	assert.Equal(t, 2, stats.UnfilledGaps)
}
