package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/pkg/contracts/domain"
)

func TestDescribeFacts(t *testing.T) {
	facts := []domain.FactRecord{
		{SpeedKnots: 10, HasEnvironment: true, WaveHeightMeters: 2},
		{SpeedKnots: 20},
	}

	stats := DescribeFacts(facts)
	byName := make(map[string]ColumnStats, len(stats))
	for _, cs := range stats {
		byName[cs.Name] = cs
	}

	speed, ok := byName["Speed_knots"]
	require.True(t, ok)
	assert.Equal(t, 2, speed.Count)
	assert.InDelta(t, 15.0, speed.Mean, 1e-9)
	assert.InDelta(t, 5.0, speed.Std, 1e-9)
	assert.InDelta(t, 10.0, speed.Min, 1e-9)
	assert.InDelta(t, 20.0, speed.Max, 1e-9)

	// Environment columns only count rows that carry environment data.
	wave, ok := byName["Wave_Height_meters"]
	require.True(t, ok)
	assert.Equal(t, 1, wave.Count)
	assert.InDelta(t, 2.0, wave.Mean, 1e-9)

	// Fuel columns have no present values.
	fuel, ok := byName["Fuel_Cost_USD"]
	require.True(t, ok)
	assert.Zero(t, fuel.Count)
	assert.True(t, math.IsNaN(fuel.Mean))
	assert.True(t, math.IsNaN(fuel.Min))
}

func TestDescribeFacts_Empty(t *testing.T) {
	stats := DescribeFacts(nil)

	require.NotEmpty(t, stats)
	for _, cs := range stats {
		assert.Zero(t, cs.Count)
		assert.True(t, math.IsNaN(cs.Mean), cs.Name)
	}
}
