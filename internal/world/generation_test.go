package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesConsistentTheater(t *testing.T) {
	w := Generate(SmallTestConfig())

	require.Len(t, w.Locations, 8)
	require.Len(t, w.Factions, 2)
	assert.NotEmpty(t, w.Roads)
	assert.NotEmpty(t, w.Units)

	for _, l := range w.Locations {
		assert.GreaterOrEqual(t, l.Fortification, 0)
		assert.LessOrEqual(t, l.Fortification, MaxFortification)
		assert.Positive(t, l.Population)
		assert.GreaterOrEqual(t, l.Stability, 0)
		assert.LessOrEqual(t, l.Stability, 100)
	}
	for _, u := range w.Units {
		assert.Positive(t, u.Strength)
		require.Equal(t, PosLocation, u.Pos.Kind)
		_, ok := w.Location(u.Pos.Location)
		assert.True(t, ok)
	}
	for _, r := range w.Roads {
		_, ok := w.Location(r.A)
		assert.True(t, ok)
		_, ok = w.Location(r.B)
		assert.True(t, ok)
		assert.LessOrEqual(t, len(r.Stages), 3)
	}

	// Each faction holds its capital and fields at least one army.
	for _, f := range w.Factions {
		require.NotEmpty(t, f.StrategicLocations)
		capital, ok := w.Location(f.StrategicLocations[0])
		require.True(t, ok)
		assert.Equal(t, f.ID, capital.Faction)
		assert.Positive(t, w.StrengthAt(AtLocation(capital.ID), f.ID))
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := Generate(SmallTestConfig())
	b := Generate(SmallTestConfig())

	require.Len(t, b.Locations, len(a.Locations))
	for i := range a.Locations {
		assert.Equal(t, a.Locations[i].Population, b.Locations[i].Population)
		assert.Equal(t, a.Locations[i].Faction, b.Locations[i].Faction)
	}
	require.Len(t, b.Units, len(a.Units))
	for i := range a.Units {
		assert.Equal(t, a.Units[i].Strength, b.Units[i].Strength)
	}
}
