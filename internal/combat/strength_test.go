package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/warmarch/internal/world"
)

func TestStrengthSumsUnitsAndBonus(t *testing.T) {
	units := []*world.Unit{
		{ID: 1, Strength: 500},
		{ID: 2, Strength: 300},
	}
	assert.Equal(t, 800, Strength(units, nil, 0))
	assert.Equal(t, 1000, Strength(units, nil, 200))
}

func TestStrengthAppliesLeaderBonuses(t *testing.T) {
	u1 := world.UnitID(1)
	u2 := world.UnitID(2)
	units := []*world.Unit{
		{ID: u1, Strength: 1000},
		{ID: u2, Strength: 500},
	}
	leaders := []*world.Leader{
		{ID: 1, UnitID: &u1, CommandBonus: 0.2},
		{ID: 2, UnitID: &u1, CommandBonus: 0.1}, // stacks additively on the same unit
		{ID: 3, CommandBonus: 0.5},              // unattached, contributes nothing
	}
	// 1000×1.3 + 500 = 1800
	assert.Equal(t, 1800, Strength(units, leaders, 0))
}

func TestStrengthRoundsToNearest(t *testing.T) {
	uid := world.UnitID(1)
	units := []*world.Unit{{ID: uid, Strength: 333}}
	leaders := []*world.Leader{{ID: 1, UnitID: &uid, CommandBonus: 0.15}}
	// 333 × 1.15 = 382.95 → 383
	assert.Equal(t, 383, Strength(units, leaders, 0))
}

func TestApplyLossesDrainsInInputOrder(t *testing.T) {
	units := []*world.Unit{
		{ID: 1, Strength: 500},
		{ID: 2, Strength: 300},
		{ID: 3, Strength: 200},
	}
	survivors, destroyed := ApplyLosses(units, 600)

	require.Len(t, destroyed, 1)
	assert.Equal(t, world.UnitID(1), destroyed[0])
	require.Len(t, survivors, 2)
	assert.Equal(t, 200, survivors[0].Strength) // 300 − 100
	assert.Equal(t, 200, survivors[1].Strength) // untouched
}

func TestApplyLossesOrderSensitivity(t *testing.T) {
	mk := func() []*world.Unit {
		return []*world.Unit{
			{ID: 1, Strength: 500},
			{ID: 2, Strength: 300},
		}
	}

	_, destroyedFront := ApplyLosses(mk(), 500)
	require.Len(t, destroyedFront, 1)
	assert.Equal(t, world.UnitID(1), destroyedFront[0])

	reversed := mk()
	reversed[0], reversed[1] = reversed[1], reversed[0]
	survivors, destroyedBack := ApplyLosses(reversed, 500)
	require.Len(t, destroyedBack, 1)
	assert.Equal(t, world.UnitID(2), destroyedBack[0])
	require.Len(t, survivors, 1)
	assert.Equal(t, 300, survivors[0].Strength)
}

func TestApplyLossesNeverRetainsZeroStrength(t *testing.T) {
	units := []*world.Unit{
		{ID: 1, Strength: 400},
		{ID: 2, Strength: 600},
	}
	// Exactly consumes the first unit.
	survivors, destroyed := ApplyLosses(units, 400)
	require.Len(t, destroyed, 1)
	assert.Equal(t, world.UnitID(1), destroyed[0])
	for _, u := range survivors {
		assert.Positive(t, u.Strength)
	}
}

func TestApplyLossesConservation(t *testing.T) {
	cases := []struct {
		name      string
		strengths []int
		losses    int
	}{
		{"partial", []int{500, 300, 200}, 600},
		{"nothing", []int{500, 300}, 0},
		{"everything", []int{100, 100, 100}, 300},
		{"overkill", []int{100, 100}, 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := 0
			units := make([]*world.Unit, len(tc.strengths))
			for i, s := range tc.strengths {
				units[i] = &world.Unit{ID: world.UnitID(i + 1), Strength: s}
				input += s
			}
			survivors, _ := ApplyLosses(units, tc.losses)

			total := 0
			for _, u := range survivors {
				total += u.Strength
			}
			expected := input - tc.losses
			if expected < 0 {
				expected = 0
			}
			assert.Equal(t, expected, total)
		})
	}
}
