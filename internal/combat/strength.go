// Package combat provides battle resolution: strength computation, loss
// distribution, contested-position detection, the battle resolver, leader
// survival, and the AI-vs-AI cascade.
package combat

import (
	"math"

	"github.com/talgya/warmarch/internal/world"
)

// Strength computes the combat power of a unit group: each unit's troops
// scaled by the additive command bonuses of leaders riding with it, summed,
// rounded to nearest, plus the flat defense bonus. A leader rides at most
// one unit; multiple leaders on one unit stack additively.
func Strength(units []*world.Unit, leaders []*world.Leader, defenseBonus int) int {
	bonus := make(map[world.UnitID]float64)
	for _, l := range leaders {
		if l.UnitID != nil {
			bonus[*l.UnitID] += l.CommandBonus
		}
	}
	total := 0.0
	for _, u := range units {
		total += float64(u.Strength) * (1 + bonus[u.ID])
	}
	return int(math.Round(total)) + defenseBonus
}

// ApplyLosses drains totalLosses against units strictly in input order.
// Ordering is caller policy: pass strongest-first for front-line attrition.
// A unit drained to zero is destroyed, never retained. Mutates unit
// strengths in place; the caller removes destroyed units from the World.
func ApplyLosses(units []*world.Unit, totalLosses int) (survivors []*world.Unit, destroyed []world.UnitID) {
	remaining := totalLosses
	for _, u := range units {
		if remaining >= u.Strength {
			remaining -= u.Strength
			u.Strength = 0
			destroyed = append(destroyed, u.ID)
			continue
		}
		u.Strength -= remaining
		remaining = 0
		survivors = append(survivors, u)
	}
	return survivors, destroyed
}
