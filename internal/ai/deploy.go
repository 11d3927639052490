package ai

import (
	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/world"
)

// Deployment is the outcome of an allocation: the units claimed for a
// mission and their combined strength.
type Deployment struct {
	Units    []*world.Unit
	Strength int
}

// Deploy selects units at a staging location to supply up to `want`
// strength for a mission without dropping the location below its garrison
// minimum. Units are taken strongest-first; the last unit is split when it
// overshoots the remaining room and the room is worth a split. The split
// remainder stays behind as a dedicated garrison, flagged so it is not
// reconsidered this turn.
func Deploy(w *world.World, staging *world.Location, f *world.Faction, want int, m *mission.Mission, ledger *mission.ClaimLedger, tun *config.Tunables) *Deployment {
	dep := &Deployment{}
	if want <= 0 {
		return dep
	}

	pos := world.AtLocation(staging.ID)
	available := w.StrengthAt(pos, f.ID) - MinGarrison(w, staging, f, tun)
	if available <= 0 {
		return dep
	}
	room := want
	if available < room {
		room = available
	}

	candidates := deployableUnits(w, pos, f.ID, ledger)
	world.SortByStrengthDesc(candidates)

	for _, u := range candidates {
		if room <= 0 {
			break
		}
		if u.Strength <= room {
			if !ledger.Claim(u.ID, m.ID) {
				continue
			}
			m.Assign(u.ID)
			dep.Units = append(dep.Units, u)
			dep.Strength += u.Strength
			room -= u.Strength
			continue
		}
		if room < tun.SplitThreshold {
			continue
		}
		taken := w.SplitUnit(u, room)
		// The shrunk original is now a dedicated garrison: it holds the
		// staging location and stays out of this turn's allocations.
		u.Garrisoned = true
		u.Spent = true
		if !ledger.Claim(taken.ID, m.ID) {
			// A freshly spawned unit cannot be claimed elsewhere; this
			// branch only guards ledger misuse.
			continue
		}
		m.Assign(taken.ID)
		dep.Units = append(dep.Units, taken)
		dep.Strength += taken.Strength
		room = 0
	}
	return dep
}

// deployableUnits lists the faction units at a position that are free for
// allocation: unclaimed, not pinned to a siege, not spent.
func deployableUnits(w *world.World, pos world.Position, f world.FactionID, ledger *mission.ClaimLedger) []*world.Unit {
	var out []*world.Unit
	for _, u := range w.FactionUnitsAt(pos, f) {
		if u.Sieging || u.Spent {
			continue
		}
		if ledger.Claimed(u.ID) {
			continue
		}
		out = append(out, u)
	}
	return out
}
