// Package ai provides the per-faction decision engine: garrison policy,
// deployment allocation, reinforcement pulling, movement execution, siege
// conduct, tactical safety valves, and the mission state machines that tie
// them together each turn.
package ai

import (
	"math"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/world"
)

// MinGarrison computes the minimum troop strength a faction must keep at a
// location. Larger, less stable populations need more; strategic and
// frontier locations raise the floor; a garrison-substitute leader present
// with a faction unit collapses the requirement to zero.
func MinGarrison(w *world.World, loc *world.Location, f *world.Faction, tun *config.Tunables) int {
	if garrisonLeaderPresent(w, loc.ID, f.ID) {
		return 0
	}

	base := int(math.Floor((10*float64(loc.Population)/100000)*float64(120-loc.Stability) + 100))
	if base < tun.GarrisonFloor {
		base = tun.GarrisonFloor
	}
	if base > tun.GarrisonCap {
		base = tun.GarrisonCap
	}

	for _, id := range f.StrategicLocations {
		if id == loc.ID && base < tun.StrategicGarrison {
			base = tun.StrategicGarrison
		}
	}
	if w.IsFrontier(loc.ID, f.ID) && base < tun.FrontierGarrison {
		base = tun.FrontierGarrison
	}
	if base > tun.GarrisonCap {
		base = tun.GarrisonCap
	}
	return base
}

// garrisonLeaderPresent reports whether a garrison-substitute leader of the
// faction rides with a faction unit at the location.
func garrisonLeaderPresent(w *world.World, loc world.LocationID, f world.FactionID) bool {
	for _, l := range w.Leaders {
		if l.Faction != f || !l.GarrisonSubstitute || l.UnitID == nil {
			continue
		}
		u, ok := w.Unit(*l.UnitID)
		if !ok || u.Faction != f {
			continue
		}
		if u.Pos.Kind == world.PosLocation && u.Pos.Location == loc {
			return true
		}
	}
	return false
}
