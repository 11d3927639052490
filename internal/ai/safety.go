package ai

import (
	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/world"
)

// ConvergingStrength sums the strength of friendly units reaching dest on
// the same turn as the evaluated unit. Units already at dest count for a
// zero-turn evaluation; halted or garrisoned units en route are still
// arriving, not cancelled.
func ConvergingStrength(w *world.World, u *world.Unit, dest world.LocationID) int {
	eta := w.TravelTurns(u, dest)
	total := 0
	for _, v := range w.Units {
		if v.Faction != u.Faction {
			continue
		}
		heading := v.Pos.Kind == world.PosLocation && v.Pos.Location == dest
		if !heading && v.Destination != nil && *v.Destination == dest {
			heading = true
		}
		if !heading && v.Pos.Kind == world.PosRoad {
			// A unit mid-road with no intent still converges if the road
			// ahead ends at dest.
			if r, ok := w.Road(v.Pos.Road); ok {
				ahead := r.B
				if v.Pos.Dir == world.DirReverse {
					ahead = r.A
				}
				heading = ahead == dest
			}
		}
		if heading && w.TravelTurns(v, dest) == eta {
			total += v.Strength
		}
	}
	return total
}

// SanctionAttack gates an advance on a defended position: the combined
// same-turn converging strength must exceed the defender's effective
// strength, fortification included only when the garrison can man it. A
// lone probe one turn ahead of its reinforcements does not advance.
func SanctionAttack(w *world.World, u *world.Unit, dest world.LocationID, tun *config.Tunables) bool {
	loc, ok := w.Location(dest)
	if !ok {
		return false
	}
	defense := EffectiveDefense(w, loc, u.Faction, tun)
	return ConvergingStrength(w, u, dest) > defense
}

// EffectiveDefense is the strength an attacker must beat at a location:
// hostile troops plus the fortification bonus when at least a minimal
// garrison holds the walls. An empty fort provides no bonus.
func EffectiveDefense(w *world.World, loc *world.Location, attacker world.FactionID, tun *config.Tunables) int {
	garrison := w.HostileStrengthAt(world.AtLocation(loc.ID), attacker)
	defense := garrison
	if garrison >= tun.GarrisonDefenseFloor {
		defense += loc.DefenseBonus()
	}
	return defense
}

// NearbyThreat totals hostile strength at a location, its adjacent
// locations, and the stages of its connecting roads: the force that could
// fall on a staging army within a turn or two.
func NearbyThreat(w *world.World, loc world.LocationID, f world.FactionID) int {
	threat := w.HostileStrengthAt(world.AtLocation(loc), f)
	for _, r := range w.RoadsAt(loc) {
		for s := range r.Stages {
			threat += w.HostileStrengthAt(world.OnRoad(r.ID, s, world.DirForward), f)
		}
		threat += w.HostileStrengthAt(world.AtLocation(r.OtherEnd(loc)), f)
	}
	return threat
}

// ShouldPause applies the tactical-pause valve: a march holds for a turn
// when a nearby threat both dwarfs the moving force and is big enough to
// matter in absolute terms.
func ShouldPause(threat, movingForce int, tun *config.Tunables) bool {
	if threat <= tun.TacticalPauseFloor {
		return false
	}
	return float64(threat) > tun.TacticalPauseRatio*float64(movingForce)
}

// BrokenCampaign detects a mission whose committed strength has collapsed
// below the revert threshold. Such a campaign re-gathers instead of
// pursuing an attack it can no longer execute.
func BrokenCampaign(w *world.World, m *mission.Mission, tun *config.Tunables) bool {
	required := m.Data.RequiredStrength
	if required <= 0 {
		return false
	}
	return float64(m.CommittedStrength(w)) < tun.BrokenCampaignRatio*float64(required)
}
