package combat

import (
	"sort"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/world"
)

// CombatState describes one contested position at resolution time. It is
// produced by detection, consumed once by Resolve, and discarded, never
// persisted across turns.
type CombatState struct {
	Attacker world.FactionID
	Defender world.FactionID

	AttackerUnits []*world.Unit
	DefenderUnits []*world.Unit

	// DefenseBonus is the fortification bonus the defender enjoys. An
	// empty fort provides none: the bonus is zeroed at detection when the
	// defending garrison is below the floor.
	DefenseBonus int

	At world.Position

	// Insurgency marks an uprising: every attacking unit carries the
	// insurgent flag.
	Insurgency bool

	// AttackerSieging marks an attacker fully pinned by siege duty. The
	// cascade skips these; the siege subsystem owns them.
	AttackerSieging bool
}

// DetectBattles scans every location and road stage for positions shared by
// opposing forces. The position's controller defends; each other faction
// present yields one CombatState. Uncontested incursions (no defending
// units) still produce a state; resolution handles them as captures.
func DetectBattles(w *world.World, tun *config.Tunables) []*CombatState {
	var out []*CombatState
	for _, loc := range w.Locations {
		pos := world.AtLocation(loc.ID)
		out = append(out, detectAt(w, tun, pos, loc.Faction, loc.DefenseBonus())...)
	}
	for _, r := range w.Roads {
		for s := range r.Stages {
			pos := world.OnRoad(r.ID, s, world.DirForward)
			out = append(out, detectAt(w, tun, pos, r.Stages[s].Faction, world.FortificationBonus(r.Stages[s].Fortification))...)
		}
	}
	return out
}

func detectAt(w *world.World, tun *config.Tunables, pos world.Position, controller world.FactionID, fortBonus int) []*CombatState {
	byFaction := make(map[world.FactionID][]*world.Unit)
	for _, u := range w.UnitsAt(pos) {
		byFaction[u.Faction] = append(byFaction[u.Faction], u)
	}

	defenders := byFaction[controller]
	defenderStrength := 0
	for _, u := range defenders {
		defenderStrength += u.Strength
	}
	bonus := fortBonus
	if defenderStrength < tun.GarrisonDefenseFloor {
		bonus = 0
	}

	// Attackers emit in ascending faction order: map iteration order must
	// never decide which battle the cascade resolves first.
	attackers := make([]world.FactionID, 0, len(byFaction))
	for f := range byFaction {
		if f == controller {
			continue
		}
		attackers = append(attackers, f)
	}
	sort.Slice(attackers, func(i, j int) bool { return attackers[i] < attackers[j] })

	var out []*CombatState
	for _, f := range attackers {
		units := byFaction[f]
		cs := &CombatState{
			Attacker:        f,
			Defender:        controller,
			AttackerUnits:   units,
			DefenderUnits:   defenders,
			DefenseBonus:    bonus,
			At:              pos,
			Insurgency:      allInsurgent(units),
			AttackerSieging: allSieging(units),
		}
		out = append(out, cs)
	}
	return out
}

func allInsurgent(units []*world.Unit) bool {
	for _, u := range units {
		if !u.Insurgent {
			return false
		}
	}
	return len(units) > 0
}

func allSieging(units []*world.Unit) bool {
	for _, u := range units {
		if !u.Sieging {
			return false
		}
	}
	return len(units) > 0
}
