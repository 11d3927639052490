package ai

import (
	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/world"
)

// SiegeOutcome reports one siege attempt. A siege that cannot execute is
// not an error: the mission simply holds and the reason is logged.
type SiegeOutcome struct {
	Executed bool
	Reason   string // populated when not executed

	Cost             int
	NewFortification int
	SiegeForce       []*world.Unit // pinned at the position
	Remainder        *world.Unit   // freed by the split, nil if none
}

// SiegeManpower returns the minimum troops a siege of the given
// fortification level requires.
func SiegeManpower(fort int, tun *config.Tunables) int {
	if fort >= tun.HighFortLevel {
		return tun.SiegeManpowerHighFort
	}
	return tun.SiegeManpower
}

// ExecuteSiege spends gold to reduce the fortification at a position by one
// level. The largest attacking unit is split into a pinned siege force at
// exactly the required manpower and a free remainder with its orders
// cleared, so the remainder does not auto-attack next turn. The position is
// marked so downstream systems suppress duplicate sieges this turn.
func ExecuteSiege(w *world.World, pos world.Position, f *world.Faction, m *mission.Mission, ledger *mission.ClaimLedger, tun *config.Tunables) *SiegeOutcome {
	fort, sieged, ok := fortificationAt(w, pos)
	if !ok {
		return &SiegeOutcome{Reason: "position not found"}
	}
	if fort <= 0 {
		return &SiegeOutcome{Reason: "no fortification to reduce"}
	}
	if sieged {
		return &SiegeOutcome{Reason: "already sieged this turn"}
	}

	cost, costed := tun.SiegeCosts[fort]
	if !costed {
		return &SiegeOutcome{Reason: "no siege cost for fortification level"}
	}
	manpower := SiegeManpower(fort, tun)

	attackers := w.FactionUnitsAt(pos, f.ID)
	total := 0
	for _, u := range attackers {
		total += u.Strength
	}
	if total < manpower {
		return &SiegeOutcome{Reason: "insufficient manpower", Cost: cost}
	}
	if f.Gold < cost {
		return &SiegeOutcome{Reason: "insufficient gold", Cost: cost}
	}

	f.Gold -= cost
	newFort := reduceFortification(w, pos)

	out := &SiegeOutcome{
		Executed:         true,
		Cost:             cost,
		NewFortification: newFort,
	}

	world.SortByStrengthDesc(attackers)
	largest := attackers[0]
	if largest.Strength > manpower {
		pinned := w.SplitUnit(largest, manpower)
		pinned.Sieging = true
		pinned.Garrisoned = true
		ledger.Claim(pinned.ID, m.ID)
		m.Assign(pinned.ID)
		out.SiegeForce = append(out.SiegeForce, pinned)

		largest.ClearOrders()
		largest.Spent = true
		out.Remainder = largest
		return out
	}

	// The largest unit alone cannot fill the siege lines: pin whole units
	// largest-first until the manpower requirement is met.
	need := manpower
	for _, u := range attackers {
		if need <= 0 {
			break
		}
		u.Sieging = true
		u.Garrisoned = true
		ledger.Claim(u.ID, m.ID)
		m.Assign(u.ID)
		out.SiegeForce = append(out.SiegeForce, u)
		need -= u.Strength
	}
	return out
}

// fortificationAt reads the fortification level and per-turn siege marker
// of a location or road stage.
func fortificationAt(w *world.World, pos world.Position) (fort int, siegedThisTurn, ok bool) {
	switch pos.Kind {
	case world.PosLocation:
		loc, found := w.Location(pos.Location)
		if !found {
			return 0, false, false
		}
		return loc.Fortification, loc.SiegedThisTurn, true
	case world.PosRoad:
		r, found := w.Road(pos.Road)
		if !found || pos.Stage < 0 || pos.Stage >= len(r.Stages) {
			return 0, false, false
		}
		return r.Stages[pos.Stage].Fortification, r.Stages[pos.Stage].SiegedThisTurn, true
	}
	return 0, false, false
}

// reduceFortification decrements fortification at a position, floored at
// zero, and marks the position sieged this turn. Returns the new level.
func reduceFortification(w *world.World, pos world.Position) int {
	switch pos.Kind {
	case world.PosLocation:
		loc, _ := w.Location(pos.Location)
		if loc.Fortification > 0 {
			loc.Fortification--
		}
		loc.SiegedThisTurn = true
		return loc.Fortification
	case world.PosRoad:
		r, _ := w.Road(pos.Road)
		st := &r.Stages[pos.Stage]
		if st.Fortification > 0 {
			st.Fortification--
		}
		st.SiegedThisTurn = true
		return st.Fortification
	}
	return 0
}
