package combat

import (
	"github.com/talgya/warmarch/internal/entropy"
	"github.com/talgya/warmarch/internal/world"
)

// Leader survival probabilities by the role the leader's unit played.
const (
	survivalAttacking    = 0.90
	survivalDefendCity   = 0.25
	survivalDefendRoad   = 0.50
	survivalDefendRural  = 0.75
	survivalInsurrection = 0.0 // a failed uprising spares no one
)

// Result reports one resolved battle.
type Result struct {
	At          world.Position
	Attacker    world.FactionID
	Defender    world.FactionID
	AttackerWon bool

	AttackerStrength int
	DefenderStrength int // defense bonus included
	LossesInflicted  int // absorbed by the losing side

	DestroyedUnits []world.UnitID
	LeadersKilled  []world.LeaderID
	LeadersEscaped []world.LeaderID

	Captured bool // ownership of the position changed hands
}

// Resolve adjudicates one contested position. The stronger side wins; ties
// hold for the defender. Losses land on the losing side strongest-first,
// destroyed units are removed, ownership and fortification update on an
// attacker victory, and leaders riding destroyed units roll survival.
func Resolve(w *world.World, cs *CombatState, rng *entropy.Source) *Result {
	res := &Result{
		At:       cs.At,
		Attacker: cs.Attacker,
		Defender: cs.Defender,
	}
	res.AttackerStrength = Strength(cs.AttackerUnits, w.Leaders, 0)
	res.DefenderStrength = Strength(cs.DefenderUnits, w.Leaders, cs.DefenseBonus)
	res.AttackerWon = res.AttackerStrength > res.DefenderStrength

	var losers []*world.Unit
	if res.AttackerWon {
		losers = append(losers, cs.DefenderUnits...)
		res.LossesInflicted = res.AttackerStrength
	} else {
		losers = append(losers, cs.AttackerUnits...)
		// The fortification bonus discounts attacker losses the same way it
		// inflates defender strength.
		res.LossesInflicted = res.AttackerStrength - cs.DefenseBonus
		if res.LossesInflicted < 0 {
			res.LossesInflicted = 0
		}
	}
	world.SortByStrengthDesc(losers)
	surviving, destroyed := ApplyLosses(losers, res.LossesInflicted)
	res.DestroyedUnits = destroyed

	// Survival rolls happen before removal so leader attachment is intact.
	rollLeaderSurvival(w, cs, destroyed, res, rng)
	for _, id := range destroyed {
		w.RemoveUnit(id)
	}

	// Defeated survivors fall back.
	for _, u := range surviving {
		u.ClearOrders()
		u.Pos = w.RetreatPosition(u)
	}

	if res.AttackerWon {
		applyCapture(w, cs)
		res.Captured = true
	}
	return res
}

// applyCapture transfers the position to the attacker, degrades its
// fortification by one level, and settles insurgency effects.
func applyCapture(w *world.World, cs *CombatState) {
	switch cs.At.Kind {
	case world.PosLocation:
		loc, ok := w.Location(cs.At.Location)
		if !ok {
			return
		}
		loc.Faction = cs.Attacker
		if loc.Fortification > 0 {
			loc.Fortification--
		}
		// A successful faction-backed uprising unsettles the population; a
		// spontaneous neutral revolt does not change stability.
		if cs.Insurgency && cs.Attacker != world.FactionNeutral && loc.Stability > 49 {
			loc.Stability = 49
		}
	case world.PosRoad:
		r, ok := w.Road(cs.At.Road)
		if !ok || cs.At.Stage < 0 || cs.At.Stage >= len(r.Stages) {
			return
		}
		st := &r.Stages[cs.At.Stage]
		st.Faction = cs.Attacker
		if st.Fortification > 0 {
			st.Fortification--
		}
	}
	// Victorious insurgents become the regular army of their faction.
	for _, u := range cs.AttackerUnits {
		if u.Strength > 0 {
			u.Insurgent = false
		}
	}
}

// rollLeaderSurvival rolls escape for every leader riding a destroyed unit.
// Survivors relocate to a random friendly location; a leader with nowhere
// to run dies with the army.
func rollLeaderSurvival(w *world.World, cs *CombatState, destroyed []world.UnitID, res *Result, rng *entropy.Source) {
	attackerLost := make(map[world.UnitID]bool)
	for _, u := range cs.AttackerUnits {
		for _, id := range destroyed {
			if u.ID == id {
				attackerLost[id] = true
			}
		}
	}

	for _, id := range destroyed {
		for _, l := range w.LeadersOn(id) {
			p := survivalChance(w, cs, attackerLost[id])
			if !rng.Roll(p) {
				res.LeadersKilled = append(res.LeadersKilled, l.ID)
				w.RemoveLeader(l.ID)
				continue
			}
			friendly := w.FactionLocations(l.Faction)
			if len(friendly) == 0 {
				res.LeadersKilled = append(res.LeadersKilled, l.ID)
				w.RemoveLeader(l.ID)
				continue
			}
			dest := friendly[rng.Intn(len(friendly))]
			l.UnitID = nil
			l.Location = dest.ID
			res.LeadersEscaped = append(res.LeadersEscaped, l.ID)
		}
	}
}

func survivalChance(w *world.World, cs *CombatState, onAttackerSide bool) float64 {
	if onAttackerSide {
		// An attacker unit only dies when the defense held, so an
		// insurgent attacker here is a failed insurrection.
		if cs.Insurgency {
			return survivalInsurrection
		}
		return survivalAttacking
	}
	if cs.At.Kind == world.PosRoad {
		return survivalDefendRoad
	}
	if loc, ok := w.Location(cs.At.Location); ok && loc.City {
		return survivalDefendCity
	}
	return survivalDefendRural
}
