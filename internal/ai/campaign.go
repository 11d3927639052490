package ai

import (
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// runCampaign advances one campaign mission through its state machine:
// GATHERING → MOVING → SIEGING → ASSAULTING → COMPLETED, with FAILED
// reachable from anywhere when the target vanishes, and a safety transition
// back to GATHERING when committed strength collapses.
func (c *Controller) runCampaign(f *world.Faction, m *mission.Mission, ledger *mission.ClaimLedger) {
	w := c.World
	target, ok := w.Location(m.Target)
	if !ok {
		m.Fail()
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign, "campaign against vanished target abandoned")
		return
	}
	m.PruneDead(w)

	if target.Faction == f.ID {
		c.finishCampaign(f, m, target)
		return
	}

	// Broken-campaign valve: a committed force that has collapsed reverts
	// to gathering rather than limping into a lost attack.
	if m.Stage != mission.StageGathering && BrokenCampaign(w, m, c.Tun) {
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
			"campaign against %s broken (%s of %s committed), re-gathering",
			target.Name, report.Troops(m.CommittedStrength(w)), report.Troops(m.Data.RequiredStrength))
		m.Stage = mission.StageGathering
	}

	switch m.Stage {
	case mission.StageGathering:
		if m.Convergent() {
			c.convergentGather(f, m, target, ledger)
		} else {
			c.campaignGather(f, m, target, ledger)
		}
	case mission.StageMoving:
		c.campaignMove(f, m, target, ledger)
	case mission.StageSieging:
		c.campaignSiege(f, m, target, ledger)
	case mission.StageAssaulting:
		c.campaignAssault(f, m, target, ledger)
	case mission.StageCompleted, mission.StageFailed:
		// Terminal; the strategy layer filters these out.
	}
}

// marchAssigned advances every assigned unit still en route. Gathering
// stages must call this before reading staging strength: pulled
// reinforcements would otherwise stand frozen mid-march and the launch
// condition could never be met.
func (c *Controller) marchAssigned(m *mission.Mission, ledger *mission.ClaimLedger) {
	for _, u := range m.AssignedUnits(c.World) {
		ledger.Claim(u.ID, m.ID)
		if u.Moving() {
			StepUnit(c.World, u)
		}
	}
}

// requiredStrength sizes the attack force off the defending presence:
// garrison × ratio, clamped into the configured band.
func (c *Controller) requiredStrength(target *world.Location, attacker world.FactionID) int {
	enemy := c.World.HostileStrengthAt(world.AtLocation(target.ID), attacker)
	need := int(float64(enemy) * c.Tun.AttackGarrisonRatio)
	return clamp(need, c.Tun.MinAttackFloor, c.Tun.MinAttackCap)
}

// campaignGather assembles the attack force at the staging location, or
// requests reinforcements and holds when it cannot launch yet.
func (c *Controller) campaignGather(f *world.Faction, m *mission.Mission, target *world.Location, ledger *mission.ClaimLedger) {
	w := c.World
	staging, ok := w.Location(m.Staging)
	if !ok {
		m.Fail()
		return
	}
	c.marchAssigned(m, ledger)

	required := c.requiredStrength(target, f.ID)
	m.Data.RequiredStrength = required

	deployable := w.StrengthAt(world.AtLocation(staging.ID), f.ID) - MinGarrison(w, staging, f, c.Tun)
	presence := w.StrengthAt(world.AtLocation(target.ID), f.ID)

	launch := deployable >= required ||
		presence > c.Tun.TargetPresenceFloor ||
		deployable > c.Tun.LaunchStrengthFloor

	if !launch {
		pulled := PullReinforcements(w, staging.ID, f, m, ledger, required-deployable, c.Tun)
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
			"gathering against %s at %s: %s of %s ready, %s reinforcements en route",
			target.Name, staging.Name, report.Troops(max(deployable, 0)), report.Troops(required), report.Troops(pulled))
		return
	}

	dep := Deploy(w, staging, f, required, m, ledger, c.Tun)
	for _, u := range dep.Units {
		dest := target.ID
		u.Destination = &dest
		u.Garrisoned = false
	}
	m.Stage = mission.StageMoving
	c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
		"campaign against %s launched from %s with %s troops",
		target.Name, staging.Name, report.Troops(dep.Strength))
}

// campaignMove marches the committed force toward the target, topping up
// strength en route and pausing when a nearby threat would catch the column
// in the open.
func (c *Controller) campaignMove(f *world.Faction, m *mission.Mission, target *world.Location, ledger *mission.ClaimLedger) {
	w := c.World
	committed := m.CommittedStrength(w)
	required := m.Data.RequiredStrength

	// Sustained reinforcement while under strength.
	sustain := int(c.Tun.SustainRatio * float64(required))
	if committed < sustain {
		PullReinforcements(w, target.ID, f, m, ledger, sustain-committed, c.Tun)
	}

	threat := NearbyThreat(w, target.ID, f.ID)
	if staging, ok := w.Location(m.Staging); ok {
		if t := NearbyThreat(w, staging.ID, f.ID); t > threat {
			threat = t
		}
	}
	if ShouldPause(threat, committed, c.Tun) {
		PullReinforcements(w, target.ID, f, m, ledger, threat-committed, c.Tun)
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
			"march on %s paused: %s hostiles nearby against %s moving",
			target.Name, report.Troops(threat), report.Troops(committed))
		return
	}

	for _, u := range m.AssignedUnits(w) {
		ledger.Claim(u.ID, m.ID)
		if u.Pos.Kind == world.PosLocation && u.Pos.Location == target.ID {
			continue
		}
		if u.Destination == nil {
			dest := target.ID
			u.Destination = &dest
		}
		StepUnit(w, u)
	}

	if w.StrengthAt(world.AtLocation(target.ID), f.ID) > 0 {
		// Arrivals dig in as a siege posture until the mission decides
		// between reduction and assault.
		for _, u := range m.AssignedUnits(w) {
			if u.Pos.Kind == world.PosLocation && u.Pos.Location == target.ID {
				u.Sieging = true
				u.Garrisoned = true
			}
		}
		m.Stage = mission.StageSieging
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign, "forces arrived before %s, investing", target.Name)
	}
}

// campaignSiege runs the per-turn siege decision: assault outright when the
// walls are down or the advantage is overwhelming, otherwise pay to reduce
// fortification, or hold when neither is possible.
func (c *Controller) campaignSiege(f *world.Faction, m *mission.Mission, target *world.Location, ledger *mission.ClaimLedger) {
	w := c.World
	pos := world.AtLocation(target.ID)

	committed := m.CommittedStrength(w)
	sustain := int(c.Tun.SustainRatio * float64(m.Data.RequiredStrength))
	if committed < sustain {
		PullReinforcements(w, target.ID, f, m, ledger, sustain-committed, c.Tun)
	}

	present := w.FactionUnitsAt(pos, f.ID)
	for _, u := range present {
		ledger.Claim(u.ID, m.ID)
		m.Assign(u.ID)
	}

	// All strength at the walls counts toward the decision; pinning only
	// matters after a siege splits the force.
	attack := 0
	for _, u := range present {
		attack += u.Strength
	}
	defense := EffectiveDefense(w, target, f.ID, c.Tun)

	if target.Fortification == 0 || float64(attack) > c.Tun.AssaultRatio*float64(defense) {
		for _, u := range present {
			u.Sieging = false
			u.Garrisoned = false
		}
		m.Stage = mission.StageAssaulting
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign, "assault on %s ordered", target.Name)
		return
	}

	cost := c.Tun.SiegeCosts[target.Fortification]
	if f.Gold < cost && target.Faction == world.FactionNeutral && f.NegotiatesNeutrals {
		c.Log.Add(w.Turn, f.ID, report.CategorySiege,
			"cannot afford siege of %s (%s), waiting for negotiation", target.Name, report.Gold(cost))
		return
	}

	out := ExecuteSiege(w, pos, f, m, ledger, c.Tun)
	if !out.Executed {
		c.Log.Add(w.Turn, f.ID, report.CategorySiege, "siege of %s held: %s", target.Name, out.Reason)
		for _, u := range present {
			u.Sieging = true
			u.Garrisoned = true
		}
		return
	}
	c.Log.AddGlobal(w.Turn, f.ID, report.CategorySiege,
		"%s besieges %s for %s, fortifications reduced to level %d",
		f.Name, target.Name, report.Gold(out.Cost), out.NewFortification)

	// Re-evaluate immediately against the reduced walls: the free remainder
	// may now carry the assault.
	free := 0
	for _, u := range w.FactionUnitsAt(pos, f.ID) {
		if !u.Sieging {
			free += u.Strength
		}
	}
	if float64(free) > float64(EffectiveDefense(w, target, f.ID, c.Tun)) {
		for _, u := range w.FactionUnitsAt(pos, f.ID) {
			u.Sieging = false
			u.Garrisoned = false
		}
		m.Stage = mission.StageAssaulting
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign, "breach at %s, assault follows the siege", target.Name)
		return
	}
	for _, u := range w.FactionUnitsAt(pos, f.ID) {
		if !u.Sieging {
			u.Garrisoned = true
			u.Sieging = true
		}
	}
}

// campaignAssault commits units against the target, gated by the
// converging-forces check so a lone probe does not suicide a turn ahead of
// its support.
func (c *Controller) campaignAssault(f *world.Faction, m *mission.Mission, target *world.Location, ledger *mission.ClaimLedger) {
	w := c.World
	for _, u := range m.AssignedUnits(w) {
		ledger.Claim(u.ID, m.ID)
		atTarget := u.Pos.Kind == world.PosLocation && u.Pos.Location == target.ID
		if !atTarget {
			if u.Destination == nil {
				dest := target.ID
				u.Destination = &dest
			}
			StepUnit(w, u)
			continue
		}
		if SanctionAttack(w, u, target.ID, c.Tun) {
			u.Sieging = false
			u.Garrisoned = false
		} else {
			// Reinforcements are a turn out; hold the lines rather than
			// feed the walls piecemeal.
			u.Sieging = true
			u.Garrisoned = true
		}
	}
}

// finishCampaign closes out a campaign whose target is already held.
func (c *Controller) finishCampaign(f *world.Faction, m *mission.Mission, target *world.Location) {
	for _, u := range m.AssignedUnits(c.World) {
		u.Sieging = false
		if u.Pos.Kind == world.PosLocation && u.Pos.Location == target.ID {
			u.Garrisoned = true
		}
	}
	m.Complete()
	c.Log.AddGlobal(c.World.Turn, f.ID, report.CategoryCampaign, "%s has taken %s", f.Name, target.Name)
}
