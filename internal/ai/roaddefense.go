package ai

import (
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// runRoadDefense holds a road chokepoint stage: gather a force at the
// staging endpoint, march it onto the stage, dig in at required strength,
// replace attrition, and stand down once no hostiles remain within reach.
func (c *Controller) runRoadDefense(f *world.Faction, m *mission.Mission, ledger *mission.ClaimLedger) {
	w := c.World
	road, ok := w.Road(m.TargetRoad)
	if !ok || m.TargetStage < 0 || m.TargetStage >= len(road.Stages) {
		m.Fail()
		return
	}
	m.PruneDead(w)

	pos := world.OnRoad(road.ID, m.TargetStage, world.DirForward)
	required := m.Data.RequiredStrength
	if required <= 0 {
		required = c.Tun.GarrisonFloor
		m.Data.RequiredStrength = required
	}

	if c.roadThreatGone(road, pos, f.ID) {
		for _, u := range m.AssignedUnits(w) {
			u.ClearOrders()
		}
		m.Complete()
		c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
			"road %d stage %d stood down, no hostiles in reach", road.ID, m.TargetStage)
		return
	}

	switch m.Stage {
	case mission.StageGathering:
		c.roadDefenseGather(f, m, road, required, ledger)
	case mission.StageMoving, mission.StageSieging, mission.StageAssaulting:
		c.roadDefenseHold(f, m, road, pos, required, ledger)
	case mission.StageCompleted, mission.StageFailed:
	}
}

// roadThreatGone reports whether no hostile force remains at the stage, the
// road's endpoints, or their immediate surroundings.
func (c *Controller) roadThreatGone(road *world.Road, pos world.Position, f world.FactionID) bool {
	w := c.World
	if w.HostileStrengthAt(pos, f) > 0 {
		return false
	}
	for _, end := range [2]world.LocationID{road.A, road.B} {
		if NearbyThreat(w, end, f) > 0 {
			return false
		}
	}
	return true
}

// roadDefenseGather assembles the holding force at the staging endpoint.
func (c *Controller) roadDefenseGather(f *world.Faction, m *mission.Mission, road *world.Road, required int, ledger *mission.ClaimLedger) {
	w := c.World
	staging, ok := w.Location(m.Staging)
	if !ok {
		m.Fail()
		return
	}
	c.marchAssigned(m, ledger)
	deployable := w.StrengthAt(world.AtLocation(staging.ID), f.ID) - MinGarrison(w, staging, f, c.Tun)
	if deployable < required {
		PullReinforcements(w, staging.ID, f, m, ledger, required-deployable, c.Tun)
		return
	}

	dep := Deploy(w, staging, f, required, m, ledger, c.Tun)
	far := road.OtherEnd(staging.ID)
	for _, u := range dep.Units {
		dest := far
		u.Destination = &dest
		u.Garrisoned = false
	}
	m.Stage = mission.StageMoving
	c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
		"road defense launched from %s: %s troops to road %d stage %d",
		staging.Name, report.Troops(dep.Strength), road.ID, m.TargetStage)
}

// roadDefenseHold walks assigned units onto the stage and halts them there;
// units lost to attrition are replaced from the rear.
func (c *Controller) roadDefenseHold(f *world.Faction, m *mission.Mission, road *world.Road, pos world.Position, required int, ledger *mission.ClaimLedger) {
	w := c.World
	for _, u := range m.AssignedUnits(w) {
		ledger.Claim(u.ID, m.ID)
		if u.Pos.Same(pos) {
			// On station: dig in.
			u.Destination = nil
			u.Garrisoned = true
			continue
		}
		if u.Destination == nil && u.Pos.Kind == world.PosLocation {
			// A replacement waiting at an endpoint walks onto the road.
			far := road.OtherEnd(u.Pos.Location)
			u.Destination = &far
		}
		StepUnit(w, u)
		if u.Pos.Same(pos) {
			u.Destination = nil
			u.Garrisoned = true
		}
	}

	holding := w.StrengthAt(pos, f.ID)
	if holding < required {
		for _, end := range [2]world.LocationID{road.A, road.B} {
			if l, ok := w.Location(end); ok && l.Faction == f.ID {
				PullReinforcements(w, end, f, m, ledger, required-holding, c.Tun)
				break
			}
		}
	}
}
