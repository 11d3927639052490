package ai

import (
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// convergentGather synchronizes a multi-front campaign: each staging point
// must reach the readiness threshold before anything marches. Readiness is
// polled every turn; under-strength points pull reinforcements; the launch
// itself is a single atomic transition the turn every point is ready.
func (c *Controller) convergentGather(f *world.Faction, m *mission.Mission, target *world.Location, ledger *mission.ClaimLedger) {
	w := c.World
	c.marchAssigned(m, ledger)

	if m.Data.RequiredStrength == 0 {
		m.Data.RequiredStrength = c.requiredStrength(target, f.ID)
	}
	if m.Data.Readiness == nil {
		m.Data.Readiness = make(map[world.LocationID]int, len(m.StagingPoints))
	}

	perPoint := m.Data.RequiredStrength / len(m.StagingPoints)
	threshold := int(c.Tun.ReadinessFraction * float64(perPoint))

	allReady := true
	for _, pt := range m.StagingPoints {
		if _, ok := w.Location(pt); !ok {
			m.Fail()
			return
		}
		have := w.StrengthAt(world.AtLocation(pt), f.ID)
		m.Data.Readiness[pt] = have
		if have < threshold {
			allReady = false
			pulled := PullReinforcements(w, pt, f, m, ledger, threshold-have, c.Tun)
			c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
				"convergent front short at point %d: %s of %s, pulling %s",
				pt, report.Troops(have), report.Troops(threshold), report.Troops(pulled))
		}
	}
	if !allReady {
		return
	}

	// Launch: every worthwhile unit at every point marches at once.
	launched := 0
	for _, pt := range m.StagingPoints {
		for _, u := range w.FactionUnitsAt(world.AtLocation(pt), f.ID) {
			if u.Strength < c.Tun.ConvergentMinUnit || u.Sieging || u.Spent {
				continue
			}
			if !ledger.Claim(u.ID, m.ID) {
				continue
			}
			m.Assign(u.ID)
			dest := target.ID
			u.Destination = &dest
			u.Garrisoned = false
			launched += u.Strength
		}
	}
	m.Stage = mission.StageMoving
	c.Log.Add(w.Turn, f.ID, report.CategoryCampaign,
		"convergent campaign against %s launched: %d fronts, %s troops marching",
		target.Name, len(m.StagingPoints), report.Troops(launched))
}
