package ai

import (
	"log/slog"
	"sort"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/entropy"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// Controller runs one faction's missions for a turn. It owns no state of
// its own: everything lives in the World, the missions, and the per-turn
// claim ledger handed to RunFaction.
type Controller struct {
	World *world.World
	Tun   *config.Tunables
	RNG   *entropy.Source
	Log   *report.Log
}

// RunFaction processes a faction's active missions in strict priority
// order. Each mission consults the garrison policy, allocator, movement
// executor, and safety valves through the handlers below, mutating the
// shared World in place. The ledger guarantees at-most-one-mission-per-unit
// within the turn.
func (c *Controller) RunFaction(f *world.Faction, missions []*mission.Mission, ledger *mission.ClaimLedger) {
	ordered := make([]*mission.Mission, 0, len(missions))
	for _, m := range missions {
		if m.Faction == f.ID && m.Active() {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	// Re-claim every mission's standing assignments before any handler
	// runs, so one mission's allocator cannot steal another's units.
	for _, m := range ordered {
		m.PruneDead(c.World)
		for _, id := range m.Assigned {
			ledger.Claim(id, m.ID)
		}
	}

	for _, m := range ordered {
		switch m.Type {
		case mission.TypeCampaign:
			c.runCampaign(f, m, ledger)
		case mission.TypeRoadDefense:
			c.runRoadDefense(f, m, ledger)
		default:
			slog.Error("mission type without handler", "mission", m.ID, "type", m.Type)
			m.Fail()
		}
	}
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
