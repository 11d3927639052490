package ai

import (
	"sort"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/world"
)

// PullReinforcements routes idle faction strength toward a target location.
// Sources are scanned strongest-first, nearest on ties, each source keeps
// its garrison minimum, and units split exactly as in deployment so the
// fewest units satisfy the request. maxNeeded <= 0 pulls everything
// available. Returns the strength set in motion.
func PullReinforcements(w *world.World, target world.LocationID, f *world.Faction, m *mission.Mission, ledger *mission.ClaimLedger, maxNeeded int, tun *config.Tunables) int {
	type candidate struct {
		unit *world.Unit
		dist int
	}
	var candidates []candidate
	roomAt := make(map[world.LocationID]int)

	for _, u := range w.Units {
		if u.Faction != f.ID || u.Sieging || u.Spent || u.Moving() {
			continue
		}
		if ledger.Claimed(u.ID) {
			continue
		}
		if u.Pos.Kind != world.PosLocation || u.Pos.Location == target {
			continue
		}
		src, ok := w.Location(u.Pos.Location)
		if !ok || src.Faction != f.ID {
			continue
		}
		if _, seen := roomAt[src.ID]; !seen {
			roomAt[src.ID] = w.StrengthAt(world.AtLocation(src.ID), f.ID) - MinGarrison(w, src, f, tun)
		}
		candidates = append(candidates, candidate{unit: u, dist: w.Distance(src.ID, target)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].unit.Strength != candidates[j].unit.Strength {
			return candidates[i].unit.Strength > candidates[j].unit.Strength
		}
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].unit.ID < candidates[j].unit.ID
	})

	unbounded := maxNeeded <= 0
	need := maxNeeded
	pulled := 0

	for _, c := range candidates {
		if !unbounded && need <= 0 {
			break
		}
		u := c.unit
		src := u.Pos.Location
		room := roomAt[src]
		if room <= 0 {
			continue
		}

		take := u.Strength
		if take > room {
			take = room
		}
		if !unbounded && take > need {
			take = need
		}

		if take >= u.Strength {
			// Whole unit marches.
			if !ledger.Claim(u.ID, m.ID) {
				continue
			}
			m.Assign(u.ID)
			dest := target
			u.Destination = &dest
			u.Garrisoned = false
			roomAt[src] -= u.Strength
			pulled += u.Strength
			if !unbounded {
				need -= u.Strength
			}
			continue
		}
		if take < tun.SplitThreshold {
			continue
		}
		marcher := w.SplitUnit(u, take)
		u.Garrisoned = true
		u.Spent = true
		ledger.Claim(marcher.ID, m.ID)
		m.Assign(marcher.ID)
		dest := target
		marcher.Destination = &dest
		roomAt[src] -= take
		pulled += take
		if !unbounded {
			need -= take
		}
	}
	return pulled
}
