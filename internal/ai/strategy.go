package ai

import (
	"sort"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// Strategist is the thin mission-proposal layer driving the demo and soak
// runs. It scores adjacent targets off the faction personality, mints
// missions, and retires finished ones. Deep theater analysis belongs to an
// external layer; this deliberately stays shallow.
type Strategist struct {
	Tun *config.Tunables
	Log *report.Log
}

// maxActiveMissions scales concurrent fronts with expansionism.
func maxActiveMissions(f *world.Faction) int {
	return 1 + int(f.Personality.Expansion*2)
}

// Propose creates new missions for a faction up to its appetite. Targets
// are locations adjacent to faction territory; the score favors weakly held
// population centers, weighted by aggression and expansion.
func (s *Strategist) Propose(w *world.World, f *world.Faction, active []*mission.Mission) []*mission.Mission {
	count := 0
	targeted := make(map[world.LocationID]bool)
	for _, m := range active {
		if m.Faction == f.ID && m.Active() {
			count++
			targeted[m.Target] = true
		}
	}
	if count >= maxActiveMissions(f) {
		return nil
	}

	type prospect struct {
		target  *world.Location
		staging []*world.Location
		score   float64
	}
	var prospects []prospect

	for _, target := range w.Locations {
		if target.Faction == f.ID || targeted[target.ID] {
			continue
		}
		var staging []*world.Location
		for _, adj := range w.AdjacentLocations(target.ID) {
			if l, ok := w.Location(adj); ok && l.Faction == f.ID {
				staging = append(staging, l)
			}
		}
		if len(staging) == 0 {
			continue
		}
		defense := float64(w.HostileStrengthAt(world.AtLocation(target.ID), f.ID) + target.DefenseBonus())
		value := float64(target.Population) / 100000 * f.Personality.Expansion
		risk := defense / 3000 * (1 - f.Personality.Aggression)
		score := value - risk
		if target.Faction == world.FactionNeutral {
			// Neutral ground is cheap expansion.
			score += 0.25 * f.Personality.Expansion
		}
		prospects = append(prospects, prospect{target: target, staging: staging, score: score})
	}
	sort.SliceStable(prospects, func(i, j int) bool { return prospects[i].score > prospects[j].score })

	var out []*mission.Mission
	for _, p := range prospects {
		if count >= maxActiveMissions(f) {
			break
		}
		if p.score <= 0 {
			break
		}
		priority := int(p.score * 100)
		var m *mission.Mission
		if len(p.staging) >= 2 {
			points := make([]world.LocationID, 0, len(p.staging))
			for _, l := range p.staging {
				points = append(points, l.ID)
			}
			m = mission.NewConvergentCampaign(f.ID, points, p.target.ID, priority)
		} else {
			m = mission.NewCampaign(f.ID, p.staging[0].ID, p.target.ID, priority)
		}
		out = append(out, m)
		count++
		s.Log.Add(w.Turn, f.ID, report.CategoryStrategy,
			"campaign planned against %s (score %.2f, %d staging points)",
			p.target.Name, p.score, len(p.staging))
	}
	return out
}

// Cleanup drops missions that finished or failed, returning the survivors.
func (s *Strategist) Cleanup(missions []*mission.Mission) []*mission.Mission {
	kept := missions[:0]
	for _, m := range missions {
		if m.Active() {
			kept = append(kept, m)
		}
	}
	return kept
}
