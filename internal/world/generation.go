// Scenario generation using layered simplex noise. Produces a playable
// theater: locations with population/stability fields, roads with staged
// chokepoints, faction home regions, starting armies and leaders.
package world

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds scenario generation parameters.
type GenConfig struct {
	Locations int   // number of territory nodes
	Factions  int   // number of playing factions (excluding neutral)
	Seed      int64 // random seed (0 = random)

	// MeanPopulation scales the population noise field.
	MeanPopulation int

	// RoadDegree is the target number of roads per location.
	RoadDegree int
}

// DefaultGenConfig returns a mid-sized theater.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Locations:      24,
		Factions:       3,
		Seed:           0,
		MeanPopulation: 120000,
		RoadDegree:     3,
	}
}

// SmallTestConfig returns a tiny theater for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Locations:      8,
		Factions:       2,
		Seed:           42,
		MeanPopulation: 100000,
		RoadDegree:     2,
	}
}

// Generate builds a complete World from a configuration.
func Generate(cfg GenConfig) *World {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	popNoise := opensimplex.NewNormalized(seed)
	stabNoise := opensimplex.NewNormalized(seed + 1)
	fortNoise := opensimplex.NewNormalized(seed + 2)

	// Scatter locations on a jittered ring so neighbors are meaningful.
	type point struct{ x, y float64 }
	points := make([]point, cfg.Locations)
	locations := make([]*Location, cfg.Locations)
	for i := 0; i < cfg.Locations; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.Locations)
		radius := 0.55 + 0.45*rng.Float64()
		p := point{x: math.Cos(angle) * radius, y: math.Sin(angle) * radius}
		points[i] = p

		pop := popNoise.Eval2(p.x*2.0, p.y*2.0)
		stab := stabNoise.Eval2(p.x*1.4, p.y*1.4)
		fort := fortNoise.Eval2(p.x*3.0, p.y*3.0)

		locations[i] = &Location{
			ID:            LocationID(i + 1),
			Name:          fmt.Sprintf("Settlement %d", i+1),
			Faction:       FactionNeutral,
			Fortification: int(fort * float64(MaxFortification+1)),
			Population:    int(float64(cfg.MeanPopulation) * (0.4 + 1.2*pop)),
			Stability:     30 + int(stab*60),
			City:          pop > 0.65,
		}
		if locations[i].Fortification > MaxFortification {
			locations[i].Fortification = MaxFortification
		}
	}

	// Connect each location to its nearest neighbors. Stage count grows
	// with distance; short hops become local connectors.
	var roads []*Road
	seen := make(map[[2]LocationID]bool)
	nextRoad := RoadID(1)
	for i := range points {
		type cand struct {
			j    int
			dist float64
		}
		var cands []cand
		for j := range points {
			if i == j {
				continue
			}
			dx, dy := points[i].x-points[j].x, points[i].y-points[j].y
			cands = append(cands, cand{j: j, dist: math.Hypot(dx, dy)})
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
		degree := cfg.RoadDegree
		if degree > len(cands) {
			degree = len(cands)
		}
		for _, c := range cands[:degree] {
			a, b := locations[i].ID, locations[c.j].ID
			if a > b {
				a, b = b, a
			}
			if seen[[2]LocationID{a, b}] {
				continue
			}
			seen[[2]LocationID{a, b}] = true

			stageCount := int(c.dist * 4)
			if stageCount > 3 {
				stageCount = 3
			}
			stages := make([]Stage, stageCount)
			for s := range stages {
				stages[s] = Stage{Faction: FactionNeutral}
			}
			roads = append(roads, &Road{ID: nextRoad, A: a, B: b, Stages: stages})
			nextRoad++
		}
	}

	// Faction home regions: pick spread-out capitals, claim them and their
	// neighborhoods, leave the rest neutral.
	factions := make([]*Faction, 0, cfg.Factions)
	names := []string{"The Iron Compact", "The River Crowns", "The Ashen League", "The Verdant Host", "The Salt Banners", "The Granite Oath"}
	w := New(nil, locations, roads, nil, nil)
	for fi := 0; fi < cfg.Factions; fi++ {
		id := FactionID(fi + 1)
		f := &Faction{
			ID:   id,
			Name: names[fi%len(names)],
			Gold: 200 + rng.Intn(200),
			Personality: Personality{
				Aggression: 0.3 + 0.6*rng.Float64(),
				Expansion:  0.3 + 0.6*rng.Float64(),
			},
			NegotiatesNeutrals: rng.Float64() < 0.3,
		}
		capital := locations[(fi*cfg.Locations)/cfg.Factions]
		capital.Faction = id
		capital.Stability = 70 + rng.Intn(25)
		f.StrategicLocations = append(f.StrategicLocations, capital.ID)
		for _, adj := range w.AdjacentLocations(capital.ID) {
			if l, ok := w.Location(adj); ok && l.Faction == FactionNeutral {
				l.Faction = id
			}
		}
		factions = append(factions, f)
	}

	// Stages inherit the controller of their nearer endpoint.
	for _, r := range roads {
		la, _ := w.Location(r.A)
		lb, _ := w.Location(r.B)
		for s := range r.Stages {
			if s < len(r.Stages)/2 {
				r.Stages[s].Faction = la.Faction
			} else {
				r.Stages[s].Faction = lb.Faction
			}
		}
	}

	w.Factions = factions
	w.Reindex()

	// Starting armies: every held location gets a garrison scaled to its
	// population; capitals get a field army and a leader.
	leaderID := LeaderID(1)
	leaderNames := []string{"Maren", "Oskel", "Thandre", "Ysolt", "Corvin", "Hale", "Brennic", "Sava"}
	for _, l := range locations {
		if l.Faction == FactionNeutral {
			// Sparse neutral militias keep early expansion from being free.
			if rng.Float64() < 0.6 {
				w.SpawnUnit(FactionNeutral, 300+rng.Intn(500), AtLocation(l.ID))
			}
			continue
		}
		garrison := w.SpawnUnit(l.Faction, 600+l.Population/200, AtLocation(l.ID))
		garrison.Garrisoned = true

		f, _ := w.Faction(l.Faction)
		if len(f.StrategicLocations) > 0 && f.StrategicLocations[0] == l.ID {
			army := w.SpawnUnit(l.Faction, 1500+rng.Intn(1000), AtLocation(l.ID))
			lead := &Leader{
				ID:           leaderID,
				Name:         leaderNames[int(leaderID-1)%len(leaderNames)],
				Faction:      l.Faction,
				Location:     l.ID,
				CommandBonus: 0.1 + 0.15*rng.Float64(),
			}
			uid := army.ID
			lead.UnitID = &uid
			w.Leaders = append(w.Leaders, lead)
			leaderID++
		}
	}
	w.Reindex()
	return w
}
