// Package engine drives the simulation: one call to RunTurn is one
// synchronous game turn. Factions act in fixed order, each against its own
// per-turn claim ledger, and the AI cascade settles every contested
// position before the turn commits.
package engine

import (
	"log/slog"

	"github.com/talgya/warmarch/internal/ai"
	"github.com/talgya/warmarch/internal/combat"
	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/entropy"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// Processor owns the turn loop state: the world, the active mission list,
// and the shared services handed to every subsystem.
type Processor struct {
	World    *world.World
	Missions []*mission.Mission
	Tun      *config.Tunables
	RNG      *entropy.Source
	Log      *report.Log

	// Strategist proposes and retires missions. Nil disables proposal, for
	// tests that drive missions by hand.
	Strategist *ai.Strategist
}

// NewProcessor wires a turn processor with default services.
func NewProcessor(w *world.World, tun *config.Tunables, rng *entropy.Source) *Processor {
	log := report.NewLog()
	return &Processor{
		World:      w,
		Tun:        tun,
		RNG:        rng,
		Log:        log,
		Strategist: &ai.Strategist{Tun: tun, Log: log},
	}
}

// TurnReport summarizes one processed turn.
type TurnReport struct {
	Turn    uint64
	Battles []*combat.Result
	Events  []report.Event
}

// RunTurn advances the simulation one turn: per-turn state resets, the AI
// phase for every non-human faction in fixed order, then the cascade phase
// resolving all AI-vs-AI battles against the globally consistent snapshot.
func (p *Processor) RunTurn() *TurnReport {
	w := p.World
	w.Turn++
	eventsBefore := len(p.Log.Events)
	p.beginTurn()

	for _, f := range w.Factions {
		if f.Human {
			continue
		}
		if p.Strategist != nil {
			p.Missions = append(p.Missions, p.Strategist.Propose(w, f, p.Missions)...)
		}
		ctrl := &ai.Controller{World: w, Tun: p.Tun, RNG: p.RNG, Log: p.Log}
		ledger := mission.NewClaimLedger()
		ctrl.RunFaction(f, p.Missions, ledger)
	}

	battles := combat.ResolveAICascade(w, p.Tun, p.RNG)
	p.reportBattles(battles)

	if p.Strategist != nil {
		p.Missions = p.Strategist.Cleanup(p.Missions)
	}

	slog.Info("turn processed",
		"turn", w.Turn,
		"missions", len(p.Missions),
		"battles", len(battles),
		"units", len(w.Units),
	)
	return &TurnReport{
		Turn:    w.Turn,
		Battles: battles,
		Events:  p.Log.Events[eventsBefore:],
	}
}

// beginTurn resets per-turn state: siege markers, spent flags, and each
// unit's start-of-turn position for retreat geometry.
func (p *Processor) beginTurn() {
	for _, l := range p.World.Locations {
		l.SiegedThisTurn = false
	}
	for _, r := range p.World.Roads {
		for i := range r.Stages {
			r.Stages[i].SiegedThisTurn = false
		}
	}
	for _, u := range p.World.Units {
		u.Spent = false
		u.StartPos = u.Pos
	}
}

// reportBattles turns cascade results into globally visible events.
func (p *Processor) reportBattles(battles []*combat.Result) {
	w := p.World
	for _, b := range battles {
		winner := b.Defender
		if b.AttackerWon {
			winner = b.Attacker
		}
		name := b.At.String()
		if b.At.Kind == world.PosLocation {
			if loc, ok := w.Location(b.At.Location); ok {
				name = loc.Name
			}
		}
		winnerName := factionName(w, winner)
		p.Log.AddGlobal(w.Turn, winner, report.CategoryBattle,
			"battle at %s: %s prevails (%s vs %s), %s losses inflicted",
			name, winnerName,
			report.Troops(b.AttackerStrength), report.Troops(b.DefenderStrength),
			report.Troops(b.LossesInflicted))
		for range b.LeadersKilled {
			p.Log.AddGlobal(w.Turn, winner, report.CategoryLeader, "a leader fell at %s", name)
		}
	}
}

func factionName(w *world.World, id world.FactionID) string {
	if f, ok := w.Faction(id); ok {
		return f.Name
	}
	return "the locals"
}
