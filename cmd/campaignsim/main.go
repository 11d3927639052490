// Command campaignsim runs the turn-based campaign engine on a procedural
// theater: factions plan, march, besiege, and fight until the turn budget
// runs out, persisting snapshots so a run can resume.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/engine"
	"github.com/talgya/warmarch/internal/entropy"
	"github.com/talgya/warmarch/internal/persistence"
	"github.com/talgya/warmarch/internal/world"
)

type cfg struct {
	Seed      int64  `env:"SIM_SEED" envDefault:"42"`
	Turns     int    `env:"SIM_TURNS" envDefault:"40"`
	DBPath    string `env:"SIM_DB" envDefault:"data/campaign.db"`
	Locations int    `env:"SIM_LOCATIONS" envDefault:"24"`
	FactionN  int    `env:"SIM_FACTIONS" envDefault:"3"`
	Tunables  string `env:"SIM_TUNABLES"` // optional YAML overrides
	Reset     bool   `env:"SIM_RESET"`    // ignore any saved snapshot
	Verbose   bool   `env:"SIM_VERBOSE"`
}

func main() {
	var c cfg
	if err := env.Parse(&c); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	tun := config.Default()
	if c.Tunables != "" {
		var err error
		tun, err = config.Load(c.Tunables)
		if err != nil {
			slog.Error("failed to load tunables", "error", err)
			os.Exit(1)
		}
	}

	os.MkdirAll("data", 0755)
	db, err := persistence.Open(c.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", c.DBPath)

	rng := entropy.New(c.Seed)
	proc := setup(&c, db, tun, rng)

	// Stop cleanly on SIGINT/SIGTERM so the snapshot survives.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	for i := 0; i < c.Turns; i++ {
		select {
		case <-stop:
			slog.Info("interrupted, saving snapshot", "turn", proc.World.Turn)
			save(db, proc)
			return
		default:
		}

		rep := proc.RunTurn()
		for _, e := range rep.Events {
			if e.Global {
				slog.Info(e.Message, "turn", e.Turn, "category", e.Category)
			} else if c.Verbose {
				slog.Debug(e.Message, "turn", e.Turn, "faction", e.Faction)
			}
		}
		if err := db.AppendEvents(rep.Events); err != nil {
			slog.Error("failed to persist events", "error", err)
		}
	}

	save(db, proc)
	printStandings(proc.World)
}

// setup restores a saved snapshot or generates a fresh theater.
func setup(c *cfg, db *persistence.DB, tun *config.Tunables, rng *entropy.Source) *engine.Processor {
	if !c.Reset && db.HasSnapshot() {
		slog.Info("found saved snapshot, resuming")
		w, missions, err := db.LoadSnapshot()
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			os.Exit(1)
		}
		proc := engine.NewProcessor(w, tun, rng)
		proc.Missions = missions
		return proc
	}

	genCfg := world.DefaultGenConfig()
	genCfg.Seed = c.Seed
	genCfg.Locations = c.Locations
	genCfg.Factions = c.FactionN
	w := world.Generate(genCfg)
	slog.Info("theater generated",
		"locations", len(w.Locations),
		"roads", len(w.Roads),
		"factions", len(w.Factions),
		"units", len(w.Units),
	)
	return engine.NewProcessor(w, tun, rng)
}

func save(db *persistence.DB, proc *engine.Processor) {
	if err := db.SaveSnapshot(proc.World, proc.Missions); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}

// printStandings summarizes territorial control at the end of a run.
func printStandings(w *world.World) {
	held := make(map[world.FactionID]int)
	for _, l := range w.Locations {
		held[l.Faction]++
	}
	for _, f := range w.Factions {
		slog.Info("standings", "faction", f.Name, "locations", held[f.ID], "gold", f.Gold)
	}
	slog.Info("standings", "faction", "neutral", "locations", held[world.FactionNeutral])
}
