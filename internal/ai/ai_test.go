package ai

import (
	"testing"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/entropy"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// fixture is a small two-faction theater: the staging town borders the
// enemy target over a local connector, with a rear town behind it.
//
//	Rear(1) — Staging(1) — Target(2)
type fixture struct {
	w      *world.World
	f1, f2 *world.Faction
	tun    *config.Tunables
	ctrl   *Controller
	ledger *mission.ClaimLedger

	staging *world.Location
	target  *world.Location
	rear    *world.Location
}

const (
	locStaging = world.LocationID(1)
	locTarget  = world.LocationID(2)
	locRear    = world.LocationID(3)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f1 := &world.Faction{ID: 1, Name: "Iron Compact", Gold: 200}
	f2 := &world.Faction{ID: 2, Name: "River Crowns", Gold: 200}
	locations := []*world.Location{
		{ID: locStaging, Name: "Staging", Faction: 1, Population: 100000, Stability: 50},
		{ID: locTarget, Name: "Target", Faction: 2, Population: 80000, Stability: 60, Fortification: 1},
		{ID: locRear, Name: "Rear", Faction: 1, Population: 60000, Stability: 80},
	}
	roads := []*world.Road{
		{ID: 1, A: locStaging, B: locTarget},
		{ID: 2, A: locRear, B: locStaging},
	}
	w := world.New([]*world.Faction{f1, f2}, locations, roads, nil, nil)
	tun := config.Default()
	fx := &fixture{
		w:      w,
		f1:     f1,
		f2:     f2,
		tun:    tun,
		ctrl:   &Controller{World: w, Tun: tun, RNG: entropy.New(1), Log: report.NewLog()},
		ledger: mission.NewClaimLedger(),
	}
	fx.staging, _ = w.Location(locStaging)
	fx.target, _ = w.Location(locTarget)
	fx.rear, _ = w.Location(locRear)
	return fx
}
