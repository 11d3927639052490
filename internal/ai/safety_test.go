package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/warmarch/internal/config"
	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/world"
)

func TestEffectiveDefenseCountsMannedWallsOnly(t *testing.T) {
	fx := newFixture(t)

	g := fx.w.SpawnUnit(fx.f2.ID, 600, world.AtLocation(locTarget))
	assert.Equal(t, 800, EffectiveDefense(fx.w, fx.target, fx.f1.ID, fx.tun))

	// Below the garrison floor the fortification adds nothing.
	g.Strength = 400
	fx.w.Reindex()
	assert.Equal(t, 400, EffectiveDefense(fx.w, fx.target, fx.f1.ID, fx.tun))
}

func TestNearbyThreatSweepsAdjacency(t *testing.T) {
	fx := newFixture(t)
	fx.w.SpawnUnit(fx.f2.ID, 600, world.AtLocation(locTarget))

	// From the staging town the enemy garrison next door is the threat.
	assert.Equal(t, 600, NearbyThreat(fx.w, locStaging, fx.f1.ID))
	// The rear town sees nothing: its only neighbor is friendly.
	assert.Zero(t, NearbyThreat(fx.w, locRear, fx.f1.ID))
}

func TestConvergingStrengthCountsSameTurnArrivals(t *testing.T) {
	fx := newFixture(t)

	probe := fx.w.SpawnUnit(fx.f1.ID, 700, world.AtLocation(locStaging))
	dest := locTarget
	probe.Destination = &dest

	ally := fx.w.SpawnUnit(fx.f1.ID, 400, world.AtLocation(locStaging))
	allyDest := locTarget
	ally.Destination = &allyDest

	// Both are one turn out over the local connector.
	assert.Equal(t, 1100, ConvergingStrength(fx.w, probe, locTarget))

	// A force already at the target arrives on a different turn.
	fx.w.SpawnUnit(fx.f1.ID, 900, world.AtLocation(locTarget))
	assert.Equal(t, 1100, ConvergingStrength(fx.w, probe, locTarget))
}

func TestSanctionAttackWaitsForConvergence(t *testing.T) {
	fx := newFixture(t)
	fx.w.SpawnUnit(fx.f2.ID, 600, world.AtLocation(locTarget)) // effective 800

	probe := fx.w.SpawnUnit(fx.f1.ID, 700, world.AtLocation(locStaging))
	dest := locTarget
	probe.Destination = &dest
	assert.False(t, SanctionAttack(fx.w, probe, locTarget, fx.tun))

	ally := fx.w.SpawnUnit(fx.f1.ID, 400, world.AtLocation(locStaging))
	allyDest := locTarget
	ally.Destination = &allyDest
	assert.True(t, SanctionAttack(fx.w, probe, locTarget, fx.tun))
}

func TestShouldPause(t *testing.T) {
	tun := config.Default()
	assert.True(t, ShouldPause(2000, 1000, tun))
	assert.False(t, ShouldPause(1400, 1000, tun)) // below the 1.5 ratio
	assert.False(t, ShouldPause(900, 100, tun))   // below the absolute floor
}

func TestBrokenCampaign(t *testing.T) {
	fx := newFixture(t)
	m := mission.NewCampaign(fx.f1.ID, locStaging, locTarget, 10)
	m.Data.RequiredStrength = 2000

	u := fx.w.SpawnUnit(fx.f1.ID, 500, world.AtLocation(locStaging))
	m.Assign(u.ID)
	assert.True(t, BrokenCampaign(fx.w, m, fx.tun)) // 500 < 30% of 2000

	u.Strength = 700
	assert.False(t, BrokenCampaign(fx.w, m, fx.tun))

	// Unsized missions are never broken.
	m.Data.RequiredStrength = 0
	u.Strength = 0
	assert.False(t, BrokenCampaign(fx.w, m, fx.tun))
}
