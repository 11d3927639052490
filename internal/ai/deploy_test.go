package ai

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/world"
)

func TestDeployNeverBreaksGarrisonFloor(t *testing.T) {
	fx := newFixture(t)
	m := mission.NewCampaign(fx.f1.ID, locStaging, locTarget, 10)

	big := fx.w.SpawnUnit(fx.f1.ID, 1000, world.AtLocation(locStaging))
	small := fx.w.SpawnUnit(fx.f1.ID, 500, world.AtLocation(locStaging))

	// Frontier floor at staging is 1000, so only 500 of 1500 may leave.
	dep := Deploy(fx.w, fx.staging, fx.f1, 600, m, fx.ledger, fx.tun)
	require.Len(t, dep.Units, 1)
	assert.Equal(t, 500, dep.Strength)

	// The strongest unit was split; its remainder garrisons the town.
	assert.Equal(t, 500, big.Strength)
	assert.True(t, big.Garrisoned)
	assert.True(t, big.Spent)
	assert.Equal(t, 500, small.Strength)

	taken := dep.Units[0]
	assert.True(t, fx.ledger.Claimed(taken.ID))
	assert.True(t, m.IsAssigned(taken.ID))
	assert.False(t, m.IsAssigned(big.ID))
}

func TestDeployNothingBelowGarrison(t *testing.T) {
	fx := newFixture(t)
	m := mission.NewCampaign(fx.f1.ID, locStaging, locTarget, 10)
	fx.w.SpawnUnit(fx.f1.ID, 900, world.AtLocation(locStaging))

	dep := Deploy(fx.w, fx.staging, fx.f1, 600, m, fx.ledger, fx.tun)
	assert.Empty(t, dep.Units)
	assert.Zero(t, dep.Strength)
}

func TestDeployTakesWholeUnitsThenSplits(t *testing.T) {
	fx := newFixture(t)
	m := mission.NewCampaign(fx.f1.ID, locStaging, locTarget, 10)

	garrison := fx.w.SpawnUnit(fx.f1.ID, 900, world.AtLocation(locStaging))
	garrison.Spent = true // already committed this turn
	a := fx.w.SpawnUnit(fx.f1.ID, 400, world.AtLocation(locStaging))
	b := fx.w.SpawnUnit(fx.f1.ID, 300, world.AtLocation(locStaging))

	dep := Deploy(fx.w, fx.staging, fx.f1, 600, m, fx.ledger, fx.tun)
	require.Len(t, dep.Units, 2)
	assert.Equal(t, 600, dep.Strength)

	// 400 marches whole; the 300 splits to cover the last 200.
	assert.Same(t, a, dep.Units[0])
	assert.Equal(t, 100, b.Strength)
	assert.Equal(t, 200, dep.Units[1].Strength)
	assert.Equal(t, 900, garrison.Strength)
}

func TestDeploySkipsRoomBelowSplitThreshold(t *testing.T) {
	fx := newFixture(t)
	m := mission.NewCampaign(fx.f1.ID, locStaging, locTarget, 10)
	u := fx.w.SpawnUnit(fx.f1.ID, 1050, world.AtLocation(locStaging))

	// Only 50 of room: not worth carving off a splinter.
	dep := Deploy(fx.w, fx.staging, fx.f1, 50, m, fx.ledger, fx.tun)
	assert.Empty(t, dep.Units)
	assert.Equal(t, 1050, u.Strength)
}

func TestDeploySkipsClaimedUnits(t *testing.T) {
	fx := newFixture(t)
	m := mission.NewCampaign(fx.f1.ID, locStaging, locTarget, 10)

	claimed := fx.w.SpawnUnit(fx.f1.ID, 800, world.AtLocation(locStaging))
	fx.w.SpawnUnit(fx.f1.ID, 700, world.AtLocation(locStaging))
	fx.ledger.Claim(claimed.ID, uuid.New())

	dep := Deploy(fx.w, fx.staging, fx.f1, 500, m, fx.ledger, fx.tun)
	for _, u := range dep.Units {
		assert.NotEqual(t, claimed.ID, u.ID)
	}
	assert.Equal(t, 800, claimed.Strength)
}
