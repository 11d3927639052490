package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetreatStepsBackAlongRoad(t *testing.T) {
	w := triangleWorld()

	u := w.SpawnUnit(1, 500, OnRoad(1, 1, DirForward))
	assert.Equal(t, OnRoad(1, 0, DirForward), w.RetreatPosition(u))

	// At the first stage the chain runs out: fall back to the endpoint
	// behind the direction of travel.
	u.Pos = OnRoad(1, 0, DirForward)
	assert.Equal(t, AtLocation(1), w.RetreatPosition(u))

	u.Pos = OnRoad(1, 1, DirReverse)
	assert.Equal(t, AtLocation(2), w.RetreatPosition(u))
}

func TestRetreatFallsBackToStartOfTurnPosition(t *testing.T) {
	w := triangleWorld()
	u := w.SpawnUnit(2, 500, AtLocation(2))
	u.StartPos = AtLocation(3)

	assert.Equal(t, AtLocation(3), w.RetreatPosition(u))
}

func TestRetreatFallsBackToTripOrigin(t *testing.T) {
	w := triangleWorld()
	u := w.SpawnUnit(2, 500, AtLocation(2))
	u.StartPos = u.Pos // no movement this turn
	origin := LocationID(3)
	u.TripOrigin = &origin

	assert.Equal(t, AtLocation(3), w.RetreatPosition(u))
}

func TestRetreatFallsBackToAdjacentFriendly(t *testing.T) {
	w := triangleWorld()
	// A unit of the southern faction beaten at B: no road math, no start
	// position, no trip origin, but friendly C is adjacent.
	u := w.SpawnUnit(2, 500, AtLocation(2))
	u.StartPos = u.Pos

	assert.Equal(t, AtLocation(3), w.RetreatPosition(u))
}

func TestRetreatStaysInPlaceAsLastResort(t *testing.T) {
	w := triangleWorld()
	// Strand a northern unit at enemy C with no friendly neighbors: B is
	// friendly, so flip everything hostile first.
	for _, l := range w.Locations {
		l.Faction = 2
	}
	for _, r := range w.Roads {
		for i := range r.Stages {
			r.Stages[i].Faction = 2
		}
	}
	u := w.SpawnUnit(1, 500, AtLocation(3))
	u.StartPos = u.Pos

	assert.Equal(t, AtLocation(3), w.RetreatPosition(u))
}

func TestRetreatPrefersFriendlyStageWhenNoFriendlyLocation(t *testing.T) {
	w := triangleWorld()
	// B falls to the enemy but the first road stage toward A is still held.
	b, _ := w.Location(2)
	b.Faction = 2
	a, _ := w.Location(1)
	a.Faction = 2
	r, _ := w.Road(1)
	r.Stages[0].Faction = 1
	r.Stages[1].Faction = 2

	u := w.SpawnUnit(1, 500, AtLocation(2))
	u.StartPos = u.Pos

	got := w.RetreatPosition(u)
	assert.Equal(t, PosRoad, got.Kind)
	assert.Equal(t, RoadID(1), got.Road)
	assert.Equal(t, 0, got.Stage)
}
