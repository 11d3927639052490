package mission

import (
	"github.com/google/uuid"

	"github.com/talgya/warmarch/internal/world"
)

// ClaimLedger is the per-turn record of which mission holds each unit. It
// is the engine's only concurrency-control mechanism: every allocator and
// handler must claim a unit here before acting on it, and must treat an
// already-claimed unit as unavailable. The turn processor constructs one
// ledger per faction turn and discards it afterwards; claims never
// persist across turns.
type ClaimLedger struct {
	claims map[world.UnitID]uuid.UUID
}

// NewClaimLedger creates an empty ledger for one turn's computation.
func NewClaimLedger() *ClaimLedger {
	return &ClaimLedger{claims: make(map[world.UnitID]uuid.UUID)}
}

// Claim records a unit as committed to a mission this turn. Returns false
// if another mission already holds it; re-claiming by the same mission is
// allowed and true.
func (l *ClaimLedger) Claim(u world.UnitID, m uuid.UUID) bool {
	if holder, ok := l.claims[u]; ok {
		return holder == m
	}
	l.claims[u] = m
	return true
}

// Claimed reports whether any mission holds the unit this turn.
func (l *ClaimLedger) Claimed(u world.UnitID) bool {
	_, ok := l.claims[u]
	return ok
}

// Holder returns the mission holding a unit.
func (l *ClaimLedger) Holder(u world.UnitID) (uuid.UUID, bool) {
	m, ok := l.claims[u]
	return m, ok
}

// Len returns the number of claimed units.
func (l *ClaimLedger) Len() int {
	return len(l.claims)
}
