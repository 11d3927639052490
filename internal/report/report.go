// Package report collects the human-readable event stream of a simulation:
// faction-visibility-tagged entries consumed by the command-line runner and
// persisted alongside snapshots.
package report

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/talgya/warmarch/internal/world"
)

// Category groups events for filtering.
type Category string

const (
	CategoryCampaign Category = "campaign"
	CategorySiege    Category = "siege"
	CategoryBattle   Category = "battle"
	CategoryLeader   Category = "leader"
	CategoryStrategy Category = "strategy"
)

// Event is one notable occurrence. Global events are visible to everyone;
// otherwise only the owning faction sees them.
type Event struct {
	Turn     uint64          `json:"turn"`
	Faction  world.FactionID `json:"faction"`
	Global   bool            `json:"global"`
	Category Category        `json:"category"`
	Message  string          `json:"message"`
}

// Log accumulates events for a run.
type Log struct {
	Events []Event
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{}
}

// Add appends a faction-visible event.
func (l *Log) Add(turn uint64, f world.FactionID, c Category, format string, args ...any) {
	l.Events = append(l.Events, Event{
		Turn:     turn,
		Faction:  f,
		Category: c,
		Message:  fmt.Sprintf(format, args...),
	})
}

// AddGlobal appends an event every faction can read, such as a siege or a
// resolved battle.
func (l *Log) AddGlobal(turn uint64, f world.FactionID, c Category, format string, args ...any) {
	l.Events = append(l.Events, Event{
		Turn:     turn,
		Faction:  f,
		Global:   true,
		Category: c,
		Message:  fmt.Sprintf(format, args...),
	})
}

// VisibleTo filters the log down to what one faction may read.
func (l *Log) VisibleTo(f world.FactionID) []Event {
	var out []Event
	for _, e := range l.Events {
		if e.Global || e.Faction == f {
			out = append(out, e)
		}
	}
	return out
}

// SinceTurn returns the events from the given turn onward.
func (l *Log) SinceTurn(turn uint64) []Event {
	var out []Event
	for _, e := range l.Events {
		if e.Turn >= turn {
			out = append(out, e)
		}
	}
	return out
}

// Troops renders a troop count for log messages.
func Troops(n int) string {
	return humanize.Comma(int64(n))
}

// Gold renders a gold figure for log messages.
func Gold(n int) string {
	return humanize.Comma(int64(n)) + " gold"
}
