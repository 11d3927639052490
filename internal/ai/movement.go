package ai

import (
	"log/slog"

	"github.com/talgya/warmarch/internal/world"
)

// StepUnit advances a unit one turn toward its destination: a located unit
// steps onto the connecting road (or straight across a local connector); a
// road unit advances one stage and exits onto the far location when it runs
// off the chain. Returns false when the unit has no destination or no
// direct road serves it.
func StepUnit(w *world.World, u *world.Unit) bool {
	if u.Destination == nil {
		return false
	}
	dest := *u.Destination

	switch u.Pos.Kind {
	case world.PosLocation:
		if u.Pos.Location == dest {
			arrive(u)
			return true
		}
		return enterRoad(w, u, dest)
	case world.PosRoad:
		return advanceOnRoad(w, u)
	}
	return false
}

// enterRoad moves a located unit onto the road toward dest. Local
// connectors cross instantly.
func enterRoad(w *world.World, u *world.Unit, dest world.LocationID) bool {
	from := u.Pos.Location
	r, ok := w.RoadBetween(from, dest)
	if !ok {
		// Direct adjacency only: a destination with no connecting road is a
		// planning error upstream, not something movement can fix.
		slog.Debug("unit destination unreachable", "unit", u.ID, "from", from, "dest", dest)
		return false
	}

	origin := from
	u.TripOrigin = &origin
	target := dest
	u.TripDest = &target

	if r.Local() {
		u.Pos = world.AtLocation(dest)
		arrive(u)
		return true
	}

	dir := world.DirForward
	stage := 0
	if r.B == from {
		dir = world.DirReverse
		stage = len(r.Stages) - 1
	}
	u.Pos = world.OnRoad(r.ID, stage, dir)
	u.TurnsUntilArrival = len(r.Stages)
	return true
}

// advanceOnRoad steps a road unit one stage along its direction, exiting
// onto the endpoint location past the last stage.
func advanceOnRoad(w *world.World, u *world.Unit) bool {
	r, ok := w.Road(u.Pos.Road)
	if !ok {
		return false
	}
	next := u.Pos.Stage + 1
	exit := r.B
	if u.Pos.Dir == world.DirReverse {
		next = u.Pos.Stage - 1
		exit = r.A
	}
	if next < 0 || next >= len(r.Stages) {
		u.Pos = world.AtLocation(exit)
		if u.Destination != nil && *u.Destination == exit {
			arrive(u)
		} else {
			u.TurnsUntilArrival = 0
		}
		return true
	}
	u.Pos.Stage = next
	if u.TurnsUntilArrival > 0 {
		u.TurnsUntilArrival--
	}
	return true
}

// arrive clears movement intent once the unit stands at its destination.
func arrive(u *world.Unit) {
	u.Destination = nil
	u.TripOrigin = nil
	u.TripDest = nil
	u.TurnsUntilArrival = 0
}
