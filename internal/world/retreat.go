package world

// RetreatPosition maps a defeated unit's position to its retreat
// destination. The chain always produces an answer:
//
//  1. road-stage math: one stage back against the travel direction, or the
//     endpoint location behind the unit when it runs off the chain;
//  2. the unit's start-of-turn position;
//  3. the unit's trip origin;
//  4. any adjacent friendly location or stage;
//  5. stay in place.
func (w *World) RetreatPosition(u *Unit) Position {
	if u.Pos.Kind == PosRoad {
		if p, ok := w.roadFallback(u); ok {
			return p
		}
	}
	if u.StartPos != (Position{}) && !u.StartPos.Same(u.Pos) {
		if w.validPosition(u.StartPos) {
			return u.StartPos
		}
	}
	if u.TripOrigin != nil {
		if _, ok := w.Location(*u.TripOrigin); ok && *u.TripOrigin != u.Pos.Location {
			return AtLocation(*u.TripOrigin)
		}
	}
	if p, ok := w.adjacentFriendly(u); ok {
		return p
	}
	return u.Pos
}

// roadFallback steps a road unit one stage back against its direction of
// travel, dropping onto the endpoint location behind it at the chain edge.
func (w *World) roadFallback(u *Unit) (Position, bool) {
	r, ok := w.Road(u.Pos.Road)
	if !ok {
		return Position{}, false
	}
	if u.Pos.Dir == DirForward {
		if u.Pos.Stage > 0 {
			return OnRoad(r.ID, u.Pos.Stage-1, u.Pos.Dir), true
		}
		return AtLocation(r.A), true
	}
	if u.Pos.Stage < len(r.Stages)-1 {
		return OnRoad(r.ID, u.Pos.Stage+1, u.Pos.Dir), true
	}
	return AtLocation(r.B), true
}

// adjacentFriendly finds any neighboring position controlled by the unit's
// faction: for a located unit, an adjacent friendly location or the first
// friendly stage of a touching road; for a road unit, a friendly endpoint.
func (w *World) adjacentFriendly(u *Unit) (Position, bool) {
	switch u.Pos.Kind {
	case PosLocation:
		for _, r := range w.RoadsAt(u.Pos.Location) {
			other, ok := w.Location(r.OtherEnd(u.Pos.Location))
			if ok && other.Faction == u.Faction {
				return AtLocation(other.ID), true
			}
		}
		for _, r := range w.RoadsAt(u.Pos.Location) {
			for i := range r.Stages {
				if r.Stages[i].Faction == u.Faction {
					dir := DirForward
					if r.B == u.Pos.Location {
						dir = DirReverse
					}
					return OnRoad(r.ID, i, dir), true
				}
			}
		}
	case PosRoad:
		r, ok := w.Road(u.Pos.Road)
		if !ok {
			return Position{}, false
		}
		for _, end := range [2]LocationID{r.A, r.B} {
			l, ok := w.Location(end)
			if ok && l.Faction == u.Faction {
				return AtLocation(end), true
			}
		}
	}
	return Position{}, false
}

// validPosition reports whether a position still references live map data.
func (w *World) validPosition(p Position) bool {
	switch p.Kind {
	case PosLocation:
		_, ok := w.Location(p.Location)
		return ok
	case PosRoad:
		r, ok := w.Road(p.Road)
		return ok && p.Stage >= 0 && p.Stage < len(r.Stages)
	}
	return false
}
