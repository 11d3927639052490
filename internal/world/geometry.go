package world

// FarAway is the travel estimate for locations with no direct road. The
// engine does no pathfinding beyond direct adjacency; anything farther is
// simply "far" for prioritization purposes.
const FarAway = 99

// RoadsAt returns every road touching a location.
func (w *World) RoadsAt(loc LocationID) []*Road {
	var out []*Road
	for _, r := range w.Roads {
		if r.A == loc || r.B == loc {
			out = append(out, r)
		}
	}
	return out
}

// RoadBetween returns the direct road joining two locations, if any.
func (w *World) RoadBetween(a, b LocationID) (*Road, bool) {
	for _, r := range w.Roads {
		if r.Connects(a, b) {
			return r, true
		}
	}
	return nil, false
}

// AdjacentLocations returns the locations one road away.
func (w *World) AdjacentLocations(loc LocationID) []LocationID {
	var out []LocationID
	for _, r := range w.RoadsAt(loc) {
		out = append(out, r.OtherEnd(loc))
	}
	return out
}

// Distance estimates travel turns between two locations: 0 for the same
// location, stage count + 1 over a direct road, FarAway otherwise.
func (w *World) Distance(a, b LocationID) int {
	if a == b {
		return 0
	}
	if r, ok := w.RoadBetween(a, b); ok {
		if r.Local() {
			return 1
		}
		return len(r.Stages) + 1
	}
	return FarAway
}

// IsFrontier reports whether a faction-held location borders territory
// controlled by another non-neutral faction.
func (w *World) IsFrontier(loc LocationID, f FactionID) bool {
	for _, adj := range w.AdjacentLocations(loc) {
		l, ok := w.Location(adj)
		if !ok {
			continue
		}
		if l.Faction != f && l.Faction != FactionNeutral {
			return true
		}
	}
	return false
}

// remainingStages counts the stages a road unit still has to cross before
// stepping off the far end, including the one it stands on.
func remainingStages(r *Road, stage int, dir Direction) int {
	if dir == DirForward {
		return len(r.Stages) - stage
	}
	return stage + 1
}

// TravelTurns estimates how many turns a unit needs to reach a target
// location: 0 if already there, remaining stages if en route on a road
// toward it, road length + 1 from an adjacent location, FarAway otherwise.
// A halted or garrisoned unit still counts as arriving; a pause is not a
// cancelled march.
func (w *World) TravelTurns(u *Unit, target LocationID) int {
	switch u.Pos.Kind {
	case PosLocation:
		if u.Pos.Location == target {
			return 0
		}
		return w.Distance(u.Pos.Location, target)
	case PosRoad:
		r, ok := w.Road(u.Pos.Road)
		if !ok {
			return FarAway
		}
		var ahead LocationID
		if u.Pos.Dir == DirForward {
			ahead = r.B
		} else {
			ahead = r.A
		}
		rem := remainingStages(r, u.Pos.Stage, u.Pos.Dir)
		if ahead == target {
			return rem
		}
		// Reaching the target means stepping off this road first.
		return rem + w.Distance(ahead, target)
	}
	return FarAway
}
