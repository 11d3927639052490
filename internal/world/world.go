package world

import "sort"

// World is the single authoritative owner of all game entities. Every
// engine component receives *World and mutates it in place; id indexes are
// maintained by the mutation helpers below.
type World struct {
	Turn uint64 `json:"turn"`

	Factions  []*Faction  `json:"factions"`
	Locations []*Location `json:"locations"`
	Roads     []*Road     `json:"roads"`
	Units     []*Unit     `json:"units"`
	Leaders   []*Leader   `json:"leaders"`

	factionIndex  map[FactionID]*Faction
	locationIndex map[LocationID]*Location
	roadIndex     map[RoadID]*Road
	unitIndex     map[UnitID]*Unit
	leaderIndex   map[LeaderID]*Leader

	nextUnitID UnitID
}

// New assembles a World and builds its indexes.
func New(factions []*Faction, locations []*Location, roads []*Road, units []*Unit, leaders []*Leader) *World {
	w := &World{
		Factions:  factions,
		Locations: locations,
		Roads:     roads,
		Units:     units,
		Leaders:   leaders,
	}
	w.Reindex()
	return w
}

// Reindex rebuilds all id indexes. Call after bulk-loading state.
func (w *World) Reindex() {
	w.factionIndex = make(map[FactionID]*Faction, len(w.Factions))
	for _, f := range w.Factions {
		w.factionIndex[f.ID] = f
	}
	w.locationIndex = make(map[LocationID]*Location, len(w.Locations))
	for _, l := range w.Locations {
		w.locationIndex[l.ID] = l
	}
	w.roadIndex = make(map[RoadID]*Road, len(w.Roads))
	for _, r := range w.Roads {
		w.roadIndex[r.ID] = r
	}
	w.unitIndex = make(map[UnitID]*Unit, len(w.Units))
	w.nextUnitID = 0
	for _, u := range w.Units {
		w.unitIndex[u.ID] = u
		if u.ID > w.nextUnitID {
			w.nextUnitID = u.ID
		}
	}
	w.leaderIndex = make(map[LeaderID]*Leader, len(w.Leaders))
	for _, l := range w.Leaders {
		w.leaderIndex[l.ID] = l
	}
}

// Faction looks up a faction by id.
func (w *World) Faction(id FactionID) (*Faction, bool) {
	f, ok := w.factionIndex[id]
	return f, ok
}

// Location looks up a location by id.
func (w *World) Location(id LocationID) (*Location, bool) {
	l, ok := w.locationIndex[id]
	return l, ok
}

// Road looks up a road by id.
func (w *World) Road(id RoadID) (*Road, bool) {
	r, ok := w.roadIndex[id]
	return r, ok
}

// Unit looks up a live unit by id.
func (w *World) Unit(id UnitID) (*Unit, bool) {
	u, ok := w.unitIndex[id]
	return u, ok
}

// Leader looks up a leader by id.
func (w *World) Leader(id LeaderID) (*Leader, bool) {
	l, ok := w.leaderIndex[id]
	return l, ok
}

// SpawnUnit creates a new unit with a fresh id. Strength must be positive;
// the caller guarantees it (splits are guarded upstream).
func (w *World) SpawnUnit(f FactionID, strength int, pos Position) *Unit {
	w.nextUnitID++
	u := &Unit{
		ID:       w.nextUnitID,
		Faction:  f,
		Strength: strength,
		Pos:      pos,
		StartPos: pos,
	}
	w.Units = append(w.Units, u)
	w.unitIndex[u.ID] = u
	return u
}

// RemoveUnit deletes a unit from the world and detaches any leaders riding
// with it. Leader survival is the battle resolver's concern; removal here
// only severs the reference.
func (w *World) RemoveUnit(id UnitID) {
	u, ok := w.unitIndex[id]
	if !ok {
		return
	}
	delete(w.unitIndex, id)
	for i, v := range w.Units {
		if v.ID == id {
			w.Units = append(w.Units[:i], w.Units[i+1:]...)
			break
		}
	}
	for _, l := range w.Leaders {
		if l.UnitID != nil && *l.UnitID == id {
			l.UnitID = nil
			if u.Pos.Kind == PosLocation {
				l.Location = u.Pos.Location
			}
		}
	}
}

// RemoveLeader deletes a leader (killed in battle).
func (w *World) RemoveLeader(id LeaderID) {
	delete(w.leaderIndex, id)
	for i, l := range w.Leaders {
		if l.ID == id {
			w.Leaders = append(w.Leaders[:i], w.Leaders[i+1:]...)
			return
		}
	}
}

// SplitUnit carves `take` troops off u into a new unit sharing u's position
// and faction. The caller guarantees 0 < take < u.Strength. The new unit
// starts with clean flags and no orders.
func (w *World) SplitUnit(u *Unit, take int) *Unit {
	u.Strength -= take
	n := w.SpawnUnit(u.Faction, take, u.Pos)
	n.StartPos = u.StartPos
	n.Insurgent = u.Insurgent
	return n
}

// UnitsAt returns all units sharing a position, in stable id order.
func (w *World) UnitsAt(pos Position) []*Unit {
	var out []*Unit
	for _, u := range w.Units {
		if u.Pos.Same(pos) {
			out = append(out, u)
		}
	}
	return out
}

// FactionUnitsAt returns one faction's units at a position.
func (w *World) FactionUnitsAt(pos Position, f FactionID) []*Unit {
	var out []*Unit
	for _, u := range w.Units {
		if u.Faction == f && u.Pos.Same(pos) {
			out = append(out, u)
		}
	}
	return out
}

// StrengthAt sums one faction's raw troop strength at a position. Leader
// multipliers are combat concerns and excluded here.
func (w *World) StrengthAt(pos Position, f FactionID) int {
	total := 0
	for _, u := range w.Units {
		if u.Faction == f && u.Pos.Same(pos) {
			total += u.Strength
		}
	}
	return total
}

// HostileStrengthAt sums the strength of all units at a position that do
// not belong to the given faction.
func (w *World) HostileStrengthAt(pos Position, f FactionID) int {
	total := 0
	for _, u := range w.Units {
		if u.Faction != f && u.Pos.Same(pos) {
			total += u.Strength
		}
	}
	return total
}

// LeadersOn returns the leaders riding with a unit.
func (w *World) LeadersOn(id UnitID) []*Leader {
	var out []*Leader
	for _, l := range w.Leaders {
		if l.UnitID != nil && *l.UnitID == id {
			out = append(out, l)
		}
	}
	return out
}

// FactionLocations returns the locations a faction controls.
func (w *World) FactionLocations(f FactionID) []*Location {
	var out []*Location
	for _, l := range w.Locations {
		if l.Faction == f {
			out = append(out, l)
		}
	}
	return out
}

// SortByStrengthDesc orders units strongest first, id ascending on ties so
// loss distribution is deterministic.
func SortByStrengthDesc(units []*Unit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].Strength != units[j].Strength {
			return units[i].Strength > units[j].Strength
		}
		return units[i].ID < units[j].ID
	})
}
