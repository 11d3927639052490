// Package world provides the territorial data model: factions, locations,
// roads, armies, leaders, and the authoritative World aggregate that owns
// all of them. Components mutate the World in place; there is exactly one
// writer per phase of a turn.
package world

import "fmt"

// FactionID identifies a faction. 0 is the neutral sentinel: unclaimed
// territory and spontaneous uprisings belong to it.
type FactionID uint8

// FactionNeutral is the controller of unclaimed territory.
const FactionNeutral FactionID = 0

// LocationID identifies a territory node.
type LocationID uint64

// RoadID identifies a road between two locations.
type RoadID uint64

// UnitID identifies an army.
type UnitID uint64

// LeaderID identifies a leader character.
type LeaderID uint64

// Personality holds the AI disposition weights read by the strategist.
// The decision engine treats them as opaque prioritization inputs.
type Personality struct {
	Aggression float64 `json:"aggression"` // 0–1, appetite for attacking strong targets
	Expansion  float64 `json:"expansion"`  // 0–1, appetite for opening new fronts
}

// Faction is one side of the simulation.
type Faction struct {
	ID          FactionID   `json:"id"`
	Name        string      `json:"name"`
	Human       bool        `json:"human"` // human factions adjudicate their own battles
	Gold        int         `json:"gold"`  // per-turn military budget, spent on sieges
	Personality Personality `json:"personality"`

	// Locations this faction insists on garrisoning heavily even when quiet.
	StrategicLocations []LocationID `json:"strategic_locations,omitempty"`

	// Factions that prefer negotiating neutral targets over sieging them.
	NegotiatesNeutrals bool `json:"negotiates_neutrals"`
}

// MaxFortification is the highest fortification level of a location or stage.
const MaxFortification = 4

// fortDefenseBonus maps a fortification level to the flat strength bonus it
// grants a defending garrison.
var fortDefenseBonus = [MaxFortification + 1]int{0, 200, 350, 550, 800}

// FortificationBonus returns the defense bonus for a fortification level.
// Out-of-range levels clamp to the table edges.
func FortificationBonus(level int) int {
	if level <= 0 {
		return 0
	}
	if level > MaxFortification {
		level = MaxFortification
	}
	return fortDefenseBonus[level]
}

// Location is a territory node. Locations are map data: mutated during play,
// never created or destroyed by it.
type Location struct {
	ID            LocationID `json:"id"`
	Name          string     `json:"name"`
	Faction       FactionID  `json:"faction"`
	Fortification int        `json:"fortification"` // 0..MaxFortification
	Population    int        `json:"population"`
	Stability     int        `json:"stability"` // 0–100
	City          bool       `json:"city"`      // cities are deadlier for defeated defenders

	// SiegedThisTurn suppresses duplicate sieges within one turn.
	// Cleared by the turn processor.
	SiegedThisTurn bool `json:"-"`
}

// DefenseBonus returns the flat strength bonus this location's fortification
// grants its garrison.
func (l *Location) DefenseBonus() int {
	return FortificationBonus(l.Fortification)
}

// Stage is one segment of a road. Stages have their own controller and
// fortification, so chokepoints can be contested independently of the
// endpoint locations.
type Stage struct {
	Faction        FactionID `json:"faction"`
	Fortification  int       `json:"fortification"`
	SiegedThisTurn bool      `json:"-"`
}

// Road is an ordered chain of stages between two locations. A road with no
// stages is a local connector: crossing it is instantaneous.
type Road struct {
	ID     RoadID     `json:"id"`
	A      LocationID `json:"a"` // stage 0 touches A
	B      LocationID `json:"b"`
	Stages []Stage    `json:"stages"`
}

// Local reports whether the road is an instant-travel connector.
func (r *Road) Local() bool {
	return len(r.Stages) == 0
}

// OtherEnd returns the endpoint opposite from the given location.
func (r *Road) OtherEnd(loc LocationID) LocationID {
	if loc == r.A {
		return r.B
	}
	return r.A
}

// Connects reports whether the road joins the two locations.
func (r *Road) Connects(a, b LocationID) bool {
	return (r.A == a && r.B == b) || (r.A == b && r.B == a)
}

// Direction is the travel direction along a road's stage chain.
type Direction uint8

const (
	DirForward Direction = iota // from A toward B, stage index ascending
	DirReverse                  // from B toward A, stage index descending
)

// PositionKind tags the position variant of a unit.
type PositionKind uint8

const (
	PosLocation PositionKind = iota
	PosRoad
)

// Position is a tagged variant: a unit is at a location, or on a road stage
// moving in a direction, never both.
type Position struct {
	Kind     PositionKind `json:"kind"`
	Location LocationID   `json:"location,omitempty"` // valid when Kind == PosLocation
	Road     RoadID       `json:"road,omitempty"`     // valid when Kind == PosRoad
	Stage    int          `json:"stage,omitempty"`
	Dir      Direction    `json:"dir,omitempty"`
}

// AtLocation builds a location position.
func AtLocation(id LocationID) Position {
	return Position{Kind: PosLocation, Location: id}
}

// OnRoad builds a road-stage position.
func OnRoad(id RoadID, stage int, dir Direction) Position {
	return Position{Kind: PosRoad, Road: id, Stage: stage, Dir: dir}
}

// Same reports whether two positions name the same place. Direction is
// ignored: opposed units on one stage share a position.
func (p Position) Same(o Position) bool {
	if p.Kind != o.Kind {
		return false
	}
	if p.Kind == PosLocation {
		return p.Location == o.Location
	}
	return p.Road == o.Road && p.Stage == o.Stage
}

// String renders the position for logs.
func (p Position) String() string {
	if p.Kind == PosLocation {
		return fmt.Sprintf("loc:%d", p.Location)
	}
	return fmt.Sprintf("road:%d/%d", p.Road, p.Stage)
}

// Unit is an army: an owned, mutable aggregate of troops. Strength is
// always positive; a unit drained to zero is removed from the World, never
// retained.
type Unit struct {
	ID       UnitID    `json:"id"`
	Faction  FactionID `json:"faction"`
	Strength int       `json:"strength"`
	Pos      Position  `json:"pos"`

	// Behavioral flags.
	Sieging    bool `json:"sieging"`    // pinned to a siege, unavailable for other duty
	Garrisoned bool `json:"garrisoned"` // holding position, excluded from deployment
	Spent      bool `json:"spent"`      // acted this turn, cleared at turn start
	Insurgent  bool `json:"insurgent"`  // internal uprising rather than a regular army

	// Movement intent.
	Destination *LocationID `json:"destination,omitempty"`
	TripOrigin  *LocationID `json:"trip_origin,omitempty"`
	TripDest    *LocationID `json:"trip_dest,omitempty"`

	// TurnsUntilArrival is maintained by the movement executor while a
	// destination is set.
	TurnsUntilArrival int `json:"turns_until_arrival,omitempty"`

	// StartPos is the position at the start of the current turn, recorded by
	// the turn processor. Retreat geometry falls back to it.
	StartPos Position `json:"-"`
}

// Moving reports whether the unit has an active movement intent.
func (u *Unit) Moving() bool {
	return u.Destination != nil
}

// ClearOrders drops movement intent and duty flags, leaving the unit free
// for reassignment. Insurgent status is not an order and survives.
func (u *Unit) ClearOrders() {
	u.Destination = nil
	u.TripOrigin = nil
	u.TripDest = nil
	u.TurnsUntilArrival = 0
	u.Sieging = false
	u.Garrisoned = false
}

// Leader is an independently owned character who may ride with a unit.
// Units reference leaders by id only; a dying unit does not destroy its
// leader (survival is rolled at battle resolution).
type Leader struct {
	ID      LeaderID  `json:"id"`
	Name    string    `json:"name"`
	Faction FactionID `json:"faction"`

	// UnitID is the unit this leader rides with, nil when unattached.
	UnitID *UnitID `json:"unit_id,omitempty"`

	// Location holds the leader's position while unattached.
	Location LocationID `json:"location"`

	// CommandBonus is the additive strength multiplier contribution.
	// Multiple leaders on one unit stack.
	CommandBonus float64 `json:"command_bonus"`

	// GarrisonSubstitute marks leaders whose presence alone deters unrest,
	// collapsing a location's garrison requirement to zero.
	GarrisonSubstitute bool `json:"garrison_substitute"`
}
