// Package mission provides AI intents: multi-turn orders against a target,
// plus the per-turn claim ledger that keeps units from being committed to
// two missions at once.
package mission

import (
	"github.com/google/uuid"

	"github.com/talgya/warmarch/internal/world"
)

// Type discriminates mission kinds. Every handler switch over Type must be
// exhaustive so a new kind cannot silently no-op.
type Type uint8

const (
	TypeCampaign    Type = iota // multi-stage offensive against a location
	TypeRoadDefense             // hold a road chokepoint stage
)

// String names the mission type for logs.
func (t Type) String() string {
	switch t {
	case TypeCampaign:
		return "campaign"
	case TypeRoadDefense:
		return "road-defense"
	}
	return "unknown"
}

// Stage is the state machine position of a mission.
type Stage uint8

const (
	StageGathering Stage = iota
	StageMoving
	StageSieging
	StageAssaulting
	StageCompleted
	StageFailed
)

// String names the stage for logs.
func (s Stage) String() string {
	switch s {
	case StageGathering:
		return "gathering"
	case StageMoving:
		return "moving"
	case StageSieging:
		return "sieging"
	case StageAssaulting:
		return "assaulting"
	case StageCompleted:
		return "completed"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// Status is the lifecycle state read back by the strategy layer.
type Status uint8

const (
	StatusActive Status = iota
	StatusCompleted
	StatusFailed
)

// Data carries mission-specific parameters. It is typed rather than
// free-form so handlers cannot disagree about its shape.
type Data struct {
	// RequiredStrength is the force the mission is sized for.
	RequiredStrength int `json:"required_strength"`

	// Readiness records the last polled strength per staging point of a
	// convergent campaign.
	Readiness map[world.LocationID]int `json:"readiness,omitempty"`
}

// Mission is an AI intent. It references units by id only: units die,
// merge, and split mid-mission, so ownership stays with the World.
type Mission struct {
	ID       uuid.UUID       `json:"id"`
	Type     Type            `json:"type"`
	Faction  world.FactionID `json:"faction"`
	Priority int             `json:"priority"` // higher runs first within a faction
	Stage    Stage           `json:"stage"`
	Status   Status          `json:"status"`

	// Target identifies the objective: a location for campaigns, a road
	// stage for road defense.
	Target      world.LocationID `json:"target,omitempty"`
	TargetRoad  world.RoadID     `json:"target_road,omitempty"`
	TargetStage int              `json:"target_stage,omitempty"`

	// Staging is the assembly location. Convergent campaigns use
	// StagingPoints instead (len >= 2) and leave Staging zero.
	Staging       world.LocationID   `json:"staging,omitempty"`
	StagingPoints []world.LocationID `json:"staging_points,omitempty"`

	// Assigned is the set of unit ids committed to this mission.
	Assigned []world.UnitID `json:"assigned,omitempty"`

	Data Data `json:"data"`
}

// NewCampaign creates an active campaign mission.
func NewCampaign(f world.FactionID, staging, target world.LocationID, priority int) *Mission {
	return &Mission{
		ID:       uuid.New(),
		Type:     TypeCampaign,
		Faction:  f,
		Priority: priority,
		Stage:    StageGathering,
		Status:   StatusActive,
		Target:   target,
		Staging:  staging,
	}
}

// NewConvergentCampaign creates a campaign assembling from several staging
// points at once.
func NewConvergentCampaign(f world.FactionID, staging []world.LocationID, target world.LocationID, priority int) *Mission {
	return &Mission{
		ID:            uuid.New(),
		Type:          TypeCampaign,
		Faction:       f,
		Priority:      priority,
		Stage:         StageGathering,
		Status:        StatusActive,
		Target:        target,
		StagingPoints: staging,
		Data:          Data{Readiness: make(map[world.LocationID]int, len(staging))},
	}
}

// NewRoadDefense creates a chokepoint-holding mission.
func NewRoadDefense(f world.FactionID, staging world.LocationID, road world.RoadID, stage int, required, priority int) *Mission {
	return &Mission{
		ID:          uuid.New(),
		Type:        TypeRoadDefense,
		Faction:     f,
		Priority:    priority,
		Stage:       StageGathering,
		Status:      StatusActive,
		TargetRoad:  road,
		TargetStage: stage,
		Staging:     staging,
		Data:        Data{RequiredStrength: required},
	}
}

// Convergent reports whether the mission assembles from multiple points.
func (m *Mission) Convergent() bool {
	return len(m.StagingPoints) >= 2
}

// Active reports whether the mission still wants turns.
func (m *Mission) Active() bool {
	return m.Status == StatusActive
}

// Complete marks the mission finished.
func (m *Mission) Complete() {
	m.Stage = StageCompleted
	m.Status = StatusCompleted
}

// Fail marks the mission failed; the strategy layer filters it out.
func (m *Mission) Fail() {
	m.Stage = StageFailed
	m.Status = StatusFailed
}

// Assign records a unit as committed to this mission. Idempotent.
func (m *Mission) Assign(id world.UnitID) {
	for _, v := range m.Assigned {
		if v == id {
			return
		}
	}
	m.Assigned = append(m.Assigned, id)
}

// IsAssigned reports whether a unit is committed to this mission.
func (m *Mission) IsAssigned(id world.UnitID) bool {
	for _, v := range m.Assigned {
		if v == id {
			return true
		}
	}
	return false
}

// PruneDead drops assigned unit ids that no longer exist in the world.
func (m *Mission) PruneDead(w *world.World) {
	kept := m.Assigned[:0]
	for _, id := range m.Assigned {
		if _, ok := w.Unit(id); ok {
			kept = append(kept, id)
		}
	}
	m.Assigned = kept
}

// CommittedStrength sums the strength of all live assigned units.
func (m *Mission) CommittedStrength(w *world.World) int {
	total := 0
	for _, id := range m.Assigned {
		if u, ok := w.Unit(id); ok {
			total += u.Strength
		}
	}
	return total
}

// AssignedUnits resolves the live units committed to this mission.
func (m *Mission) AssignedUnits(w *world.World) []*world.Unit {
	var out []*world.Unit
	for _, id := range m.Assigned {
		if u, ok := w.Unit(id); ok {
			out = append(out, u)
		}
	}
	return out
}
