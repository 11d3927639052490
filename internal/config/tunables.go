// Package config holds the tunable constants of the campaign engine.
// Every threshold that shapes AI behavior lives here so scenarios can
// rebalance without touching engine code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables are the balance knobs of the decision engine. Zero values are
// never valid; always start from Default and override.
type Tunables struct {
	// Garrison policy.
	GarrisonFloor     int `yaml:"garrison_floor"`     // minimum garrison at any held location
	GarrisonCap       int `yaml:"garrison_cap"`       // upper clamp on the garrison formula
	StrategicGarrison int `yaml:"strategic_garrison"` // floor for faction-designated strategic locations
	FrontierGarrison  int `yaml:"frontier_garrison"`  // floor for locations bordering enemy territory

	// Campaign sizing.
	AttackGarrisonRatio float64 `yaml:"attack_garrison_ratio"` // required force = enemy garrison × this
	MinAttackFloor      int     `yaml:"min_attack_floor"`
	MinAttackCap        int     `yaml:"min_attack_cap"`
	LaunchStrengthFloor int     `yaml:"launch_strength_floor"` // absolute deployable strength that always launches
	TargetPresenceFloor int     `yaml:"target_presence_floor"` // friendly strength at target that skips gathering
	SustainRatio        float64 `yaml:"sustain_ratio"`         // keep reinforcing while below required × this

	// Safety valves.
	TacticalPauseRatio  float64 `yaml:"tactical_pause_ratio"`  // hold when nearby threat exceeds force × this
	TacticalPauseFloor  int     `yaml:"tactical_pause_floor"`  // threats below this never pause a march
	BrokenCampaignRatio float64 `yaml:"broken_campaign_ratio"` // revert to gathering below required × this
	AssaultRatio        float64 `yaml:"assault_ratio"`         // assault when attack exceeds defense × this

	// Convergent campaigns.
	ReadinessFraction float64 `yaml:"readiness_fraction"`  // per-staging-point readiness threshold
	ConvergentMinUnit int     `yaml:"convergent_min_unit"` // smallest unit worth committing at launch

	// Unit splitting.
	SplitThreshold int `yaml:"split_threshold"` // never split off less than this many troops

	// Sieges. Costs are keyed by fortification level.
	SiegeCosts            map[int]int `yaml:"siege_costs"`
	SiegeManpower         int         `yaml:"siege_manpower"`
	SiegeManpowerHighFort int         `yaml:"siege_manpower_high_fort"`
	HighFortLevel         int         `yaml:"high_fort_level"`

	// Battle resolution.
	GarrisonDefenseFloor int `yaml:"garrison_defense_floor"` // fortification counts only above this garrison
	CascadeCap           int `yaml:"cascade_cap"`            // max AI-vs-AI battles resolved per turn
}

// Default returns the shipped balance values.
func Default() *Tunables {
	return &Tunables{
		GarrisonFloor:     500,
		GarrisonCap:       4000,
		StrategicGarrison: 1000,
		FrontierGarrison:  1000,

		AttackGarrisonRatio: 1.25,
		MinAttackFloor:      1000,
		MinAttackCap:        3000,
		LaunchStrengthFloor: 2000,
		TargetPresenceFloor: 500,
		SustainRatio:        1.10,

		TacticalPauseRatio:  1.5,
		TacticalPauseFloor:  1000,
		BrokenCampaignRatio: 0.30,
		AssaultRatio:        1.5,

		ReadinessFraction: 0.70,
		ConvergentMinUnit: 200,

		SplitThreshold: 100,

		SiegeCosts:            map[int]int{1: 15, 2: 30, 3: 50, 4: 100},
		SiegeManpower:         500,
		SiegeManpowerHighFort: 1000,
		HighFortLevel:         3,

		GarrisonDefenseFloor: 500,
		CascadeCap:           10,
	}
}

// Load reads a YAML tunables file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (*Tunables, error) {
	t := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tunables: %w", err)
	}
	if err := yaml.Unmarshal(b, t); err != nil {
		return nil, fmt.Errorf("parse tunables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid tunables %s: %w", path, err)
	}
	return t, nil
}

func (t *Tunables) validate() error {
	if t.GarrisonFloor <= 0 || t.GarrisonCap < t.GarrisonFloor {
		return fmt.Errorf("garrison clamp [%d, %d] is empty", t.GarrisonFloor, t.GarrisonCap)
	}
	if t.BrokenCampaignRatio <= 0 || t.BrokenCampaignRatio >= 1 {
		return fmt.Errorf("broken_campaign_ratio %.2f out of (0, 1)", t.BrokenCampaignRatio)
	}
	if t.ReadinessFraction <= 0 || t.ReadinessFraction > 1 {
		return fmt.Errorf("readiness_fraction %.2f out of (0, 1]", t.ReadinessFraction)
	}
	if t.SplitThreshold <= 0 {
		return fmt.Errorf("split_threshold must be positive")
	}
	if t.CascadeCap <= 0 {
		return fmt.Errorf("cascade_cap must be positive")
	}
	return nil
}
