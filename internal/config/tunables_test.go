package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPassesValidation(t *testing.T) {
	tun := Default()
	require.NoError(t, tun.validate())

	assert.Equal(t, 500, tun.GarrisonFloor)
	assert.Equal(t, 4000, tun.GarrisonCap)
	assert.Equal(t, 1.25, tun.AttackGarrisonRatio)
	assert.Equal(t, map[int]int{1: 15, 2: 30, 3: 50, 4: 100}, tun.SiegeCosts)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	body := []byte("garrison_floor: 300\nsiege_manpower: 750\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	tun, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300, tun.GarrisonFloor)
	assert.Equal(t, 750, tun.SiegeManpower)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.30, tun.BrokenCampaignRatio)
	assert.Equal(t, 10, tun.CascadeCap)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("broken_campaign_ratio: 1.5\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "broken_campaign_ratio")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
