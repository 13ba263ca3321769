package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/cachesim/sim"
)

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadModelFile_OverridesOnlyGivenFields(t *testing.T) {
	cfg := sim.NewHierarchyConfig(4, 1)
	path := writeModel(t, "timing:\n  dram_access_ns: 80\n  dram_writeback_ns: 10\nenergy:\n  l2_idle_energy: 1.2\n")

	require.NoError(t, LoadModelFile(path, &cfg))

	assert.Equal(t, 80.0, cfg.Timing.DRAMAccessNs)
	assert.Equal(t, 10.0, cfg.Timing.DRAMWritebackNs)
	assert.Equal(t, 0.5, cfg.Timing.L1AccessNs)
	assert.Equal(t, 1.2, cfg.Energy.L2IdleEnergy)
	assert.Equal(t, 1.0, cfg.Energy.L1ActiveEnergy)
	assert.Equal(t, 4, cfg.Associativity)
}

func TestLoadModelFile_UnknownKey_ConfigError(t *testing.T) {
	cfg := sim.NewHierarchyConfig(4, 1)
	path := writeModel(t, "timing:\n  dram_acess_ns: 80\n")

	err := LoadModelFile(path, &cfg)

	var cfgErr *sim.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 50.0, cfg.Timing.DRAMAccessNs, "cfg is untouched on error")
}

func TestLoadModelFile_NegativeValue_ConfigError(t *testing.T) {
	cfg := sim.NewHierarchyConfig(4, 1)
	path := writeModel(t, "energy:\n  dram_active_energy: -4\n")

	err := LoadModelFile(path, &cfg)

	var cfgErr *sim.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "dram_active_energy", cfgErr.Field)
	assert.Equal(t, 4.0, cfg.Energy.DRAMActiveEnergy)
}

func TestLoadModelFile_Missing_ResourceError(t *testing.T) {
	cfg := sim.NewHierarchyConfig(4, 1)
	err := LoadModelFile(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	var resErr *sim.ResourceError
	assert.True(t, errors.As(err, &resErr))
}

func TestLoadModelFile_Empty_KeepsDefaults(t *testing.T) {
	cfg := sim.NewHierarchyConfig(4, 1)
	require.NoError(t, LoadModelFile(writeModel(t, ""), &cfg))
	assert.Equal(t, sim.DefaultTimingModel(), cfg.Timing)
	assert.Equal(t, sim.DefaultEnergyModel(), cfg.Energy)
}
