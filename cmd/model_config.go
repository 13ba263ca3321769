package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cachesim/cachesim/sim"
)

// ModelFile is the YAML structure accepted by --model.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ModelFile struct {
	Timing sim.TimingModel `yaml:"timing"`
	Energy sim.EnergyModel `yaml:"energy"`
}

// LoadModelFile overrides cfg's timing and energy with the fields present in path.
// Fields the file omits keep their current values. Unknown keys are rejected.
func LoadModelFile(path string, cfg *sim.HierarchyConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &sim.ResourceError{Resource: fmt.Sprintf("model file %s", path), Err: err}
	}

	mf := ModelFile{Timing: cfg.Timing, Energy: cfg.Energy}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&mf); err != nil && err != io.EOF {
		return &sim.ConfigError{Field: "model file", Reason: err.Error()}
	}

	updated := *cfg
	updated.Timing = mf.Timing
	updated.Energy = mf.Energy
	if err := updated.Validate(); err != nil {
		return err
	}
	*cfg = updated
	return nil
}
