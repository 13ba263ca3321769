package workload

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cachesim/cachesim/sim"
)

// GenerateSpec describes a synthetic trace.
// Fractions are relative weights; they need not sum to 1.
type GenerateSpec struct {
	Seed       int64   `yaml:"seed"`
	Records    int     `yaml:"records"`
	CodeBase   uint64  `yaml:"code_base"`
	CodeBytes  uint64  `yaml:"code_bytes"`
	DataBase   uint64  `yaml:"data_base"`
	DataBytes  uint64  `yaml:"data_bytes"`
	Read       float64 `yaml:"read"`
	Write      float64 `yaml:"write"`
	Fetch      float64 `yaml:"fetch"`
	Ignore     float64 `yaml:"ignore"`
	Flush      float64 `yaml:"flush"`
	Sequential float64 `yaml:"sequential"` // probability a fetch continues at the next 4-byte word
}

// DefaultGenerateSpec returns a fetch-heavy mix over a 64 KiB code region and a 1 MiB data region.
func DefaultGenerateSpec() GenerateSpec {
	return GenerateSpec{
		Seed:       42,
		Records:    10000,
		CodeBase:   0x400000,
		CodeBytes:  64 << 10,
		DataBase:   0x10000000,
		DataBytes:  1 << 20,
		Read:       0.3,
		Write:      0.15,
		Fetch:      0.5,
		Ignore:     0.05,
		Sequential: 0.9,
	}
}

// LoadGenerateSpec reads a YAML spec on top of DefaultGenerateSpec.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGenerateSpec(path string) (*GenerateSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generate spec: %w", err)
	}
	spec := DefaultGenerateSpec()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing generate spec: %w", err)
	}
	return &spec, nil
}

// Validate checks sizes and weights.
func (s *GenerateSpec) Validate() error {
	if s.Records < 0 {
		return fmt.Errorf("records must be >= 0, got %d", s.Records)
	}
	if s.CodeBytes < 4 || s.DataBytes < 8 {
		return fmt.Errorf("code_bytes must be >= 4 and data_bytes >= 8, got %d and %d", s.CodeBytes, s.DataBytes)
	}
	weights := s.weights()
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("operation weights must be >= 0, got %v", weights)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("at least one operation weight must be positive")
	}
	if s.Sequential < 0 || s.Sequential > 1 {
		return fmt.Errorf("sequential must be in [0, 1], got %f", s.Sequential)
	}
	return nil
}

func (s *GenerateSpec) weights() []float64 {
	// Indexed by Opcode.
	return []float64{s.Read, s.Write, s.Fetch, s.Ignore, s.Flush}
}

// Generate produces spec.Records records. Deterministic given the same spec.
func Generate(spec *GenerateSpec) ([]Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate spec: %w", err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemWorkload)

	weights := spec.weights()
	total := 0.0
	for _, w := range weights {
		total += w
	}

	records := make([]Record, 0, spec.Records)
	pc := spec.CodeBase
	for i := 0; i < spec.Records; i++ {
		op := pickOpcode(rng, weights, total)
		rec := Record{Op: op}
		switch op {
		case OpInstructionFetch:
			if rng.Float64() < spec.Sequential {
				pc += 4
				if pc >= spec.CodeBase+spec.CodeBytes {
					pc = spec.CodeBase
				}
			} else {
				pc = spec.CodeBase + uint64(rng.Int63n(int64(spec.CodeBytes/4)))*4
			}
			rec.Address = pc
		case OpMemoryRead, OpMemoryWrite:
			rec.Address = spec.DataBase + uint64(rng.Int63n(int64(spec.DataBytes/8)))*8
		}
		records = append(records, rec)
	}
	return records, nil
}

func pickOpcode(rng *rand.Rand, weights []float64, total float64) Opcode {
	x := rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return Opcode(i)
		}
		x -= w
	}
	// Float rounding: fall back to the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return Opcode(i)
		}
	}
	return OpIgnore
}

// WriteTrace writes records in trace-file syntax, one per line.
func WriteTrace(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := fmt.Fprintln(bw, r.String()); err != nil {
			return fmt.Errorf("writing trace record: %w", err)
		}
	}
	return bw.Flush()
}
