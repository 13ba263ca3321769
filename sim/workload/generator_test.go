package workload

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DeterministicForSeed(t *testing.T) {
	spec := DefaultGenerateSpec()
	spec.Records = 500

	r1, err := Generate(&spec)
	require.NoError(t, err)
	r2, err := Generate(&spec)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	spec.Seed = 43
	r3, err := Generate(&spec)
	require.NoError(t, err)
	assert.NotEqual(t, r1, r3)
}

func TestGenerate_RecordsStayInRegions(t *testing.T) {
	spec := DefaultGenerateSpec()
	spec.Records = 2000
	records, err := Generate(&spec)
	require.NoError(t, err)
	require.Len(t, records, 2000)

	for _, r := range records {
		switch r.Op {
		case OpInstructionFetch:
			assert.GreaterOrEqual(t, r.Address, spec.CodeBase)
			assert.Less(t, r.Address, spec.CodeBase+spec.CodeBytes)
		case OpMemoryRead, OpMemoryWrite:
			assert.GreaterOrEqual(t, r.Address, spec.DataBase)
			assert.Less(t, r.Address, spec.DataBase+spec.DataBytes)
		default:
			assert.Equal(t, uint64(0), r.Address)
		}
		assert.Equal(t, uint64(0), r.Value)
	}
}

func TestGenerate_OnlyPositiveWeightsAppear(t *testing.T) {
	spec := DefaultGenerateSpec()
	spec.Records = 300
	spec.Read, spec.Write, spec.Ignore, spec.Flush = 0, 0, 0, 0
	spec.Fetch = 1

	records, err := Generate(&spec)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, OpInstructionFetch, r.Op)
	}
}

func TestGenerateSpec_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenerateSpec)
	}{
		{"negative records", func(s *GenerateSpec) { s.Records = -1 }},
		{"tiny code region", func(s *GenerateSpec) { s.CodeBytes = 2 }},
		{"negative weight", func(s *GenerateSpec) { s.Read = -1 }},
		{"all weights zero", func(s *GenerateSpec) { s.Read, s.Write, s.Fetch, s.Ignore, s.Flush = 0, 0, 0, 0, 0 }},
		{"sequential above one", func(s *GenerateSpec) { s.Sequential = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultGenerateSpec()
			tt.mutate(&spec)
			assert.Error(t, spec.Validate())
			_, err := Generate(&spec)
			assert.Error(t, err)
		})
	}
}

func TestLoadGenerateSpec_StrictAndDefaulted(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("records: 12\nflush: 0.5\n"), 0644))

	spec, err := LoadGenerateSpec(good)
	require.NoError(t, err)
	assert.Equal(t, 12, spec.Records)
	assert.Equal(t, 0.5, spec.Flush)
	assert.Equal(t, DefaultGenerateSpec().CodeBase, spec.CodeBase)

	typo := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte("recrods: 12\n"), 0644))
	_, err = LoadGenerateSpec(typo)
	assert.Error(t, err)
}

func TestWriteTrace_ReplaysThroughReadAll(t *testing.T) {
	spec := DefaultGenerateSpec()
	spec.Records = 100
	spec.Flush = 0.1
	records, err := Generate(&spec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTrace(&buf, records))

	parsed, err := ReadAll(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, parsed)
}
