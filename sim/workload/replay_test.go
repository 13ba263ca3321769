package workload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/cachesim/sim"
)

// recordingEngine remembers every call in order.
type recordingEngine struct {
	calls []string
}

func (e *recordingEngine) InstructionFetch(address uint64) sim.Block {
	e.calls = append(e.calls, "fetch")
	return sim.Block{}
}

func (e *recordingEngine) MemoryRead(address uint64) sim.Block {
	e.calls = append(e.calls, "read")
	return sim.Block{}
}

func (e *recordingEngine) MemoryWrite(address uint64, value uint64) {
	e.calls = append(e.calls, "write")
}

func (e *recordingEngine) Ignore() { e.calls = append(e.calls, "ignore") }

func (e *recordingEngine) Flush() { e.calls = append(e.calls, "flush") }

func TestReplay_DispatchesEveryOpcode(t *testing.T) {
	input := "0 1000 0\n1 1000 0\n\n2 400000 0\n3 0 0\n4 0 0\n"
	eng := &recordingEngine{}

	n, err := Replay(strings.NewReader(input), eng)

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"read", "write", "fetch", "ignore", "flush"}, eng.calls)
}

func TestReplay_InvalidOpcode_StopsBeforeDispatch(t *testing.T) {
	// GIVEN a trace whose third line is malformed
	input := "0 1000 0\n0 1000 0\n9 0 0\n0 2000 0\n"
	s, err := sim.NewSimulator(sim.NewHierarchyConfig(4, 1))
	require.NoError(t, err)

	// WHEN it is replayed
	n, err := Replay(strings.NewReader(input), s)

	// THEN replay fails on line 3 with the offending text
	var traceErr *sim.TraceFormatError
	require.True(t, errors.As(err, &traceErr), "want *sim.TraceFormatError, got %v", err)
	assert.Equal(t, 3, traceErr.Line)
	assert.Equal(t, "9 0 0", traceErr.Raw)
	assert.Equal(t, 2, n)

	// AND the counters reflect only the two preceding reads
	m := s.Snapshot()
	assert.Equal(t, uint64(1), m.Levels[sim.LevelL1D].Misses)
	assert.Equal(t, uint64(1), m.Levels[sim.LevelL1D].Hits)
	assert.InDelta(t, 56.0, m.Clock, 1e-9)
}

func TestReplayFile_MissingFile_ResourceError(t *testing.T) {
	_, err := ReplayFile(filepath.Join(t.TempDir(), "missing.din"), &recordingEngine{})
	var resErr *sim.ResourceError
	assert.True(t, errors.As(err, &resErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadAll_ReportsLineNumbers(t *testing.T) {
	records, err := ReadAll(strings.NewReader("3 0 0\n\n0 10 5\n"))
	assert.Len(t, records, 1)
	var traceErr *sim.TraceFormatError
	require.True(t, errors.As(err, &traceErr))
	assert.Equal(t, 3, traceErr.Line)
}
