package workload

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cachesim/cachesim/sim"
)

// Engine is the set of entry points a trace dispatches to.
// *sim.Simulator implements it.
type Engine interface {
	InstructionFetch(address uint64) sim.Block
	MemoryRead(address uint64) sim.Block
	MemoryWrite(address uint64, value uint64)
	Ignore()
	Flush()
}

// Dispatch sends one record to the matching engine entry point.
func Dispatch(eng Engine, rec Record) {
	switch rec.Op {
	case OpMemoryRead:
		eng.MemoryRead(rec.Address)
	case OpMemoryWrite:
		eng.MemoryWrite(rec.Address, rec.Value)
	case OpInstructionFetch:
		eng.InstructionFetch(rec.Address)
	case OpIgnore:
		eng.Ignore()
	case OpFlush:
		eng.Flush()
	}
}

// Replay streams r into eng and returns the number of records dispatched.
// A malformed line stops replay before it is dispatched, so the engine holds
// exactly the state produced by the preceding records.
func Replay(r io.Reader, eng Engine) (int, error) {
	reader := NewReader(r)
	n := 0
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			logrus.Debugf("replayed %d records from %d lines", n, reader.Line())
			return n, nil
		}
		if err != nil {
			return n, err
		}
		Dispatch(eng, rec)
		n++
	}
}

// ReplayFile opens path and replays it into eng.
func ReplayFile(path string, eng Engine) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &sim.ResourceError{Resource: fmt.Sprintf("trace file %s", path), Err: err}
	}
	defer func() { _ = file.Close() }()
	return Replay(file, eng)
}
