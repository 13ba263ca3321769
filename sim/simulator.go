// sim/simulator.go
package sim

import (
	"encoding/binary"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/cachesim/cachesim/sim/trace"
)

// Simulator owns every piece of hierarchy state: the three cache arrays, the
// DRAM backing store, the counters and the clock. Operations run to
// completion one at a time; it is not safe for concurrent use.
type Simulator struct {
	Config  HierarchyConfig
	L1I     *DirectMappedCache
	L1D     *DirectMappedCache
	L2      *SetAssociativeCache
	DRAM    *DRAM
	Metrics *Metrics

	replacement *rand.Rand
	recorder    trace.Recorder
	seq         uint64
}

// NewSimulator validates cfg and builds an empty hierarchy.
func NewSimulator(cfg HierarchyConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s := &Simulator{
		Config:      cfg,
		L1I:         NewDirectMappedCache("L1I", L1ICacheSize),
		L1D:         NewDirectMappedCache("L1D", L1DCacheSize),
		L2:          NewSetAssociativeCache("L2", L2CacheSize, cfg.Associativity),
		DRAM:        NewDRAM(rng.ForSubsystem(SubsystemDRAM)),
		Metrics:     NewMetrics(),
		replacement: rng.ForSubsystem(SubsystemReplacement),
	}
	logrus.Debugf("hierarchy: L1I %d blocks, L1D %d blocks, L2 %d sets x %d ways, seed %d",
		s.L1I.NumBlocks(), s.L1D.NumBlocks(), s.L2.NumSets(), s.L2.Ways, cfg.Seed)
	return s, nil
}

// SetRecorder attaches r to receive one AccessRecord per level event. nil disables recording.
func (s *Simulator) SetRecorder(r trace.Recorder) {
	s.recorder = r
}

// Snapshot returns a copy of the counters for reporting.
func (s *Simulator) Snapshot() Metrics {
	return *s.Metrics
}

// === Trace entry points ===

// InstructionFetch replays an instruction-fetch record.
func (s *Simulator) InstructionFetch(address uint64) Block {
	return s.readL1I(address)
}

// MemoryRead replays a data-read record.
func (s *Simulator) MemoryRead(address uint64) Block {
	return s.readL1D(address)
}

// MemoryWrite replays a data-write record. value is placed at its
// 8-byte-aligned offset inside an otherwise zero block.
func (s *Simulator) MemoryWrite(address uint64, value uint64) {
	var blk Block
	offset := (address % BlockSize) &^ 7
	binary.LittleEndian.PutUint64(blk[offset:], value)
	s.writeL1D(address, blk)
}

// Ignore replays a no-op record: one idle tick on every level.
func (s *Simulator) Ignore() {
	s.idle()
	s.record("", trace.KindIgnore, 0, true)
}

// Flush invalidates all three caches without write-back, then idles one tick.
func (s *Simulator) Flush() {
	s.L1I.Reset()
	s.L1D.Reset()
	s.L2.Reset()
	s.idle()
	logrus.Debugf("[clock %.2fns] caches flushed", s.Metrics.Clock)
	s.record("", trace.KindFlush, 0, true)
}

func (s *Simulator) idle() {
	s.Metrics.chargeIdle(s.Config.Energy)
	s.Metrics.Clock += s.Config.Timing.IdleCycleNs
}

// === L1 ===

func (s *Simulator) readL1I(address uint64) Block {
	s.access(LevelL1I, s.Config.Timing.L1AccessNs)

	index, tag, hit := s.L1I.Lookup(address)
	s.count(LevelL1I, trace.KindRead, address, hit)
	if hit {
		return s.L1I.Slot(index).Data
	}

	// Instruction lines are never dirty, so the slot is overwritten without write-back.
	data := s.readL2(address)
	s.L1I.Install(index, tag, data, false)
	return data
}

func (s *Simulator) readL1D(address uint64) Block {
	s.access(LevelL1D, s.Config.Timing.L1AccessNs)

	index, tag, hit := s.L1D.Lookup(address)
	s.count(LevelL1D, trace.KindRead, address, hit)
	if hit {
		return s.L1D.Slot(index).Data
	}

	data := s.readL2(address)
	s.L1D.Install(index, tag, data, false)
	return data
}

func (s *Simulator) writeL1D(address uint64, data Block) {
	s.access(LevelL1D, s.Config.Timing.L1AccessNs)

	index, tag, hit := s.L1D.Lookup(address)
	s.count(LevelL1D, trace.KindWrite, address, hit)
	if hit {
		resident := s.L1D.Slot(index)
		if resident.Dirty {
			s.writeL2(s.L1D.Geometry.Encode(index, resident.Tag), resident.Data)
		}
	} else {
		s.Metrics.Clock += s.Config.Timing.L2AccessNs
	}

	s.L1D.Install(index, tag, data, true)
}

// === L2 ===

func (s *Simulator) readL2(address uint64) Block {
	s.access(LevelL2, s.Config.Timing.L2AccessNs)

	set, tag := s.L2.Geometry.Decode(address)
	way := s.L2.Find(set, tag)
	s.count(LevelL2, trace.KindRead, address, way >= 0)
	if way >= 0 {
		return s.L2.Slot(set, way).Data
	}

	data := s.readDRAM(address)
	way = s.evict(set)
	s.L2.Install(set, way, tag, data, false)
	return data
}

func (s *Simulator) writeL2(address uint64, data Block) {
	s.access(LevelL2, s.Config.Timing.L2AccessNs)

	set, tag := s.L2.Geometry.Decode(address)
	way := s.L2.Find(set, tag)
	s.count(LevelL2, trace.KindWriteback, address, way >= 0)
	if way < 0 {
		way = s.evict(set)
	}
	s.L2.Install(set, way, tag, data, true)
}

// evict picks the way of set to overwrite and writes it back to DRAM if dirty.
// Invalid ways are filled first; a full set loses a uniformly random way.
func (s *Simulator) evict(set uint64) int {
	way := s.L2.FirstInvalid(set)
	if way >= 0 {
		return way
	}
	way = s.replacement.Intn(s.L2.Ways)
	victim := s.L2.Slot(set, way)
	victimAddr := s.L2.Geometry.Encode(set, victim.Tag)
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("[clock %.2fns] L2 evict set=%d way=%d addr=%#x dirty=%v",
			s.Metrics.Clock, set, way, victimAddr, victim.Dirty)
	}
	if victim.Dirty {
		s.writeDRAM(victimAddr, victim.Data)
	}
	return way
}

// === DRAM ===

func (s *Simulator) readDRAM(address uint64) Block {
	s.access(LevelDRAM, s.Config.Timing.DRAMAccessNs)
	s.count(LevelDRAM, trace.KindRead, address, true)
	return s.DRAM.Read(address)
}

// writeDRAM charges DRAMWritebackNs, which is 0 by default: the requester
// does not wait for the write-back to complete.
func (s *Simulator) writeDRAM(address uint64, data Block) {
	s.access(LevelDRAM, s.Config.Timing.DRAMWritebackNs)
	s.count(LevelDRAM, trace.KindWriteback, address, true)
	s.DRAM.Write(address, data)
}

// === Accounting ===

// access charges one activation of level: its latency and energy, plus idle
// energy for the three units not involved.
func (s *Simulator) access(level Level, latencyNs float64) {
	s.Metrics.chargeActive(level, s.Config.Energy)
	s.Metrics.Clock += latencyNs
}

func (s *Simulator) count(level Level, kind trace.Kind, address uint64, hit bool) {
	if hit {
		s.Metrics.Levels[level].Hits++
	} else {
		s.Metrics.Levels[level].Misses++
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		outcome := "miss"
		if hit {
			outcome = "hit"
		}
		logrus.Debugf("[clock %.2fns] %s %s %s addr=%#x", s.Metrics.Clock, level, kind, outcome, address)
	}
	s.record(level.String(), kind, address, hit)
}

func (s *Simulator) record(level string, kind trace.Kind, address uint64, hit bool) {
	if s.recorder == nil {
		return
	}
	s.seq++
	s.recorder.Record(trace.AccessRecord{
		Seq:     s.seq,
		Clock:   s.Metrics.Clock,
		Level:   level,
		Kind:    kind,
		Address: address,
		Hit:     hit,
	})
}
