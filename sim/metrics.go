// Tracks per-level hit/miss counts, dynamic and static energy, and the simulated clock.

package sim

import (
	"fmt"
	"io"
)

// Level identifies one component of the hierarchy.
type Level int

const (
	LevelL1I Level = iota
	LevelL1D
	LevelL2
	LevelDRAM
	numLevels
)

// Levels lists every component in report order.
var Levels = []Level{LevelL1I, LevelL1D, LevelL2, LevelDRAM}

func (l Level) String() string {
	switch l {
	case LevelL1I:
		return "L1I"
	case LevelL1D:
		return "L1D"
	case LevelL2:
		return "L2"
	case LevelDRAM:
		return "DRAM"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// LevelStats holds the counters of one component. DRAM always hits, so its
// Hits field counts every DRAM access and Misses stays zero.
type LevelStats struct {
	Hits          uint64
	Misses        uint64
	DynamicEnergy float64 // active read/write energy
	StaticEnergy  float64 // idle energy charged while another unit was busy
}

// Accesses returns hits plus misses.
func (s LevelStats) Accesses() uint64 {
	return s.Hits + s.Misses
}

// Metrics aggregates every counter the simulator mutates. All fields are
// monotonically non-decreasing over a run.
type Metrics struct {
	Levels [numLevels]LevelStats
	Clock  float64 // simulated nanoseconds
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Level returns a copy of the counters for l.
func (m *Metrics) Level(l Level) LevelStats {
	return m.Levels[l]
}

// TotalDynamicEnergy sums dynamic energy across all levels.
func (m *Metrics) TotalDynamicEnergy() float64 {
	total := 0.0
	for _, s := range m.Levels {
		total += s.DynamicEnergy
	}
	return total
}

// TotalStaticEnergy sums static energy across all levels.
func (m *Metrics) TotalStaticEnergy() float64 {
	total := 0.0
	for _, s := range m.Levels {
		total += s.StaticEnergy
	}
	return total
}

// chargeActive adds active energy to the busy level and idle energy to the other three.
func (m *Metrics) chargeActive(busy Level, e EnergyModel) {
	for _, l := range Levels {
		if l == busy {
			m.Levels[l].DynamicEnergy += e.active(l)
		} else {
			m.Levels[l].StaticEnergy += e.idle(l)
		}
	}
}

// chargeIdle adds one idle tick to every level.
func (m *Metrics) chargeIdle(e EnergyModel) {
	for _, l := range Levels {
		m.Levels[l].StaticEnergy += e.idle(l)
	}
}

func (e EnergyModel) active(l Level) float64 {
	switch l {
	case LevelL1I, LevelL1D:
		return e.L1ActiveEnergy
	case LevelL2:
		return e.L2ActiveEnergy
	default:
		return e.DRAMActiveEnergy
	}
}

func (e EnergyModel) idle(l Level) float64 {
	switch l {
	case LevelL1I, LevelL1D:
		return e.L1IdleEnergy
	case LevelL2:
		return e.L2IdleEnergy
	default:
		return e.DRAMIdleEnergy
	}
}

// Print writes the end-of-run report: totals first, then one table per level.
func (m *Metrics) Print(w io.Writer, associativity int) {
	const (
		header = "Component | # Hits      | # Misses    | Dyn. Energy | Static Energy (pJ)\n"
		rule   = "----------|-------------|-------------|-------------|-------------------\n"
	)
	row := func(name string, s LevelStats, misses string) {
		fmt.Fprintf(w, "%-9s | %-9d   | %-11s | %-11.2f | %-9.2f\n", name, s.Hits, misses, s.DynamicEnergy, s.StaticEnergy)
	}

	fmt.Fprintf(w, "\nStatistics:\n")
	fmt.Fprintf(w, "Set Associativity: %d\n\n", associativity)

	fmt.Fprintf(w, "Total Access Time and Energy:\n")
	fmt.Fprintf(w, "Total Access Time (ns) | Total Dynamic Energy | Total Static Energy (pJ)\n")
	fmt.Fprintf(w, "-----------------------|----------------------|-------------------------\n")
	fmt.Fprintf(w, "%-22.2f | %-20f | %f\n\n", m.Clock, m.TotalDynamicEnergy(), m.TotalStaticEnergy())

	fmt.Fprintf(w, "L1 Cache Statistics:\n")
	fmt.Fprint(w, header, rule)
	row("L1 icache", m.Levels[LevelL1I], fmt.Sprint(m.Levels[LevelL1I].Misses))
	row("L1 dcache", m.Levels[LevelL1D], fmt.Sprint(m.Levels[LevelL1D].Misses))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "L2 Cache Statistics:\n")
	fmt.Fprint(w, header, rule)
	row("L2", m.Levels[LevelL2], fmt.Sprint(m.Levels[LevelL2].Misses))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "DRAM Statistics:\n")
	fmt.Fprint(w, header, rule)
	row("DRAM", m.Levels[LevelDRAM], "N/A")
	fmt.Fprintln(w)
}
