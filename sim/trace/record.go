// Package trace provides per-access event recording for cache hierarchy runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Kind classifies one recorded event.
type Kind string

const (
	KindRead      Kind = "read"
	KindWrite     Kind = "write"
	KindWriteback Kind = "writeback" // dirty victim pushed to the next level
	KindIgnore    Kind = "ignore"
	KindFlush     Kind = "flush"
)

// AccessRecord captures one event at one level of the hierarchy.
type AccessRecord struct {
	Seq     uint64  // monotonically increasing per run
	Clock   float64 // simulated ns after the event was charged
	Level   string  // "L1I", "L1D", "L2", "DRAM"; empty for ignore/flush
	Kind    Kind
	Address uint64
	Hit     bool
}
