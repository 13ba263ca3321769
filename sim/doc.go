// Package sim provides the cache hierarchy simulation engine.
//
// # Reading Guide
//
// Start with these files:
//   - address.go: Decode/Encode between byte addresses and (slot, tag)
//   - block.go: CacheBlock plus the direct-mapped (L1) and set-associative (L2) arrays
//   - simulator.go: the five trace entry points and the per-level lookup,
//     replacement and write-back logic
//
// # Architecture
//
// A Simulator owns all state: L1 instruction and data caches (direct-mapped),
// a unified set-associative L2, a DRAM backing store that always hits, and a
// Metrics aggregate holding hit/miss counts, dynamic and static energy per
// level and the simulated clock in nanoseconds. Every level activation charges
// its latency and active energy, and idle energy to the three other units.
//
// L2 victims are chosen uniformly at random once a set is full, from a
// PartitionedRNG stream seeded by HierarchyConfig.Seed, so a fixed seed
// replays identically.
//
// Sub-packages:
//   - sim/workload/: trace parsing, replay dispatch and synthetic traces
//   - sim/trace/: per-access event recording with CSV and SQLite sinks
package sim
