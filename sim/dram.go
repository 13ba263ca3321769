package sim

import "math/rand"

// DRAM is the terminal backing store. It always hits.
// Blocks that were written back are kept sparsely by aligned address;
// every other read returns synthetic bytes drawn from rng.
type DRAM struct {
	geometry Geometry
	store    map[uint64]Block
	rng      *rand.Rand
}

// NewDRAM creates an empty backing store drawing synthetic data from rng.
func NewDRAM(rng *rand.Rand) *DRAM {
	return &DRAM{
		geometry: Geometry{BlockSize: BlockSize, Slots: 1},
		store:    make(map[uint64]Block),
		rng:      rng,
	}
}

// Read returns the full block containing address.
func (d *DRAM) Read(address uint64) Block {
	if blk, ok := d.store[d.geometry.Align(address)]; ok {
		return blk
	}
	var blk Block
	_, _ = d.rng.Read(blk[:])
	return blk
}

// Write stores blk at the block containing address.
func (d *DRAM) Write(address uint64, blk Block) {
	d.store[d.geometry.Align(address)] = blk
}

// Resident returns the number of blocks that have been written back.
func (d *DRAM) Resident() int {
	return len(d.store)
}
