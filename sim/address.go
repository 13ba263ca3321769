package sim

// Decode splits a byte address into the slot (L1 index or L2 set) and tag
// for a cache with the given block size and slot count.
// Addresses inside the same block always decode to the same pair.
func Decode(address, blockSize, slots uint64) (index uint64, tag uint64) {
	blockAddr := address / blockSize
	return blockAddr % slots, address / (blockSize * slots)
}

// Encode is the inverse of Decode up to block granularity: it returns the
// block-aligned address that holds (index, tag).
func Encode(index, tag, blockSize, slots uint64) uint64 {
	return (tag*slots + index) * blockSize
}

// Geometry describes how one cache maps addresses onto its slots.
type Geometry struct {
	BlockSize uint64
	Slots     uint64 // blocks for a direct-mapped cache, sets for a set-associative one
}

// Decode applies the package-level Decode with this geometry.
func (g Geometry) Decode(address uint64) (uint64, uint64) {
	return Decode(address, g.BlockSize, g.Slots)
}

// Encode applies the package-level Encode with this geometry.
func (g Geometry) Encode(index, tag uint64) uint64 {
	return Encode(index, tag, g.BlockSize, g.Slots)
}

// Align rounds address down to the start of its block.
func (g Geometry) Align(address uint64) uint64 {
	return address - address%g.BlockSize
}
