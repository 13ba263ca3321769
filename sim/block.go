// sim/block.go
package sim

import "math"

// InvalidTag is stored in every slot that does not hold a block.
const InvalidTag = math.MaxUint64

// Block is one cache block of payload. It is an array, so assigning or
// returning it copies the bytes; callers never alias a cache slot.
type Block [BlockSize]byte

// CacheBlock is one slot of a cache array.
type CacheBlock struct {
	Valid bool
	Dirty bool
	Tag   uint64 // meaningful only when Valid
	Data  Block
}

func emptyCacheBlock() CacheBlock {
	return CacheBlock{Tag: InvalidTag}
}

// DirectMappedCache is an array of NumBlocks slots indexed by (address / BlockSize) mod NumBlocks.
// Used for both L1 caches.
type DirectMappedCache struct {
	Name     string
	Geometry Geometry
	blocks   []CacheBlock
}

// NewDirectMappedCache returns an empty cache of capacity bytes.
func NewDirectMappedCache(name string, capacity int) *DirectMappedCache {
	numBlocks := capacity / BlockSize
	c := &DirectMappedCache{
		Name:     name,
		Geometry: Geometry{BlockSize: BlockSize, Slots: uint64(numBlocks)},
		blocks:   make([]CacheBlock, numBlocks),
	}
	c.Reset()
	return c
}

// Lookup decodes address and reports whether the slot holds that block.
func (c *DirectMappedCache) Lookup(address uint64) (index uint64, tag uint64, hit bool) {
	index, tag = c.Geometry.Decode(address)
	slot := &c.blocks[index]
	return index, tag, slot.Valid && slot.Tag == tag
}

// Slot returns a copy of the slot at index.
func (c *DirectMappedCache) Slot(index uint64) CacheBlock {
	return c.blocks[index]
}

// Install overwrites the slot at index with a valid block.
func (c *DirectMappedCache) Install(index, tag uint64, data Block, dirty bool) {
	c.blocks[index] = CacheBlock{Valid: true, Dirty: dirty, Tag: tag, Data: data}
}

// Reset invalidates every slot without writing anything back.
func (c *DirectMappedCache) Reset() {
	for i := range c.blocks {
		c.blocks[i] = emptyCacheBlock()
	}
}

// NumBlocks returns the slot count.
func (c *DirectMappedCache) NumBlocks() int {
	return len(c.blocks)
}

// ValidCount returns the number of valid slots.
func (c *DirectMappedCache) ValidCount() int {
	n := 0
	for i := range c.blocks {
		if c.blocks[i].Valid {
			n++
		}
	}
	return n
}

// SetAssociativeCache is NumSets sets of Ways slots each. Used for L2.
// Within a set no two valid ways share a tag.
type SetAssociativeCache struct {
	Name     string
	Geometry Geometry
	Ways     int
	sets     [][]CacheBlock
}

// NewSetAssociativeCache returns an empty cache of capacity bytes split into ways-wide sets.
func NewSetAssociativeCache(name string, capacity int, ways int) *SetAssociativeCache {
	numSets := capacity / BlockSize / ways
	c := &SetAssociativeCache{
		Name:     name,
		Geometry: Geometry{BlockSize: BlockSize, Slots: uint64(numSets)},
		Ways:     ways,
		sets:     make([][]CacheBlock, numSets),
	}
	for i := range c.sets {
		c.sets[i] = make([]CacheBlock, ways)
	}
	c.Reset()
	return c
}

// Find scans set for a valid way holding tag. Returns -1 when absent.
func (c *SetAssociativeCache) Find(set, tag uint64) int {
	for way, blk := range c.sets[set] {
		if blk.Valid && blk.Tag == tag {
			return way
		}
	}
	return -1
}

// FirstInvalid returns the lowest invalid way of set, or -1 if the set is full.
func (c *SetAssociativeCache) FirstInvalid(set uint64) int {
	for way, blk := range c.sets[set] {
		if !blk.Valid {
			return way
		}
	}
	return -1
}

// Slot returns a copy of one way.
func (c *SetAssociativeCache) Slot(set uint64, way int) CacheBlock {
	return c.sets[set][way]
}

// Install overwrites one way with a valid block.
func (c *SetAssociativeCache) Install(set uint64, way int, tag uint64, data Block, dirty bool) {
	c.sets[set][way] = CacheBlock{Valid: true, Dirty: dirty, Tag: tag, Data: data}
}

// Reset invalidates every way without writing anything back.
func (c *SetAssociativeCache) Reset() {
	for s := range c.sets {
		for w := range c.sets[s] {
			c.sets[s][w] = emptyCacheBlock()
		}
	}
}

// NumSets returns the set count.
func (c *SetAssociativeCache) NumSets() int {
	return len(c.sets)
}

// ValidWays returns the number of valid ways in set.
func (c *SetAssociativeCache) ValidWays(set uint64) int {
	n := 0
	for _, blk := range c.sets[set] {
		if blk.Valid {
			n++
		}
	}
	return n
}
