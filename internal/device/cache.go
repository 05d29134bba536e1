package device

import (
	"sync"

	"github.com/0x09/go-hfsplus/internal/interfaces"
)

// CachingDevice wraps a BlockDevice with a last-N small-block read cache
// and bounded read-ahead, mirroring ublio's up_items/up_grace knobs from
// the original C driver (HAVE_UBLIO in hfsuser.c). Reads are serialized
// by a single mutex: the coalescer's correctness contract is that
// ReadAt observes a byte-for-byte view of the underlying device, which a
// stale or partially-filled cache entry would violate.
type CachingDevice struct {
	mu     sync.Mutex
	dev    interfaces.BlockDevice
	cfg    Config
	blocks map[int64][]byte // keyed by block-aligned offset
	order  []int64          // LRU order, oldest first
	hits   uint64
	misses uint64
}

// NewCachingDevice wraps dev with a cache if cfg.CacheEnabled, otherwise
// returns dev unchanged so callers always get an interfaces.BlockDevice.
func NewCachingDevice(dev interfaces.BlockDevice, cfg Config) interfaces.BlockDevice {
	if !cfg.CacheEnabled || cfg.SmallItems <= 0 {
		return dev
	}
	return &CachingDevice{
		dev:    dev,
		cfg:    cfg,
		blocks: make(map[int64][]byte, cfg.SmallItems),
	}
}

func (c *CachingDevice) blockSize() int64 { return int64(c.dev.IOBlockSize()) }

// ReadAt serves small, block-aligned reads from the cache (filling and
// read-ahead on miss) and passes everything else straight through,
// matching the "small-item" framing in spec §4.1: the cache accelerates
// repeated small reads (B-tree nodes, catalog lookups) without claiming
// to help large sequential fork reads.
func (c *CachingDevice) ReadAt(buf []byte, offset int64) error {
	bs := c.blockSize()
	if bs <= 0 || int64(len(buf)) > bs || offset%bs != 0 {
		return c.dev.ReadAt(buf, offset)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if block, ok := c.blocks[offset]; ok {
		c.hits++
		c.touch(offset)
		copy(buf, block)
		return nil
	}

	c.misses++
	block := make([]byte, bs)
	if err := c.dev.ReadAt(block, offset); err != nil {
		return err
	}
	c.insert(offset, block)
	copy(buf, block[:len(buf)])

	for g := int64(1); g <= int64(c.cfg.GraceBlocks); g++ {
		ahead := offset + g*bs
		if _, ok := c.blocks[ahead]; ok {
			continue
		}
		readAhead := make([]byte, bs)
		if err := c.dev.ReadAt(readAhead, ahead); err != nil {
			break
		}
		c.insert(ahead, readAhead)
	}

	return nil
}

func (c *CachingDevice) touch(offset int64) {
	for i, o := range c.order {
		if o == offset {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, offset)
}

func (c *CachingDevice) insert(offset int64, block []byte) {
	if _, exists := c.blocks[offset]; exists {
		c.touch(offset)
		c.blocks[offset] = block
		return
	}
	for len(c.blocks) >= c.cfg.SmallItems && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.blocks, oldest)
	}
	c.blocks[offset] = block
	c.order = append(c.order, offset)
}

func (c *CachingDevice) Stats() interfaces.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return interfaces.CacheStats{Hits: c.hits, Misses: c.misses, Items: len(c.blocks)}
}

func (c *CachingDevice) IOBlockSize() uint32 { return c.dev.IOBlockSize() }
func (c *CachingDevice) Size() int64         { return c.dev.Size() }
func (c *CachingDevice) Close() error        { return c.dev.Close() }
