// Package endian decodes the big-endian fixed-layout records HFS+ stores
// on disk. Every struct in internal/types that has a Decode* counterpart
// here is read via this cursor rather than ad-hoc byte-swapping at each
// call site, so the on-disk layout is expressed once per record.
package endian

import (
	"encoding/binary"
	"fmt"

	"github.com/0x09/go-hfsplus/internal/types"
)

// Cursor reads big-endian fixed-width fields from a byte slice,
// advancing an internal offset and failing closed: any read that would
// run past the end of buf returns types.KindCorrupt rather than
// panicking or silently truncating.
type Cursor struct {
	buf []byte
	off int
	op  string
}

// NewCursor wraps buf for sequential big-endian decoding. op is used to
// label any *types.Error this cursor returns.
func NewCursor(buf []byte, op string) *Cursor {
	return &Cursor{buf: buf, op: op}
}

// Offset returns the cursor's current read position.
func (c *Cursor) Offset() int { return c.off }

// Seek repositions the cursor to an absolute offset.
func (c *Cursor) Seek(off int) { c.off = off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.off }

func (c *Cursor) need(n int) error {
	if c.off < 0 || n < 0 || c.off+n > len(c.buf) {
		return types.NewError(types.KindCorrupt, c.op,
			fmt.Errorf("truncated record: need %d bytes at offset %d, have %d", n, c.off, len(c.buf)))
	}
	return nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

// U16 reads a big-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v, nil
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

// U64 reads a big-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(c.buf[c.off:])
	c.off += 8
	return v, nil
}

// I8 reads one signed byte.
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// Bytes reads n raw bytes without interpreting them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.buf[c.off : c.off+n]
	c.off += n
	return v, nil
}

// Skip advances the cursor n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.off += n
	return nil
}

// U16Array reads n big-endian uint16 values.
func (c *Cursor) U16Array(n int) ([]uint16, error) {
	if err := c.need(n * 2); err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = binary.BigEndian.Uint16(c.buf[c.off+i*2:])
	}
	c.off += n * 2
	return out, nil
}

// ExtentDescriptor reads one {start_block, block_count} pair.
func (c *Cursor) ExtentDescriptor() (types.ExtentDescriptor, error) {
	start, err := c.U32()
	if err != nil {
		return types.ExtentDescriptor{}, err
	}
	count, err := c.U32()
	if err != nil {
		return types.ExtentDescriptor{}, err
	}
	return types.ExtentDescriptor{StartBlock: start, BlockCount: count}, nil
}

// ExtentArray reads a fixed array of n extent descriptors.
func (c *Cursor) ExtentArray(n int) ([8]types.ExtentDescriptor, error) {
	var out [8]types.ExtentDescriptor
	if n > 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		e, err := c.ExtentDescriptor()
		if err != nil {
			return out, err
		}
		out[i] = e
	}
	return out, nil
}

// ForkData reads a complete {logical_size, clump_size, total_blocks,
// 8x extent descriptor} fork record (80 bytes on disk).
func (c *Cursor) ForkData() (types.ForkData, error) {
	var f types.ForkData
	var err error
	if f.LogicalSize, err = c.U64(); err != nil {
		return f, err
	}
	if f.ClumpSize, err = c.U32(); err != nil {
		return f, err
	}
	if f.TotalBlocks, err = c.U32(); err != nil {
		return f, err
	}
	if f.Extents, err = c.ExtentArray(8); err != nil {
		return f, err
	}
	return f, nil
}
