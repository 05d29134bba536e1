package types

// ExtentDescriptor is a single contiguous run of allocation blocks:
// {start_block, block_count}. A zero-value descriptor (both fields zero)
// terminates a partially-filled inline extent array.
type ExtentDescriptor struct {
	StartBlock uint32
	BlockCount uint32
}

// IsZero reports whether this is the sentinel empty extent that
// terminates an inline extent record.
func (e ExtentDescriptor) IsZero() bool {
	return e.StartBlock == 0 && e.BlockCount == 0
}

// ForkData describes one fork (data or resource) of a file, or one of
// the volume's special files. The eight inline extents cover forks up to
// eight fragments; anything more fragmented spills into the Extents
// Overflow B-tree.
type ForkData struct {
	LogicalSize uint64
	ClumpSize   uint32
	TotalBlocks uint32
	Extents     [8]ExtentDescriptor
}

// InlineBlockCount sums the block counts of the populated inline extents.
func (f ForkData) InlineBlockCount() uint32 {
	var n uint32
	for _, e := range f.Extents {
		if e.IsZero() {
			break
		}
		n += e.BlockCount
	}
	return n
}
