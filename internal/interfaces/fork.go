package interfaces

import "github.com/0x09/go-hfsplus/internal/types"

// ExtentRun is one resolved (start_block, block_count) pair in a fork's
// logical-to-physical block mapping, already concatenated across the
// inline extent record and any Extents Overflow continuation records.
type ExtentRun struct {
	StartBlock uint32
	BlockCount uint32
}

// Fork maps a single file fork's logical byte range onto device block
// ranges and reads through to the volume's Device.
type Fork interface {
	// Extents returns the fork's full ordered extent list.
	Extents() ([]ExtentRun, error)

	// ReadAt reads up to len(buf) bytes starting at the fork-logical
	// offset, returning fewer bytes only at end-of-fork.
	ReadAt(buf []byte, offset int64) (int, error)

	LogicalSize() int64
}

// ForkKey identifies which fork of which file an Extents Overflow
// continuation lookup is for.
type ForkKey struct {
	CNID types.CNID
	Kind types.ForkKind
}
