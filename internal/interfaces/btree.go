package interfaces

import "github.com/0x09/go-hfsplus/internal/types"

// KeyCompareFunc orders two keys the way a specific tree's key-compare
// rule requires (HFS+ catalog/case-folding, HFSX binary, or Extents
// Overflow's fixed-field comparison).
type KeyCompareFunc func(a, b []byte) int

// ForkReader is the minimal surface the B-tree engine needs from a
// fork: logical, offset-addressed reads into the tree's underlying file.
type ForkReader interface {
	ReadAt(buf []byte, offset int64) (int, error)
	LogicalSize() int64
}

// BTreeRecord is one decoded (key, value) pair from a leaf node.
type BTreeRecord struct {
	Key   []byte
	Value []byte
}

// BTree is the generic engine over a single HFS+ B-tree (Catalog,
// Extents Overflow, or Attributes). It is stateless with respect to the
// caller: every method re-descends from the root node it read at Open
// time, and is safe to call concurrently as long as the underlying
// ForkReader's device is thread-safe.
type BTree interface {
	// Find descends to the leaf that would contain key and returns the
	// exact match, or types.KindNotFound if no record has this key.
	Find(key []byte) (BTreeRecord, error)

	// FindFirstGE descends to the leaf that would contain key and
	// returns an iterator starting at the first record whose key is
	// greater than or equal to key.
	FindFirstGE(key []byte) (Iterator, error)

	NodeSize() uint32
	Header() types.BTreeHeaderRecord
}

// Iterator walks leaf records forward across sibling links, stopping
// when the sibling link reaches zero.
type Iterator interface {
	Next() (BTreeRecord, bool, error)
}
