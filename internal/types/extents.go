package types

// ExtentsOverflowKey is the fixed-length key of an Extents Overflow
// B-tree record: which fork, which file, and the fork-relative starting
// allocation block this record's extents continue from.
type ExtentsOverflowKey struct {
	ForkKind   ForkKind
	FileCNID   CNID
	StartBlock uint32
}

// ExtentsOverflowRecord holds the next eight extents for a fork once its
// inline extent array is exhausted.
type ExtentsOverflowRecord struct {
	Extents [8]ExtentDescriptor
}
