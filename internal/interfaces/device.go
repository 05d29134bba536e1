// Package interfaces defines the seams between the core's components,
// so the B-tree engine, catalog, and fork reader depend on behavior, not
// concrete device/cache implementations.
package interfaces

// BlockDevice is a byte-addressable, read-only random-access source:
// a raw disk image, a character/block device, or a regular file. All
// offsets are device-relative; callers that operate on a volume embedded
// inside a larger container apply the volume's byte offset themselves.
type BlockDevice interface {
	// ReadAt fills buf from the given device offset. Short reads are
	// retried internally until buf is full or an error surfaces; a read
	// that runs past the end of the device fails with an error, and buf
	// is never overrun.
	ReadAt(buf []byte, offset int64) error

	// IOBlockSize returns the device's preferred transfer size, used to
	// size read-ahead and to round small reads up for the cache.
	IOBlockSize() uint32

	// Size returns the device's total addressable byte length, or -1 if
	// unknown (some character devices cannot report this).
	Size() int64

	// Close releases the underlying file descriptor.
	Close() error
}

// CacheStats reports the read-coalescing cache's hit/miss history.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Items  int
}
