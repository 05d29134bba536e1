package interfaces

import "github.com/0x09/go-hfsplus/internal/types"

// VolumeInfo exposes the subset of the Volume Header callers ask for
// without reaching into internal/types directly.
type VolumeInfo struct {
	Name        string
	Signature   uint16
	BlockSize   uint32
	TotalBlocks uint32
	FreeBlocks  uint32
	Journaled   bool
	Dirty       bool
	CaseSensitive bool
	CreateDate  int64
	ModifyDate  int64
	CorrelationID string
}

// Attributes is the POSIX-shaped attribute set the FUSE bridge's stat()
// callback needs, synthesized from a Catalog record and fork choice.
type Attributes struct {
	Mode      uint32
	UID       uint32
	GID       uint32
	NLink     uint32
	RDev      uint32
	Size      int64
	Blocks    int64
	BlockSize uint32
	ATime     int64
	MTime     int64
	CTime     int64
	BirthTime int64
	BSDFlags  uint32
	CNID      types.CNID
}
