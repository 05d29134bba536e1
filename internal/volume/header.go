// Package volume opens an HFS+ volume: decoding and validating its
// Volume Header, and wiring together the Catalog, Extents Overflow, and
// Attributes B-trees plus the special-file fork readers every other
// package is handed at construction time.
package volume

import (
	"github.com/0x09/go-hfsplus/internal/endian"
	"github.com/0x09/go-hfsplus/internal/types"
)

// HeaderOffset is the fixed device byte offset of the Volume Header,
// per TN1150: 1024 bytes in, regardless of block size.
const HeaderOffset = 1024

// HeaderSize is the on-disk size of the Volume Header record.
const HeaderSize = 512

// DecodeHeader parses a 512-byte buffer already read from
// HeaderOffset. It validates the signature and the block_size
// invariant (a power of two no smaller than 512 and no larger than
// 2^20, per spec) before returning, so every other package can trust a
// *types.VolumeHeader it's handed.
func DecodeHeader(buf []byte) (*types.VolumeHeader, error) {
	const op = "volume.DecodeHeader"
	if len(buf) < HeaderSize {
		return nil, types.NewError(types.KindCorrupt, op, nil)
	}

	c := endian.NewCursor(buf, op)
	h := &types.VolumeHeader{}

	var err error
	if h.Signature, err = c.U16(); err != nil {
		return nil, err
	}
	if err := validateSignature(h.Signature); err != nil {
		return nil, err
	}
	if h.Version, err = c.U16(); err != nil {
		return nil, err
	}
	if h.Attributes, err = c.U32(); err != nil {
		return nil, err
	}
	if h.LastMountedVersion, err = c.U32(); err != nil {
		return nil, err
	}
	if h.JournalInfoBlock, err = c.U32(); err != nil {
		return nil, err
	}
	if h.CreateDate, err = c.U32(); err != nil {
		return nil, err
	}
	if h.ModifyDate, err = c.U32(); err != nil {
		return nil, err
	}
	if h.BackupDate, err = c.U32(); err != nil {
		return nil, err
	}
	if h.CheckedDate, err = c.U32(); err != nil {
		return nil, err
	}
	if h.FileCount, err = c.U32(); err != nil {
		return nil, err
	}
	if h.FolderCount, err = c.U32(); err != nil {
		return nil, err
	}
	if h.BlockSize, err = c.U32(); err != nil {
		return nil, err
	}
	if !validBlockSize(h.BlockSize) {
		return nil, types.NewError(types.KindNotHFS, op, nil)
	}
	if h.TotalBlocks, err = c.U32(); err != nil {
		return nil, err
	}
	if h.FreeBlocks, err = c.U32(); err != nil {
		return nil, err
	}
	if h.NextAllocation, err = c.U32(); err != nil {
		return nil, err
	}
	if h.RsrcClumpSize, err = c.U32(); err != nil {
		return nil, err
	}
	if h.DataClumpSize, err = c.U32(); err != nil {
		return nil, err
	}
	var nextCatalogID uint32
	if nextCatalogID, err = c.U32(); err != nil {
		return nil, err
	}
	h.NextCatalogID = types.CNID(nextCatalogID)
	if h.WriteCount, err = c.U32(); err != nil {
		return nil, err
	}
	if h.EncodingsBitmap, err = c.U64(); err != nil {
		return nil, err
	}
	for i := range h.FinderInfo {
		if h.FinderInfo[i], err = c.U32(); err != nil {
			return nil, err
		}
	}
	if h.AllocationFile, err = c.ForkData(); err != nil {
		return nil, err
	}
	if h.ExtentsFile, err = c.ForkData(); err != nil {
		return nil, err
	}
	if h.CatalogFile, err = c.ForkData(); err != nil {
		return nil, err
	}
	if h.AttributesFile, err = c.ForkData(); err != nil {
		return nil, err
	}
	if h.StartupFile, err = c.ForkData(); err != nil {
		return nil, err
	}

	return h, nil
}

func validateSignature(sig uint16) error {
	switch sig {
	case types.SignatureHFSPlus, types.SignatureHFSX:
		return nil
	default:
		return types.NewError(types.KindNotHFS, "volume.DecodeHeader", nil)
	}
}

// validBlockSize enforces the power-of-two range TN1150 specifies for
// allocation block size: 512 bytes to 1MiB inclusive.
func validBlockSize(bs uint32) bool {
	if bs < 512 || bs > 1<<20 {
		return false
	}
	return bs&(bs-1) == 0
}
