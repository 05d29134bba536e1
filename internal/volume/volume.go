package volume

import (
	"github.com/apex/log"

	"github.com/0x09/go-hfsplus/internal/btree"
	"github.com/0x09/go-hfsplus/internal/catalog"
	"github.com/0x09/go-hfsplus/internal/fork"
	"github.com/0x09/go-hfsplus/internal/hfsunicode"
	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// Volume is a mounted HFS+ volume: its header, the Catalog and Extents
// Overflow B-trees, and fork readers for the volume's special files.
// The Attributes B-tree is opened lazily since many volumes never use
// extended attributes at all.
type Volume struct {
	dev           interfaces.BlockDevice
	baseOffset    int64
	header        *types.VolumeHeader
	caseSensitive bool
	correlationID string

	extentsTree *btree.Tree
	catalogTree *btree.Tree
	attrTree    *btree.Tree

	Catalog interfaces.Catalog

	name string
}

// Open reads the Volume Header at baseOffset+1024 and opens the
// Catalog and Extents Overflow B-trees. correlationID is the device's
// own id, echoed into every log line this package emits so concurrent
// opens against different images stay distinguishable in logs.
func Open(dev interfaces.BlockDevice, baseOffset int64, correlationID string) (*Volume, error) {
	const op = "volume.Open"

	buf := make([]byte, HeaderSize)
	if err := dev.ReadAt(buf, baseOffset+HeaderOffset); err != nil {
		return nil, types.NewError(types.KindIO, op, err)
	}
	hdr, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}

	v := &Volume{
		dev:           dev,
		baseOffset:    baseOffset,
		header:        hdr,
		caseSensitive: hdr.IsHFSX(),
		correlationID: correlationID,
	}

	log.WithFields(log.Fields{
		"correlation_id": correlationID,
		"signature":      hdr.Signature,
		"block_size":     hdr.BlockSize,
		"journaled":      hdr.Journaled(),
		"dirty":          hdr.Dirty(),
	}).Info("volume header decoded")
	if hdr.Dirty() {
		log.WithField("correlation_id", correlationID).Warn("volume is marked dirty")
	}

	extentsFork, err := fork.NewReader(dev, hdr.BlockSize, baseOffset, types.ExtentsFileCNID, types.DataFork, hdr.ExtentsFile, nil)
	if err != nil {
		return nil, err
	}
	v.extentsTree, err = btree.Open(extentsFork, fork.CompareExtentsOverflowKeys)
	if err != nil {
		return nil, err
	}

	catalogFork, err := fork.NewReader(dev, hdr.BlockSize, baseOffset, types.CatalogFileCNID, types.DataFork, hdr.CatalogFile, v.extentsTree)
	if err != nil {
		return nil, err
	}
	v.catalogTree, err = btree.Open(catalogFork, catalog.CompareFunc(v.caseSensitive))
	if err != nil {
		return nil, err
	}

	v.Catalog = catalog.New(v.catalogTree, v.lookupPrivateDir)

	if err := v.loadVolumeName(); err != nil {
		return nil, err
	}

	return v, nil
}

// loadVolumeName reads the root folder's thread record to recover the
// volume name stored there (the root folder's own name IS the volume
// name, per TN1150).
func (v *Volume) loadVolumeName() error {
	_, key, err := v.Catalog.FindByCNID(types.RootFolderCNID)
	if err != nil {
		return err
	}
	name, err := hfsunicode.DecodeName(key.Name)
	if err != nil {
		return err
	}
	v.name = name
	return nil
}

// lookupPrivateDir resolves a well-known private metadata directory
// name to its CNID by listing the root folder once. Hard-link targets
// always live directly under the root, so this only needs to search
// one level.
func (v *Volume) lookupPrivateDir(name string) (types.CNID, bool) {
	entries, err := v.Catalog.ListDirectory(types.RootFolderCNID)
	if err != nil {
		return 0, false
	}
	for _, e := range entries {
		if e.Name == name && e.Record.IsFolder() {
			return e.Record.CNID(), true
		}
	}
	return 0, false
}

// AttributesTree lazily opens the Attributes B-tree on first use,
// since many volumes carry no extended attributes at all and paying
// for the header read/validate on every Open would be wasted work.
func (v *Volume) AttributesTree() (interfaces.BTree, error) {
	if v.attrTree != nil {
		return v.attrTree, nil
	}
	if v.header.AttributesFile.LogicalSize == 0 {
		return nil, types.NewError(types.KindNotFound, "volume.AttributesTree", nil)
	}
	attrFork, err := fork.NewReader(v.dev, v.header.BlockSize, v.baseOffset, types.AttributesFileCNID, types.DataFork, v.header.AttributesFile, v.extentsTree)
	if err != nil {
		return nil, err
	}
	tree, err := btree.Open(attrFork, catalog.CompareFunc(v.caseSensitive))
	if err != nil {
		return nil, err
	}
	v.attrTree = tree
	return tree, nil
}

// OpenFork returns a fork reader for the given file's data or resource
// fork, resolved against the Extents Overflow tree for continuation
// records beyond the inline extents.
func (v *Volume) OpenFork(cnid types.CNID, kind types.ForkKind, fd types.ForkData) (interfaces.Fork, error) {
	return fork.NewReader(v.dev, v.header.BlockSize, v.baseOffset, cnid, kind, fd, v.extentsTree)
}

func (v *Volume) Info() interfaces.VolumeInfo {
	return interfaces.VolumeInfo{
		Name:          v.name,
		Signature:     v.header.Signature,
		BlockSize:     v.header.BlockSize,
		TotalBlocks:   v.header.TotalBlocks,
		FreeBlocks:    v.header.FreeBlocks,
		Journaled:     v.header.Journaled(),
		Dirty:         v.header.Dirty(),
		CaseSensitive: v.caseSensitive,
		CreateDate:    types.HFSTimeToUnix(v.header.CreateDate),
		ModifyDate:    types.HFSTimeToUnix(v.header.ModifyDate),
		CorrelationID: v.correlationID,
	}
}

func (v *Volume) CaseSensitive() bool { return v.caseSensitive }

// Close releases the underlying device, matching the teacher's
// symmetrical Open/Close pairing on the device layer.
func (v *Volume) Close() error {
	log.WithField("correlation_id", v.correlationID).Debug("volume closed")
	return v.dev.Close()
}
