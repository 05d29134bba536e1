package catalog

import (
	"github.com/0x09/go-hfsplus/internal/hfsunicode"
	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// fileHardLinkDirName and dirHardLinkDirName are the names of the private
// directories HFS+ stores file and directory hard-link targets under, per
// TN1150's private metadata directory naming convention.
const (
	fileHardLinkDirName = "\x00\x00\x00\x00HFS+ Private Data"
	dirHardLinkDirName  = ".HFS+ Private Directory Data\x0d"
)

// Tree catalogs the subset of interfaces.BTree this package needs:
// exact lookup and forward iteration from a starting key, both of
// which the Catalog B-tree's Find/FindFirstGE already provide.
type Tree struct {
	bt         interfaces.BTree
	metadataDirCNID func(name string) (types.CNID, bool)
}

// New wraps a Catalog B-tree with the record-decoding and hard-link
// resolution operations interfaces.Catalog requires. privateDirLookup
// resolves the well-known private metadata directory names to their
// CNIDs; it is called on each hard-link resolution (hard-link targets
// always live directly under one of those two directories).
func New(bt interfaces.BTree, privateDirLookup func(name string) (types.CNID, bool)) *Tree {
	return &Tree{bt: bt, metadataDirCNID: privateDirLookup}
}

func rootThreadKey(cnid types.CNID) []byte {
	return EncodeKey(cnid, nil)
}

// FindByCNID resolves a record's own key via its thread record: thread
// records are keyed by (cnid, empty name) and their value names the
// record's (parent, name), which is then looked up directly.
func (c *Tree) FindByCNID(cnid types.CNID) (interfaces.CatalogRecord, types.CatalogKey, error) {
	const op = "catalog.FindByCNID"

	threadRec, err := c.bt.Find(rootThreadKey(cnid))
	if err != nil {
		return interfaces.CatalogRecord{}, types.CatalogKey{}, err
	}
	thread, err := decodeThreadRecord(threadRec.Value)
	if err != nil {
		return interfaces.CatalogRecord{}, types.CatalogKey{}, err
	}
	key := types.CatalogKey{ParentCNID: thread.ParentCNID, Name: thread.Name}

	rec, err := c.bt.Find(EncodeKey(key.ParentCNID, key.Name))
	if err != nil {
		return interfaces.CatalogRecord{}, types.CatalogKey{}, types.NewError(types.KindCorrupt, op, err)
	}
	decoded, err := DecodeRecord(rec.Value)
	if err != nil {
		return interfaces.CatalogRecord{}, types.CatalogKey{}, err
	}
	return decoded, key, nil
}

// FindByKey performs a direct (parent, name) lookup.
func (c *Tree) FindByKey(parent types.CNID, nameUTF16 []uint16) (interfaces.CatalogRecord, error) {
	rec, err := c.bt.Find(EncodeKey(parent, nameUTF16))
	if err != nil {
		return interfaces.CatalogRecord{}, err
	}
	return DecodeRecord(rec.Value)
}

// ListDirectory enumerates every folder/file record whose parent is
// folder, scanning forward from the folder's own thread key (the first
// key any of its children could sort after) until a record with a
// different parent CNID is seen.
func (c *Tree) ListDirectory(folder types.CNID) ([]interfaces.DirEntry, error) {
	const op = "catalog.ListDirectory"

	it, err := c.bt.FindFirstGE(EncodeKey(folder, nil))
	if err != nil {
		return nil, err
	}

	var entries []interfaces.DirEntry
	for {
		rec, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		key, err := DecodeKey(rec.Key)
		if err != nil {
			return nil, err
		}
		if key.ParentCNID != folder {
			break
		}
		if key.IsThreadKey() {
			continue // the folder's own thread record, not a child
		}
		decoded, err := DecodeRecord(rec.Value)
		if err != nil {
			return nil, types.NewError(types.KindCorrupt, op, err)
		}
		name, err := hfsunicode.DecodeName(key.Name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, interfaces.DirEntry{Name: name, Record: decoded})
	}
	return entries, nil
}

// ResolveFileHardLink finds the indirection target for inodeNum under
// the private file-data directory: every hard-linked file's real data
// lives there named "iNode<inodeNum>" (the HFS+ Private Data
// convention carried over from hfsuser.c's hardlink handling).
func (c *Tree) ResolveFileHardLink(inodeNum uint32) (interfaces.CatalogRecord, error) {
	return c.resolveInPrivateDir(fileHardLinkDirName, "iNode", inodeNum)
}

// ResolveDirHardLink finds the indirection target for inodeNum under
// the private directory-data directory, named "dir_<inodeNum>".
func (c *Tree) ResolveDirHardLink(inodeNum uint32) (interfaces.CatalogRecord, error) {
	return c.resolveInPrivateDir(dirHardLinkDirName, "dir_", inodeNum)
}

func (c *Tree) resolveInPrivateDir(dirName, prefix string, inodeNum uint32) (interfaces.CatalogRecord, error) {
	const op = "catalog.resolveInPrivateDir"
	if c.metadataDirCNID == nil {
		return interfaces.CatalogRecord{}, types.NewError(types.KindNotFound, op, nil)
	}
	dirCNID, ok := c.metadataDirCNID(dirName)
	if !ok {
		return interfaces.CatalogRecord{}, types.NewError(types.KindNotFound, op, nil)
	}
	name := formatInodeName(prefix, inodeNum)
	units, err := stringToUnits(name)
	if err != nil {
		return interfaces.CatalogRecord{}, err
	}
	return c.FindByKey(dirCNID, units)
}

func formatInodeName(prefix string, n uint32) string {
	digits := [10]byte{}
	i := len(digits)
	if n == 0 {
		i--
		digits[i] = '0'
	}
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return prefix + string(digits[i:])
}

func stringToUnits(s string) ([]uint16, error) {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		units = append(units, uint16(r))
	}
	return units, nil
}

