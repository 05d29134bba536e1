package interfaces

import "github.com/0x09/go-hfsplus/internal/types"

// CatalogRecord is the decoded payload of a Catalog leaf record, tagged
// by which arm of the union is populated.
type CatalogRecord struct {
	Type   types.CatalogRecordType
	Folder *types.FolderRecord
	File   *types.FileRecord
	Thread *types.ThreadRecord
}

// IsFolder reports whether this record describes a directory.
func (r CatalogRecord) IsFolder() bool { return r.Type == types.RecTypeFolder }

// IsFile reports whether this record describes a file.
func (r CatalogRecord) IsFile() bool { return r.Type == types.RecTypeFile }

// CNID returns the record's own CNID for folder/file records.
func (r CatalogRecord) CNID() types.CNID {
	switch {
	case r.Folder != nil:
		return r.Folder.CNID
	case r.File != nil:
		return r.File.CNID
	default:
		return 0
	}
}

// DirEntry is one (name, record) pair yielded by directory enumeration.
type DirEntry struct {
	Name   string
	Record CatalogRecord
}

// Catalog resolves Catalog B-tree records by CNID or by (parent, name)
// key, enumerates directories, and resolves the two hard-link sentinel
// kinds.
type Catalog interface {
	FindByCNID(cnid types.CNID) (CatalogRecord, types.CatalogKey, error)
	FindByKey(parent types.CNID, nameUTF16 []uint16) (CatalogRecord, error)
	ListDirectory(folder types.CNID) ([]DirEntry, error)
	ResolveFileHardLink(inodeNum uint32) (CatalogRecord, error)
	ResolveDirHardLink(inodeNum uint32) (CatalogRecord, error)
}
