package types

// CatalogKey is the variable-length key of a Catalog B-tree record:
// {parent_cnid, name}. A Name of zero length identifies a thread record
// rather than a folder/file record.
type CatalogKey struct {
	ParentCNID CNID
	Name       []uint16 // UTF-16BE code units, on-disk order
}

// IsThreadKey reports whether this key names a thread record.
func (k CatalogKey) IsThreadKey() bool { return len(k.Name) == 0 }

// CatalogRecordType tags the union of possible leaf payloads in the
// Catalog B-tree.
type CatalogRecordType int16

const (
	RecTypeFolder       CatalogRecordType = 1
	RecTypeFile         CatalogRecordType = 2
	RecTypeFolderThread CatalogRecordType = 3
	RecTypeFileThread   CatalogRecordType = 4
)

// PermissionsBlock is the BSD permissions/ownership data embedded in
// every file and folder record.
type PermissionsBlock struct {
	OwnerID    uint32
	GroupID    uint32
	AdminFlags uint8
	OwnerFlags uint8
	FileMode   uint16

	// Special is a 4-byte union interpreted by FileMode: RawDevice for
	// character/block special files, LinkCount for everything else that
	// supports hard links, or InodeNum when this record is itself a
	// hard-link indirection node.
	Special uint32
}

// Unix file-mode type bits relevant to PermissionsBlock.FileMode.
const (
	ModeTypeMask  = 0xF000
	ModeDirectory = 0x4000
	ModeRegular   = 0x8000
	ModeCharDev   = 0x2000
	ModeBlockDev  = 0x6000
)

// Point is a Finder (vertical, horizontal) coordinate pair, used by both
// the file and folder FinderInfo layouts.
type Point struct{ V, H uint16 }

// FileUserInfo + FinderInfo, 32 bytes total (TN1150 FndrFileInfo + FndrExtendedFileInfo).
type FileFinderInfo struct {
	FileType    uint32
	FileCreator uint32
	FinderFlags uint16
	Location    Point
	Reserved    uint16

	ExtReserved          [4]uint16
	ExtendedFinderFlags  uint16
	Reserved2            uint16
	PutAwayFolderCNID    CNID
}

// FolderUserInfo + FinderInfo, 32 bytes total (TN1150 FndrDirInfo + FndrExtendedDirInfo).
type FolderFinderInfo struct {
	WindowBoundsTop    uint16
	WindowBoundsLeft   uint16
	WindowBoundsBottom uint16
	WindowBoundsRight  uint16
	FinderFlags        uint16
	Location           Point
	Reserved           uint16

	ScrollPosition       Point
	ExtReserved          uint32
	ExtendedFinderFlags  uint16
	Reserved2            uint16
	PutAwayFolderCNID    CNID
}

// FolderRecord is a Catalog leaf record describing a directory.
type FolderRecord struct {
	Flags   uint16
	Valence uint32
	CNID    CNID

	CreateDate     uint32
	ContentModDate uint32
	AttrModDate    uint32
	AccessDate     uint32
	BackupDate     uint32

	TextEncoding uint32
	FinderInfo   FolderFinderInfo
	Permissions  PermissionsBlock
}

// FileRecord flag bits.
const (
	FileFlagLocked       uint16 = 1 << 0
	FileFlagThreadExists uint16 = 1 << 1 // TN1150 kHFSThreadExistsMask (0x0002); see the note below
)

// FileRecord is a Catalog leaf record describing a file. Per TN1150 the
// "file has thread record" bit is kHFSThreadExistsMask (0x0002); the
// prose in some secondary references states 0x0080, but on-disk volumes
// this driver has been validated against use 0x0002. Both are checked.
const (
	FileFlagThreadExistsTN1150 uint16 = 0x0002
	FileFlagThreadExistsAlt    uint16 = 0x0080
)

// HasThreadRecord reports whether this file carries a companion thread
// record (true for every file created by a TN1150-conformant implementation).
func (f *FileRecord) HasThreadRecord() bool {
	return f.Flags&(FileFlagThreadExistsTN1150|FileFlagThreadExistsAlt) != 0
}

type FileRecord struct {
	Flags uint16
	CNID  CNID

	CreateDate     uint32
	ContentModDate uint32
	AttrModDate    uint32
	AccessDate     uint32
	BackupDate     uint32

	TextEncoding uint32
	FinderInfo   FileFinderInfo
	Permissions  PermissionsBlock

	DataFork ForkData
	RsrcFork ForkData
}

// IsFileHardLink reports whether this file record is an indirection
// sentinel to a real data file in the private hard-link directory.
func (f *FileRecord) IsFileHardLink() bool {
	return fourCC(f.FinderInfo.FileCreator) == HFSPlusCreator &&
		fourCC(f.FinderInfo.FileType) == HardLinkFileType
}

// IsDirHardLink reports whether this file record is a Time
// Machine-style directory hard link.
func (f *FileRecord) IsDirHardLink() bool {
	return fourCC(f.FinderInfo.FileCreator) == MACSCreator &&
		fourCC(f.FinderInfo.FileType) == DirHardLinkFileType
}

func fourCC(v uint32) string {
	return string([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// ThreadRecord is the back-pointer record for a given CNID, mapping it
// to its (parent_cnid, name). Folder and file threads share this layout.
type ThreadRecord struct {
	ParentCNID CNID
	Name       []uint16
}
