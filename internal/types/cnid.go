// Package types holds the on-disk record layouts and shared constants of
// the HFS+ format (Apple TN1150), decoded verbatim from big-endian bytes
// by internal/endian and consumed by every other internal package.
package types

// CNID is a Catalog Node ID: the 32-bit per-volume identifier assigned to
// every file, folder, and thread record.
type CNID uint32

// Reserved CNIDs. The first CNID available for user files and folders is
// FirstUserCNID; everything below it names one of the volume's special
// files or the root's own bookkeeping records.
const (
	RootParentCNID    CNID = 1
	RootFolderCNID    CNID = 2
	ExtentsFileCNID   CNID = 3
	CatalogFileCNID   CNID = 4
	BadBlockFileCNID  CNID = 5
	AllocationFileCNID CNID = 6
	StartupFileCNID   CNID = 7
	AttributesFileCNID CNID = 8
	FirstUserCNID     CNID = 16
)

// ForkKind selects which of a file's two forks an operation applies to.
type ForkKind uint8

const (
	DataFork     ForkKind = 0x00
	ResourceFork ForkKind = 0xFF
)

// Hard-link sentinel values. A file record carrying these creator/type
// pairs in its UserInfo is not real file data — it is an indirection to
// a target stored under a well-known private catalog directory.
const (
	HFSPlusCreator   = "hfs+"
	HardLinkFileType = "hlnk"

	MACSCreator          = "MACS"
	DirHardLinkFileType  = "fdrp"
)

// HFSTimeToUnix converts an HFS+ on-disk timestamp (seconds since
// 1904-01-01 UTC) to a POSIX (1970-01-01 UTC) timestamp.
func HFSTimeToUnix(hfsTime uint32) int64 {
	const epochDelta = 2082844800
	return int64(hfsTime) - epochDelta
}
