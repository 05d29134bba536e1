package resolver

import (
	"fmt"
	"testing"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatInodeName(prefix string, inodeNum uint32) string {
	return fmt.Sprintf("%s%d", prefix, inodeNum)
}

// fakeCatalog is a tiny in-memory interfaces.Catalog exercising exactly
// the lookups Resolve needs: a root folder with one subfolder "docs",
// a plain file "docs/report", a file hard link "docs/link" whose
// target lives under a private data directory, and a directory hard
// link "docs/tmtarget" that must fail mid-path traversal.
type fakeCatalog struct {
	byCNIDKey map[types.CNID]types.CatalogKey
	byParentName map[types.CNID]map[string]interfaces.CatalogRecord
	privateDir map[string]interfaces.CatalogRecord
}

const (
	rootCNID  = types.RootFolderCNID
	docsCNID  = types.CNID(20)
	reportCNID = types.CNID(21)
	linkCNID  = types.CNID(22)
	tmCNID    = types.CNID(23)
	targetCNID = types.CNID(100)
)

func folderRecord(cnid types.CNID) interfaces.CatalogRecord {
	return interfaces.CatalogRecord{Type: types.RecTypeFolder, Folder: &types.FolderRecord{CNID: cnid}}
}

func fileRecord(cnid types.CNID, fi types.FileFinderInfo, special uint32) interfaces.CatalogRecord {
	return interfaces.CatalogRecord{Type: types.RecTypeFile, File: &types.FileRecord{
		CNID:        cnid,
		FinderInfo:  fi,
		Permissions: types.PermissionsBlock{Special: special},
	}}
}

func fourCCUint(s string) uint32 {
	b := []byte(s)
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func newFakeCatalog() *fakeCatalog {
	c := &fakeCatalog{
		byCNIDKey:    map[types.CNID]types.CatalogKey{},
		byParentName: map[types.CNID]map[string]interfaces.CatalogRecord{},
		privateDir:   map[string]interfaces.CatalogRecord{},
	}
	c.byParentName[rootCNID] = map[string]interfaces.CatalogRecord{
		"docs": folderRecord(docsCNID),
	}
	c.byParentName[docsCNID] = map[string]interfaces.CatalogRecord{
		"report": fileRecord(reportCNID, types.FileFinderInfo{}, 0),
		"link": fileRecord(linkCNID, types.FileFinderInfo{
			FileCreator: fourCCUint(types.HFSPlusCreator),
			FileType:    fourCCUint(types.HardLinkFileType),
		}, 5),
		"tmtarget": fileRecord(tmCNID, types.FileFinderInfo{
			FileCreator: fourCCUint(types.MACSCreator),
			FileType:    fourCCUint(types.DirHardLinkFileType),
		}, 7),
	}
	c.privateDir["iNode5"] = fileRecord(targetCNID, types.FileFinderInfo{}, 0)
	c.byCNIDKey[rootCNID] = types.CatalogKey{ParentCNID: types.RootParentCNID, Name: nil}
	return c
}

func (c *fakeCatalog) FindByCNID(cnid types.CNID) (interfaces.CatalogRecord, types.CatalogKey, error) {
	if cnid == rootCNID {
		return folderRecord(rootCNID), c.byCNIDKey[rootCNID], nil
	}
	return interfaces.CatalogRecord{}, types.CatalogKey{}, types.NewError(types.KindNotFound, "fakeCatalog.FindByCNID", nil)
}

func (c *fakeCatalog) FindByKey(parent types.CNID, nameUTF16 []uint16) (interfaces.CatalogRecord, error) {
	name := string(units16ToRunes(nameUTF16))
	children, ok := c.byParentName[parent]
	if !ok {
		return interfaces.CatalogRecord{}, types.NewError(types.KindNotFound, "fakeCatalog.FindByKey", nil)
	}
	rec, ok := children[name]
	if !ok {
		return interfaces.CatalogRecord{}, types.NewError(types.KindNotFound, "fakeCatalog.FindByKey", nil)
	}
	return rec, nil
}

func (c *fakeCatalog) ListDirectory(folder types.CNID) ([]interfaces.DirEntry, error) {
	return nil, nil
}

func (c *fakeCatalog) ResolveFileHardLink(inodeNum uint32) (interfaces.CatalogRecord, error) {
	rec, ok := c.privateDir[formatInodeName("iNode", inodeNum)]
	if !ok {
		return interfaces.CatalogRecord{}, types.NewError(types.KindNotFound, "fakeCatalog.ResolveFileHardLink", nil)
	}
	return rec, nil
}

func (c *fakeCatalog) ResolveDirHardLink(inodeNum uint32) (interfaces.CatalogRecord, error) {
	return interfaces.CatalogRecord{}, types.NewError(types.KindNotFound, "fakeCatalog.ResolveDirHardLink", nil)
}

func units16ToRunes(units []uint16) []rune {
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return runes
}

func TestResolvePlainFile(t *testing.T) {
	r := New(newFakeCatalog())
	res, err := r.Resolve("/docs/report")
	require.NoError(t, err)
	assert.True(t, res.Record.IsFile())
	assert.Equal(t, reportCNID, res.Record.CNID())
	assert.Equal(t, types.DataFork, res.Fork)
}

func TestResolveCachesSecondLookup(t *testing.T) {
	r := New(newFakeCatalog())
	_, err := r.Resolve("/docs/report")
	require.NoError(t, err)

	rec, key, ok := r.cache.lookup("/docs/report")
	require.True(t, ok)
	assert.Equal(t, reportCNID, rec.CNID())
	assert.Equal(t, docsCNID, key.ParentCNID)
}

func TestResolveFollowsFileHardLink(t *testing.T) {
	r := New(newFakeCatalog())
	res, err := r.Resolve("/docs/link")
	require.NoError(t, err)
	assert.Equal(t, targetCNID, res.Record.CNID())
}

func TestResolveRejectsDirHardLinkMidPath(t *testing.T) {
	r := New(newFakeCatalog())
	_, err := r.Resolve("/docs/tmtarget/inner")
	assert.Error(t, err)
}

func TestResolveResourceForkSuffix(t *testing.T) {
	r := New(newFakeCatalog())
	res, err := r.Resolve("/docs/report/rsrc")
	require.NoError(t, err)
	assert.Equal(t, types.ResourceFork, res.Fork)
}

func TestResolveResourceForkLookupNotCached(t *testing.T) {
	r := New(newFakeCatalog())
	_, err := r.Resolve("/docs/report/rsrc")
	require.NoError(t, err)

	_, _, ok := r.cache.lookup("/docs/report/rsrc")
	assert.False(t, ok)
}

func TestResolveMissingPathReturnsNotFound(t *testing.T) {
	r := New(newFakeCatalog())
	_, err := r.Resolve("/docs/nope")
	assert.True(t, types.Is(err, types.KindNotFound))
}

func TestResolveRootPath(t *testing.T) {
	r := New(newFakeCatalog())
	res, err := r.Resolve("/")
	require.NoError(t, err)
	assert.True(t, res.Record.IsFolder())
	assert.Equal(t, rootCNID, res.Record.CNID())
}
