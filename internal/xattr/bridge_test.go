package xattr

import (
	"encoding/binary"
	"testing"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFork struct {
	data []byte
}

func (f *fakeFork) Extents() ([]interfaces.ExtentRun, error) { return nil, nil }
func (f *fakeFork) LogicalSize() int64                       { return int64(len(f.data)) }
func (f *fakeFork) ReadAt(buf []byte, offset int64) (int, error) {
	n := copy(buf, f.data[offset:])
	return n, nil
}

func fileRecordWithRsrc(rsrcBytes []byte) interfaces.CatalogRecord {
	return interfaces.CatalogRecord{
		Type: types.RecTypeFile,
		File: &types.FileRecord{
			CNID:       42,
			CreateDate: 0x10000000,
			BackupDate: 0x20000000,
			FinderInfo: types.FileFinderInfo{
				FileType:    0x54455854, // "TEXT"
				FileCreator: 0x74747874, // "ttxt"
				FinderFlags: 0x1234,
			},
			RsrcFork: types.ForkData{LogicalSize: uint64(len(rsrcBytes))},
		},
	}
}

func TestListXattrOmitsResourceForkWhenEmpty(t *testing.T) {
	b := New(nil)
	rec := fileRecordWithRsrc(nil)
	names := b.ListXattr(rec)
	assert.NotContains(t, names, NameResourceFork)
	assert.Contains(t, names, NameFinderInfo)
}

func TestListXattrIncludesResourceForkWhenPresent(t *testing.T) {
	b := New(nil)
	rec := fileRecordWithRsrc([]byte("icon data"))
	names := b.ListXattr(rec)
	assert.Contains(t, names, NameResourceFork)
}

func TestGetXattrFinderInfoFileLayout(t *testing.T) {
	b := New(nil)
	rec := fileRecordWithRsrc(nil)
	buf, err := b.GetXattr(rec, NameFinderInfo)
	require.NoError(t, err)
	require.Len(t, buf, 32)
	assert.Equal(t, uint32(0x54455854), binary.BigEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(0x74747874), binary.BigEndian.Uint32(buf[4:8]))
	assert.Equal(t, uint16(0x1234), binary.BigEndian.Uint16(buf[8:10]))
}

func TestGetXattrFinderInfoFolderLayout(t *testing.T) {
	b := New(nil)
	rec := interfaces.CatalogRecord{
		Type: types.RecTypeFolder,
		Folder: &types.FolderRecord{
			CNID: 2,
			FinderInfo: types.FolderFinderInfo{
				WindowBoundsTop: 10,
				ExtReserved:     0xAABBCCDD,
			},
		},
	}
	buf, err := b.GetXattr(rec, NameFinderInfo)
	require.NoError(t, err)
	require.Len(t, buf, 32)
	assert.Equal(t, uint16(10), binary.BigEndian.Uint16(buf[0:2]))
	assert.Equal(t, uint32(0xAABBCCDD), binary.BigEndian.Uint32(buf[20:24]))
}

func TestGetXattrUnknownNameReturnsError(t *testing.T) {
	b := New(nil)
	_, err := b.GetXattr(fileRecordWithRsrc(nil), "com.apple.nonsense")
	assert.True(t, types.Is(err, types.KindNotFound))
}

func TestGetXattrResourceForkReadsThroughFork(t *testing.T) {
	want := []byte("resource bytes")
	opener := func(cnid types.CNID, kind types.ForkKind, fd types.ForkData) (interfaces.Fork, error) {
		assert.Equal(t, types.CNID(42), cnid)
		assert.Equal(t, types.ResourceFork, kind)
		return &fakeFork{data: want}, nil
	}
	b := New(opener)
	rec := fileRecordWithRsrc(want)

	got, err := b.GetXattr(rec, NameResourceFork)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetXattrCreateTimeConvertsEpoch(t *testing.T) {
	b := New(nil)
	rec := fileRecordWithRsrc(nil)
	buf, err := b.GetXattr(rec, NameCreateTime)
	require.NoError(t, err)
	require.Len(t, buf, 8)
	got := int64(binary.BigEndian.Uint64(buf))
	assert.Equal(t, types.HFSTimeToUnix(0x10000000), got)
}
