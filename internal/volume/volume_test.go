package volume

import (
	"encoding/binary"
	"testing"

	"github.com/0x09/go-hfsplus/internal/catalog"
	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imgNodeSize = 512
const imgBlockSize = 512

// imgDevice is an in-memory interfaces.BlockDevice backing a hand-built
// minimal HFS+ image: a Volume Header, a two-node Extents Overflow
// tree (unused but present), and a two-node Catalog tree with just the
// root folder and its thread record.
type imgDevice struct {
	data []byte
}

func (d *imgDevice) ReadAt(buf []byte, offset int64) error {
	copy(buf, d.data[offset:])
	return nil
}
func (d *imgDevice) IOBlockSize() uint32 { return imgBlockSize }
func (d *imgDevice) Size() int64         { return int64(len(d.data)) }
func (d *imgDevice) Close() error        { return nil }

func putAt(data []byte, off int64, b []byte) {
	copy(data[off:], b)
}

func buildBTreeNode(kind types.BTreeNodeKind, flink, blink uint32, records [][]byte) []byte {
	buf := make([]byte, imgNodeSize)
	binary.BigEndian.PutUint32(buf[0:4], flink)
	binary.BigEndian.PutUint32(buf[4:8], blink)
	buf[8] = byte(int8(kind))
	binary.BigEndian.PutUint16(buf[10:12], uint16(len(records)))

	offsets := make([]uint16, len(records)+1)
	pos := 14
	for i, rec := range records {
		offsets[i] = uint16(pos)
		copy(buf[pos:], rec)
		pos += len(rec)
	}
	offsets[len(records)] = uint16(pos)

	for i, off := range offsets {
		binary.BigEndian.PutUint16(buf[imgNodeSize-2-2*i:], off)
	}
	return buf
}

func buildBTreeHeaderNode(rootNode uint32) []byte {
	hdr := make([]byte, 106)
	binary.BigEndian.PutUint32(hdr[2:6], rootNode)
	binary.BigEndian.PutUint16(hdr[18:20], imgNodeSize)
	return buildBTreeNode(types.BTNodeHeader, 0, 0, [][]byte{hdr})
}

func buildThreadRecordValue(parent types.CNID, name []uint16) []byte {
	buf := make([]byte, 12+len(name)*2)
	binary.BigEndian.PutUint16(buf[0:2], uint16(types.RecTypeFolderThread))
	binary.BigEndian.PutUint32(buf[6:10], uint32(parent))
	binary.BigEndian.PutUint16(buf[10:12], uint16(len(name)))
	for i, u := range name {
		binary.BigEndian.PutUint16(buf[12+i*2:], u)
	}
	return buf
}

func buildFolderRecordValue(cnid types.CNID) []byte {
	buf := make([]byte, 88)
	binary.BigEndian.PutUint16(buf[0:2], uint16(types.RecTypeFolder))
	binary.BigEndian.PutUint32(buf[8:12], uint32(cnid))
	return buf
}

func unitsOf(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		units = append(units, uint16(r))
	}
	return units
}

func buildTestImage(t *testing.T) *imgDevice {
	t.Helper()
	data := make([]byte, 64*imgBlockSize)

	// Volume Header at byte offset 1024.
	hdr := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(hdr[0:2], types.SignatureHFSPlus)
	binary.BigEndian.PutUint32(hdr[40:44], imgBlockSize)
	binary.BigEndian.PutUint32(hdr[44:48], 64)

	// ExtentsFile ForkData at offset 192: 2 blocks starting at block 20.
	binary.BigEndian.PutUint64(hdr[192:200], 1024)
	binary.BigEndian.PutUint32(hdr[204:208], 2)
	binary.BigEndian.PutUint32(hdr[208:212], 20)
	binary.BigEndian.PutUint32(hdr[212:216], 2)

	// CatalogFile ForkData at offset 272: 2 blocks starting at block 30.
	binary.BigEndian.PutUint64(hdr[272:280], 1024)
	binary.BigEndian.PutUint32(hdr[284:288], 2)
	binary.BigEndian.PutUint32(hdr[288:292], 30)
	binary.BigEndian.PutUint32(hdr[292:296], 2)

	putAt(data, 1024, hdr)

	// Extents Overflow tree: header node + an empty leaf.
	putAt(data, 20*imgBlockSize, buildBTreeHeaderNode(1))
	putAt(data, 21*imgBlockSize, buildBTreeNode(types.BTNodeLeaf, 0, 0, nil))

	// Catalog tree: header node + a leaf with the root folder's thread
	// record and the root folder record itself.
	volName := unitsOf("TestVolume")
	threadKey := catalog.EncodeKey(types.RootFolderCNID, nil)
	threadVal := buildThreadRecordValue(types.RootParentCNID, volName)
	folderKey := catalog.EncodeKey(types.RootParentCNID, volName)
	folderVal := buildFolderRecordValue(types.RootFolderCNID)

	leaf := buildBTreeNode(types.BTNodeLeaf, 0, 0, [][]byte{
		append(append([]byte{}, threadKey...), threadVal...),
		append(append([]byte{}, folderKey...), folderVal...),
	})
	putAt(data, 30*imgBlockSize, buildBTreeHeaderNode(1))
	putAt(data, 31*imgBlockSize, leaf)

	return &imgDevice{data: data}
}

func TestVolumeOpenDecodesNameAndInfo(t *testing.T) {
	dev := buildTestImage(t)
	v, err := Open(dev, 0, "test-correlation")
	require.NoError(t, err)

	info := v.Info()
	assert.Equal(t, "TestVolume", info.Name)
	assert.Equal(t, uint32(imgBlockSize), info.BlockSize)
	assert.False(t, info.CaseSensitive)
	assert.Equal(t, "test-correlation", info.CorrelationID)
}

func TestVolumeCatalogFindsRootFolder(t *testing.T) {
	dev := buildTestImage(t)
	v, err := Open(dev, 0, "")
	require.NoError(t, err)

	rec, _, err := v.Catalog.FindByCNID(types.RootFolderCNID)
	require.NoError(t, err)
	assert.True(t, rec.IsFolder())
	assert.Equal(t, types.RootFolderCNID, rec.CNID())
}
