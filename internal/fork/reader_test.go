package fork

import (
	"testing"

	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice is a byte-addressable in-memory interfaces.BlockDevice.
type fakeDevice struct {
	data []byte
}

func (f *fakeDevice) ReadAt(buf []byte, offset int64) error {
	copy(buf, f.data[offset:])
	return nil
}
func (f *fakeDevice) IOBlockSize() uint32 { return 512 }
func (f *fakeDevice) Size() int64         { return int64(len(f.data)) }
func (f *fakeDevice) Close() error        { return nil }

func TestReaderReadsAcrossSingleExtent(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	dev := &fakeDevice{data: data}

	fd := types.ForkData{LogicalSize: 1024}
	fd.Extents[0] = types.ExtentDescriptor{StartBlock: 1, BlockCount: 2} // blocks 1-2, 512 bytes each

	r, err := NewReader(dev, 512, 0, 16, types.DataFork, fd, nil)
	require.NoError(t, err)

	buf := make([]byte, 100)
	n, err := r.ReadAt(buf, 50)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[512+50:512+150], buf)
}

func TestReaderReadsAcrossTwoExtents(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	dev := &fakeDevice{data: data}

	fd := types.ForkData{LogicalSize: 1024}
	fd.Extents[0] = types.ExtentDescriptor{StartBlock: 0, BlockCount: 1}
	fd.Extents[1] = types.ExtentDescriptor{StartBlock: 2, BlockCount: 1}

	r, err := NewReader(dev, 512, 0, 16, types.DataFork, fd, nil)
	require.NoError(t, err)

	buf := make([]byte, 20)
	n, err := r.ReadAt(buf, 502) // spans extent 0's tail into extent 1's head
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	var want []byte
	want = append(want, data[502:512]...)
	want = append(want, data[1024:1034]...)
	assert.Equal(t, want, buf)
}

func TestReaderTruncatesAtLogicalSize(t *testing.T) {
	dev := &fakeDevice{data: make([]byte, 4096)}
	fd := types.ForkData{LogicalSize: 100}
	fd.Extents[0] = types.ExtentDescriptor{StartBlock: 0, BlockCount: 1}

	r, err := NewReader(dev, 512, 0, 16, types.DataFork, fd, nil)
	require.NoError(t, err)

	buf := make([]byte, 50)
	n, err := r.ReadAt(buf, 80)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestReaderAppliesBaseOffset(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	dev := &fakeDevice{data: data}

	fd := types.ForkData{LogicalSize: 512}
	fd.Extents[0] = types.ExtentDescriptor{StartBlock: 0, BlockCount: 1}

	r, err := NewReader(dev, 512, 1024, 16, types.DataFork, fd, nil)
	require.NoError(t, err)

	buf := make([]byte, 10)
	n, err := r.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, data[1024:1034], buf)
}
