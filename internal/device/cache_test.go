package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice is a simple in-memory interfaces.BlockDevice for exercising
// the cache without touching the filesystem.
type fakeDevice struct {
	data  []byte
	bs    uint32
	reads int
}

func (f *fakeDevice) ReadAt(buf []byte, offset int64) error {
	f.reads++
	n := copy(buf, f.data[offset:])
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}
func (f *fakeDevice) IOBlockSize() uint32 { return f.bs }
func (f *fakeDevice) Size() int64         { return int64(len(f.data)) }
func (f *fakeDevice) Close() error        { return nil }

func TestCachingDeviceHitsOnRepeatedRead(t *testing.T) {
	data := make([]byte, 4096*8)
	for i := range data {
		data[i] = byte(i)
	}
	fd := &fakeDevice{data: data, bs: 512}
	cd := NewCachingDevice(fd, Config{CacheEnabled: true, SmallItems: 4, GraceBlocks: 0})

	buf := make([]byte, 512)
	require.NoError(t, cd.ReadAt(buf, 0))
	require.NoError(t, cd.ReadAt(buf, 0))

	cache := cd.(*CachingDevice)
	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestCachingDeviceEvictsOldest(t *testing.T) {
	data := make([]byte, 512*10)
	fd := &fakeDevice{data: data, bs: 512}
	cd := NewCachingDevice(fd, Config{CacheEnabled: true, SmallItems: 2, GraceBlocks: 0}).(*CachingDevice)

	buf := make([]byte, 512)
	require.NoError(t, cd.ReadAt(buf, 0))
	require.NoError(t, cd.ReadAt(buf, 512))
	require.NoError(t, cd.ReadAt(buf, 1024)) // evicts offset 0

	stats := cd.Stats()
	assert.Equal(t, 2, stats.Items)
}

func TestCachingDeviceBypassesLargeReads(t *testing.T) {
	data := make([]byte, 8192)
	fd := &fakeDevice{data: data, bs: 512}
	cd := NewCachingDevice(fd, Config{CacheEnabled: true, SmallItems: 4, GraceBlocks: 0})

	buf := make([]byte, 4096)
	require.NoError(t, cd.ReadAt(buf, 0))
	assert.Equal(t, 1, fd.reads)
}

func TestNewCachingDeviceDisabled(t *testing.T) {
	fd := &fakeDevice{data: make([]byte, 512), bs: 512}
	cd := NewCachingDevice(fd, Config{CacheEnabled: false})
	_, ok := cd.(*CachingDevice)
	assert.False(t, ok)
}
