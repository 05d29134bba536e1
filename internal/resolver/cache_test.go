package resolver

import (
	"strconv"
	"testing"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCacheLookupMiss(t *testing.T) {
	c := newRecordCache()
	_, _, ok := c.lookup("/nope")
	assert.False(t, ok)
}

func TestRecordCacheAddThenLookup(t *testing.T) {
	c := newRecordCache()
	rec := interfaces.CatalogRecord{Type: types.RecTypeFile, File: &types.FileRecord{CNID: 42}}
	key := types.CatalogKey{ParentCNID: 2, Name: []uint16{'a'}}

	c.add("/a", rec, key)

	got, gotKey, ok := c.lookup("/a")
	require.True(t, ok)
	assert.Equal(t, types.CNID(42), got.CNID())
	assert.Equal(t, key, gotKey)
}

func TestRecordCacheEvictsOldestAtCapacity(t *testing.T) {
	c := newRecordCache()
	for i := 0; i < ringCapacity; i++ {
		path := "/" + strconv.Itoa(i)
		c.add(path, interfaces.CatalogRecord{Type: types.RecTypeFile, File: &types.FileRecord{CNID: types.CNID(i)}}, types.CatalogKey{})
	}
	_, _, ok := c.lookup("/0")
	require.True(t, ok, "first entry should still be cached, one slot short of eviction")

	c.add("/overflow", interfaces.CatalogRecord{Type: types.RecTypeFile, File: &types.FileRecord{CNID: 9999}}, types.CatalogKey{})

	_, _, ok = c.lookup("/0")
	assert.False(t, ok, "oldest entry should have been evicted to make room")

	_, _, ok = c.lookup("/overflow")
	assert.True(t, ok)
}
