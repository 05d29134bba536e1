package catalog

import (
	"testing"

	"github.com/0x09/go-hfsplus/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEncodeDecodeRoundTrip(t *testing.T) {
	name, err := unitsOf("hello")
	require.NoError(t, err)

	raw := EncodeKey(types.CNID(42), name)
	key, err := DecodeKey(raw)
	require.NoError(t, err)
	assert.Equal(t, types.CNID(42), key.ParentCNID)
	assert.Equal(t, name, key.Name)
}

func TestKeyThreadKeyHasEmptyName(t *testing.T) {
	raw := EncodeKey(types.CNID(2), nil)
	key, err := DecodeKey(raw)
	require.NoError(t, err)
	assert.True(t, key.IsThreadKey())
}

func TestCompareFuncOrdersByParentThenName(t *testing.T) {
	cmp := CompareFunc(false)
	a, _ := unitsOf("alpha")
	b, _ := unitsOf("beta")
	keyA := EncodeKey(1, a)
	keyB := EncodeKey(1, b)
	keyC := EncodeKey(2, a)

	assert.Equal(t, -1, cmp(keyA, keyB))
	assert.Equal(t, 1, cmp(keyB, keyA))
	assert.Equal(t, -1, cmp(keyA, keyC))
}

func TestCompareFuncCaseFoldsByDefault(t *testing.T) {
	cmp := CompareFunc(false)
	lower, _ := unitsOf("readme")
	upper, _ := unitsOf("README")
	assert.Equal(t, 0, cmp(EncodeKey(1, lower), EncodeKey(1, upper)))
}

func TestCompareFuncCaseSensitiveModeDistinguishes(t *testing.T) {
	cmp := CompareFunc(true)
	lower, _ := unitsOf("readme")
	upper, _ := unitsOf("README")
	assert.NotEqual(t, 0, cmp(EncodeKey(1, lower), EncodeKey(1, upper)))
}

func unitsOf(s string) ([]uint16, error) {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		units = append(units, uint16(r))
	}
	return units, nil
}

func TestDecodeRecordDispatchesOnType(t *testing.T) {
	folderBuf := make([]byte, 88)
	folderBuf[1] = byte(types.RecTypeFolder)
	rec, err := DecodeRecord(folderBuf)
	require.NoError(t, err)
	assert.True(t, rec.IsFolder())

	fileBuf := make([]byte, 248)
	fileBuf[1] = byte(types.RecTypeFile)
	rec, err = DecodeRecord(fileBuf)
	require.NoError(t, err)
	assert.True(t, rec.IsFile())
}

func TestDecodeRecordRejectsUnknownType(t *testing.T) {
	buf := make([]byte, 10)
	buf[1] = 0x7F
	_, err := DecodeRecord(buf)
	assert.Error(t, err)
}
