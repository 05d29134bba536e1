package hfsunicode

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	units := utf16.Encode([]rune("hello world"))
	name, err := DecodeName(units)
	require.NoError(t, err)
	assert.Equal(t, "hello world", name)

	back, err := EncodeName(name)
	require.NoError(t, err)
	assert.Equal(t, units, back)
}

func TestDecodeNameColonSlashMapping(t *testing.T) {
	// On-disk '/' surfaces to UNIX callers as ':'.
	units := utf16.Encode([]rune("a/b"))
	name, err := DecodeName(units)
	require.NoError(t, err)
	assert.Equal(t, "a:b", name)
}

func TestEncodeNameSlashColonMapping(t *testing.T) {
	// UNIX-side ':' maps back to on-disk '/'.
	units, err := EncodeName("a:b")
	require.NoError(t, err)
	assert.Equal(t, utf16.Encode([]rune("a/b")), units)
}

func TestDecodeNameUnpairedSurrogate(t *testing.T) {
	units := []uint16{0xD800} // high surrogate with no pair
	_, err := DecodeName(units)
	require.Error(t, err)
}

func TestNFDIdempotent(t *testing.T) {
	s := "café" // decomposed "café"
	once := NFD(s)
	twice := NFD(once)
	assert.Equal(t, once, twice)
}

func TestNFDPrecomposedDecomposes(t *testing.T) {
	precomposed := "café" // "café" with precomposed é
	decomposed := "café" // "e" + combining acute accent
	assert.Equal(t, NFD(decomposed), NFD(precomposed))
}

func TestNFDExcludesCompatibilityIdeographRange(t *testing.T) {
	// U+F900 is in the decomposition-exclusion range: it has a canonical
	// decomposition in standard Unicode but must pass through unchanged
	// under HFS+'s variant.
	s := string(rune(0xF900))
	assert.Equal(t, s, NFD(s))
}

func TestCompareKeysOrdersByParentFirst(t *testing.T) {
	a := utf16.Encode([]rune("zzz"))
	b := utf16.Encode([]rune("aaa"))
	assert.Less(t, CompareKeys(2, 3, a, b, false), 0)
}

func TestCompareKeysCaseFolding(t *testing.T) {
	a := utf16.Encode([]rune("FILE"))
	b := utf16.Encode([]rune("file"))
	assert.Equal(t, 0, CompareKeys(2, 2, a, b, false))
	assert.NotEqual(t, 0, CompareKeys(2, 2, a, b, true))
}
