package btree

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/types"
)

// splitKeyValue splits one record's raw bytes into its key and value
// portions. HFS+ variable-length keys are prefixed by a big-endian
// uint16 key_length that does not include itself; the key is padded to
// an even boundary before the value begins.
func splitKeyValue(rec []byte) (key, value []byte, err error) {
	if len(rec) < 2 {
		return nil, nil, types.NewError(types.KindCorrupt, "btree.splitKeyValue", nil)
	}
	keyLen := binary.BigEndian.Uint16(rec[0:2])
	keyEnd := 2 + int(keyLen)
	if keyEnd > len(rec) {
		return nil, nil, types.NewError(types.KindCorrupt, "btree.splitKeyValue", nil)
	}
	key = rec[0:keyEnd]
	valueStart := keyEnd
	if valueStart%2 != 0 {
		valueStart++ // padding byte between key and value
	}
	if valueStart > len(rec) {
		return nil, nil, types.NewError(types.KindCorrupt, "btree.splitKeyValue", nil)
	}
	value = rec[valueStart:]
	return key, value, nil
}

// indexChildNode reads the child node number out of an index record's
// value, which is always a single big-endian uint32 regardless of key
// length.
func indexChildNode(value []byte) (uint32, error) {
	if len(value) < 4 {
		return 0, types.NewError(types.KindCorrupt, "btree.indexChildNode", nil)
	}
	return binary.BigEndian.Uint32(value[0:4]), nil
}
