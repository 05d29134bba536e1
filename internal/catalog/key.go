// Package catalog decodes Catalog B-tree records and implements the
// lookup, enumeration, and hard-link resolution operations the resolver
// and public API build on.
package catalog

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/hfsunicode"
	"github.com/0x09/go-hfsplus/internal/types"
)

// DecodeKey decodes a raw Catalog key, which splitKeyValue leaves with
// its 2-byte key_length prefix still attached: keyLength(2),
// parentID(4), nameLength(2), name(nameLength * 2 bytes, UTF-16BE).
func DecodeKey(raw []byte) (types.CatalogKey, error) {
	const op = "catalog.DecodeKey"
	if len(raw) < 2+4+2 {
		return types.CatalogKey{}, types.NewError(types.KindCorrupt, op, nil)
	}
	body := raw[2:]
	parent := types.CNID(binary.BigEndian.Uint32(body[0:4]))
	nameLen := int(binary.BigEndian.Uint16(body[4:6]))
	if 6+nameLen*2 > len(body) {
		return types.CatalogKey{}, types.NewError(types.KindCorrupt, op, nil)
	}
	name := make([]uint16, nameLen)
	for i := 0; i < nameLen; i++ {
		name[i] = binary.BigEndian.Uint16(body[6+i*2:])
	}
	return types.CatalogKey{ParentCNID: parent, Name: name}, nil
}

// EncodeKey builds the raw on-disk key (including its length prefix,
// padded to an even boundary) for parent/name.
func EncodeKey(parent types.CNID, name []uint16) []byte {
	bodyLen := 4 + 2 + len(name)*2
	buf := make([]byte, 2+bodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(bodyLen))
	binary.BigEndian.PutUint32(buf[2:6], uint32(parent))
	binary.BigEndian.PutUint16(buf[6:8], uint16(len(name)))
	for i, u := range name {
		binary.BigEndian.PutUint16(buf[8+i*2:], u)
	}
	return buf
}

// CompareFunc returns a KeyCompareFunc bound to caseSensitive (true for
// an HFSX volume, false for HFS+'s default case-folding comparison).
func CompareFunc(caseSensitive bool) func(a, b []byte) int {
	return func(a, b []byte) int {
		ka, errA := DecodeKey(a)
		kb, errB := DecodeKey(b)
		if errA != nil || errB != nil {
			return 0
		}
		return hfsunicode.CompareKeys(ka.ParentCNID, kb.ParentCNID, ka.Name, kb.Name, caseSensitive)
	}
}
