// Package btree implements the generic HFS+ B-tree walker that backs
// the Catalog, Extents Overflow, and (lazily) Attributes trees: fixed
// node-size pages with a record-offset table stored back-to-front at
// the node's tail, sibling links, and pluggable key comparison.
package btree

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/types"
)

// Node is one decoded node_size-byte page: a descriptor, a sequence of
// variable-length records, and the offset table that locates them,
// stored back-to-front at the node's tail: record 0's offset is the
// node's last two bytes, record 1's offset the two bytes before that,
// and so on, with the free-space sentinel occupying the lowest address
// of the table.
type Node struct {
	Descriptor types.BTreeNodeDescriptor
	raw        []byte
	offsets    []uint16 // NumRecords+1 entries: offsets[0] is record 0's start, offsets[len-1] is the free-space sentinel, strictly increasing
}

// ParseNode decodes a raw node_size-byte page. The record-offset table
// lives at the very end of the node in reverse record order — record
// i's start offset is the uint16 at raw[len(raw)-2-2*i:] — with a final
// sentinel at the table's lowest address marking the start of free
// space; spec §3 requires the reassembled offsets slice be strictly
// monotonic and bounded by node_size — both are checked here so a
// corrupt node fails fast instead of producing garbage slices.
func ParseNode(raw []byte, op string) (*Node, error) {
	if len(raw) < 14 {
		return nil, types.NewError(types.KindCorrupt, op, nil)
	}
	d := types.BTreeNodeDescriptor{
		FLink:      binary.BigEndian.Uint32(raw[0:4]),
		BLink:      binary.BigEndian.Uint32(raw[4:8]),
		Kind:       types.BTreeNodeKind(int8(raw[8])),
		Height:     raw[9],
		NumRecords: binary.BigEndian.Uint16(raw[10:12]),
	}

	n := &Node{Descriptor: d, raw: raw}

	count := int(d.NumRecords) + 1
	tableBytes := count * 2
	if tableBytes > len(raw) {
		return nil, types.NewError(types.KindCorrupt, op, nil)
	}
	offsets := make([]uint16, count)
	for i := 0; i < count; i++ {
		offsets[i] = binary.BigEndian.Uint16(raw[len(raw)-2-2*i:])
	}
	for i := 0; i < len(offsets)-1; i++ {
		if offsets[i] >= offsets[i+1] || int(offsets[i+1]) > len(raw) {
			return nil, types.NewError(types.KindCorrupt, op, nil)
		}
	}
	n.offsets = offsets
	return n, nil
}

// IsLeaf reports whether this node's records are (key, value) leaf
// payloads rather than (key, child node number) index pointers.
func (n *Node) IsLeaf() bool { return n.Descriptor.Kind == types.BTNodeLeaf }

// IsIndex reports whether this node's records point at child nodes.
func (n *Node) IsIndex() bool { return n.Descriptor.Kind == types.BTNodeIndex }

// NumRecords returns the number of records this node holds.
func (n *Node) NumRecords() int { return int(n.Descriptor.NumRecords) }

// RecordBytes returns the raw bytes of record i, the half-open slice
// between its offset-table entry and the next one.
func (n *Node) RecordBytes(i int) ([]byte, error) {
	if i < 0 || i+1 >= len(n.offsets) {
		return nil, types.NewError(types.KindCorrupt, "btree.Node.RecordBytes", nil)
	}
	return n.raw[n.offsets[i]:n.offsets[i+1]], nil
}
