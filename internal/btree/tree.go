package btree

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// Tree is the generic HFS+ B-tree walker described in spec §4.4. It
// holds no state beyond the parsed header record and its fork reader;
// every call re-descends from the root, so a Tree is safe to share
// across goroutines as long as ForkReader is.
type Tree struct {
	fork    interfaces.ForkReader
	header  types.BTreeHeaderRecord
	compare interfaces.KeyCompareFunc
}

// Open reads the header node (node 0) and validates it, returning a
// Tree ready for Find/FindFirstGE. compare orders two raw on-disk keys
// for this tree (catalog, extents overflow, or attributes each supply
// their own).
func Open(fork interfaces.ForkReader, compare interfaces.KeyCompareFunc) (*Tree, error) {
	const op = "btree.Open"

	// The node's own record-offset table lives at its tail, whose
	// location depends on the real node_size — unknown until the
	// header record is decoded. But the header record always starts
	// immediately after the 14-byte node descriptor regardless of
	// node_size, so it can be read directly without going through the
	// offset table at all.
	probe := make([]byte, 14+106)
	if _, err := fork.ReadAt(probe, 0); err != nil {
		return nil, types.NewError(types.KindIO, op, err)
	}
	kind := types.BTreeNodeKind(int8(probe[8]))
	if kind != types.BTNodeHeader {
		return nil, types.NewError(types.KindCorrupt, op, nil)
	}
	hdr, err := decodeHeaderRecord(probe[14:])
	if err != nil {
		return nil, err
	}

	return &Tree{fork: fork, header: hdr, compare: compare}, nil
}

func decodeHeaderRecord(b []byte) (types.BTreeHeaderRecord, error) {
	var h types.BTreeHeaderRecord
	if len(b) < 106 {
		return h, types.NewError(types.KindCorrupt, "btree.decodeHeaderRecord", nil)
	}
	h.TreeDepth = binary.BigEndian.Uint16(b[0:2])
	h.RootNode = binary.BigEndian.Uint32(b[2:6])
	h.LeafRecords = binary.BigEndian.Uint32(b[6:10])
	h.FirstLeafNode = binary.BigEndian.Uint32(b[10:14])
	h.LastLeafNode = binary.BigEndian.Uint32(b[14:18])
	h.NodeSize = binary.BigEndian.Uint16(b[18:20])
	h.MaxKeyLength = binary.BigEndian.Uint16(b[20:22])
	h.TotalNodes = binary.BigEndian.Uint32(b[22:26])
	h.FreeNodes = binary.BigEndian.Uint32(b[26:30])
	h.Reserved1 = binary.BigEndian.Uint16(b[30:32])
	h.ClumpSize = binary.BigEndian.Uint32(b[32:36])
	h.BTreeType = b[36]
	h.KeyCompareType = b[37]
	h.Attributes = binary.BigEndian.Uint32(b[38:42])
	if h.NodeSize == 0 || h.NodeSize&(h.NodeSize-1) != 0 {
		return h, types.NewError(types.KindCorrupt, "btree.decodeHeaderRecord", nil)
	}
	return h, nil
}

func (t *Tree) NodeSize() uint32 { return uint32(t.header.NodeSize) }

func (t *Tree) Header() types.BTreeHeaderRecord { return t.header }

// fetchNode performs the node_size-byte logical read for node number n
// and parses it. Node fetch always goes through the fork reader; the
// engine caches nothing, per spec §4.4 — caching is the device layer's
// concern.
func (t *Tree) fetchNode(n uint32) (*Node, error) {
	buf := make([]byte, t.header.NodeSize)
	off := int64(n) * int64(t.header.NodeSize)
	read, err := t.fork.ReadAt(buf, off)
	if err != nil {
		return nil, types.NewError(types.KindIO, "btree.fetchNode", err)
	}
	if read < len(buf) {
		return nil, types.NewError(types.KindIO, "btree.fetchNode", nil)
	}
	return ParseNode(buf, "btree.fetchNode")
}

// descend walks from the root to the leaf that would contain key,
// picking at each index node the rightmost child whose separator key is
// less than or equal to the target, per spec §4.4.
func (t *Tree) descend(key []byte) (*Node, error) {
	nodeNum := t.header.RootNode
	for {
		node, err := t.fetchNode(nodeNum)
		if err != nil {
			return nil, err
		}
		if node.IsLeaf() {
			return node, nil
		}
		if !node.IsIndex() {
			return nil, types.NewError(types.KindCorrupt, "btree.descend", nil)
		}

		chosen := uint32(0)
		found := false
		for i := 0; i < node.NumRecords(); i++ {
			rec, err := node.RecordBytes(i)
			if err != nil {
				return nil, err
			}
			k, v, err := splitKeyValue(rec)
			if err != nil {
				return nil, err
			}
			if t.compare(k, key) <= 0 {
				child, err := indexChildNode(v)
				if err != nil {
					return nil, err
				}
				chosen = child
				found = true
			} else {
				break
			}
		}
		if !found {
			// Target precedes every key in this index node: descend via
			// the first child, matching a B-tree's leftmost-child rule.
			if node.NumRecords() == 0 {
				return nil, types.NewError(types.KindCorrupt, "btree.descend", nil)
			}
			rec, err := node.RecordBytes(0)
			if err != nil {
				return nil, err
			}
			_, v, err := splitKeyValue(rec)
			if err != nil {
				return nil, err
			}
			chosen, err = indexChildNode(v)
			if err != nil {
				return nil, err
			}
		}
		nodeNum = chosen
	}
}

// Find descends to the leaf that would contain key and scans its
// record-offset table for an exact match.
func (t *Tree) Find(key []byte) (interfaces.BTreeRecord, error) {
	leaf, err := t.descend(key)
	if err != nil {
		return interfaces.BTreeRecord{}, err
	}
	for i := 0; i < leaf.NumRecords(); i++ {
		rec, err := leaf.RecordBytes(i)
		if err != nil {
			return interfaces.BTreeRecord{}, err
		}
		k, v, err := splitKeyValue(rec)
		if err != nil {
			return interfaces.BTreeRecord{}, err
		}
		if t.compare(k, key) == 0 {
			return interfaces.BTreeRecord{Key: k, Value: v}, nil
		}
	}
	return interfaces.BTreeRecord{}, types.NewError(types.KindNotFound, "btree.Find", nil)
}

// FindFirstGE descends to the leaf that would contain key and returns
// an iterator positioned at the first record whose key is >= key.
func (t *Tree) FindFirstGE(key []byte) (interfaces.Iterator, error) {
	leaf, err := t.descend(key)
	if err != nil {
		return nil, err
	}
	idx := 0
	for idx < leaf.NumRecords() {
		rec, err := leaf.RecordBytes(idx)
		if err != nil {
			return nil, err
		}
		k, _, err := splitKeyValue(rec)
		if err != nil {
			return nil, err
		}
		if t.compare(k, key) >= 0 {
			break
		}
		idx++
	}
	return &leafIterator{tree: t, node: leaf, idx: idx}, nil
}

// leafIterator walks forward across leaf sibling links, terminating
// when the forward link reaches zero, per spec §4.4.
type leafIterator struct {
	tree *Tree
	node *Node
	idx  int
}

func (it *leafIterator) Next() (interfaces.BTreeRecord, bool, error) {
	for {
		if it.idx < it.node.NumRecords() {
			rec, err := it.node.RecordBytes(it.idx)
			if err != nil {
				return interfaces.BTreeRecord{}, false, err
			}
			it.idx++
			k, v, err := splitKeyValue(rec)
			if err != nil {
				return interfaces.BTreeRecord{}, false, err
			}
			return interfaces.BTreeRecord{Key: k, Value: v}, true, nil
		}
		if it.node.Descriptor.FLink == 0 {
			return interfaces.BTreeRecord{}, false, nil
		}
		next, err := it.tree.fetchNode(it.node.Descriptor.FLink)
		if err != nil {
			return interfaces.BTreeRecord{}, false, err
		}
		it.node = next
		it.idx = 0
	}
}
