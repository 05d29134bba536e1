// Package fork maps a file fork's logical byte range onto device block
// ranges — walking a record's inline extent array and, once that's
// exhausted, continuation records in the Extents Overflow B-tree — and
// reads through those ranges to the underlying device.
package fork

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// DecodeExtentsOverflowKey decodes a raw Extents Overflow key, which
// splitKeyValue leaves with its 2-byte length prefix still attached.
// The on-disk layout (TN1150 HFSPlusExtentKey) is keyLength(2),
// forkType(1), pad(1), fileID(4), startBlock(4).
func DecodeExtentsOverflowKey(raw []byte) (types.ExtentsOverflowKey, error) {
	const op = "fork.DecodeExtentsOverflowKey"
	if len(raw) < 2+1+1+4+4 {
		return types.ExtentsOverflowKey{}, types.NewError(types.KindCorrupt, op, nil)
	}
	body := raw[2:] // skip key_length
	return types.ExtentsOverflowKey{
		ForkKind:   types.ForkKind(body[0]),
		FileCNID:   types.CNID(binary.BigEndian.Uint32(body[2:6])),
		StartBlock: binary.BigEndian.Uint32(body[6:10]),
	}, nil
}

// EncodeExtentsOverflowKey builds the raw on-disk key used to look up
// the continuation record that picks up a fork's extent list after
// startBlock.
func EncodeExtentsOverflowKey(forkKind types.ForkKind, fileCNID types.CNID, startBlock uint32) []byte {
	const keyLen = 1 + 1 + 4 + 4 // forkType + pad + fileID + startBlock
	buf := make([]byte, 2+keyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(keyLen))
	buf[2] = byte(forkKind)
	buf[3] = 0
	binary.BigEndian.PutUint32(buf[4:8], uint32(fileCNID))
	binary.BigEndian.PutUint32(buf[8:12], startBlock)
	return buf
}

// DecodeExtentsOverflowRecord decodes the fixed 64-byte continuation
// record: eight more extent descriptors.
func DecodeExtentsOverflowRecord(raw []byte) (types.ExtentsOverflowRecord, error) {
	const op = "fork.DecodeExtentsOverflowRecord"
	if len(raw) < 64 {
		return types.ExtentsOverflowRecord{}, types.NewError(types.KindCorrupt, op, nil)
	}
	var rec types.ExtentsOverflowRecord
	for i := 0; i < 8; i++ {
		off := i * 8
		rec.Extents[i] = types.ExtentDescriptor{
			StartBlock: binary.BigEndian.Uint32(raw[off : off+4]),
			BlockCount: binary.BigEndian.Uint32(raw[off+4 : off+8]),
		}
	}
	return rec, nil
}

// CompareExtentsOverflowKeys orders two Extents Overflow keys by
// (file_cnid, fork_kind, start_block), the fixed-field comparison
// TN1150 specifies for this tree — unlike the Catalog tree, names never
// enter into it.
func CompareExtentsOverflowKeys(a, b []byte) int {
	ka, errA := DecodeExtentsOverflowKey(a)
	kb, errB := DecodeExtentsOverflowKey(b)
	if errA != nil || errB != nil {
		return 0
	}
	if ka.FileCNID != kb.FileCNID {
		if ka.FileCNID < kb.FileCNID {
			return -1
		}
		return 1
	}
	if ka.ForkKind != kb.ForkKind {
		if ka.ForkKind < kb.ForkKind {
			return -1
		}
		return 1
	}
	if ka.StartBlock != kb.StartBlock {
		if ka.StartBlock < kb.StartBlock {
			return -1
		}
		return 1
	}
	return 0
}

// extentRuns collects a fork's full logical-to-physical mapping: the up
// to eight inline extents on the catalog record, followed by
// continuation records from the Extents Overflow tree for forks too
// fragmented to fit inline.
func extentRuns(fileCNID types.CNID, kind types.ForkKind, inline [8]types.ExtentDescriptor, overflow interfaces.BTree) ([]interfaces.ExtentRun, error) {
	var runs []interfaces.ExtentRun
	var blocksSoFar uint32
	for _, e := range inline {
		if e.IsZero() {
			break
		}
		runs = append(runs, interfaces.ExtentRun{StartBlock: e.StartBlock, BlockCount: e.BlockCount})
		blocksSoFar += e.BlockCount
	}

	if overflow == nil {
		return runs, nil
	}

	for {
		key := EncodeExtentsOverflowKey(kind, fileCNID, blocksSoFar)
		rec, err := overflow.Find(key)
		if err != nil {
			if types.Is(err, types.KindNotFound) {
				return runs, nil
			}
			return nil, err
		}
		cont, err := DecodeExtentsOverflowRecord(rec.Value)
		if err != nil {
			return nil, err
		}
		appended := false
		for _, e := range cont.Extents {
			if e.IsZero() {
				break
			}
			runs = append(runs, interfaces.ExtentRun{StartBlock: e.StartBlock, BlockCount: e.BlockCount})
			blocksSoFar += e.BlockCount
			appended = true
		}
		if !appended {
			return runs, nil
		}
	}
}
