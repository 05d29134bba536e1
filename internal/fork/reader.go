package fork

import (
	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// Reader implements interfaces.Fork over a device, resolving a fork's
// extent list once at construction and serving ReadAt by walking that
// list the way the original driver's block_map/macosx_decode_path does:
// binary-search-free linear extent scan, since forks rarely hold more
// than a handful of fragments.
type Reader struct {
	dev       interfaces.BlockDevice
	blockSize uint32
	baseOff   int64 // device byte offset of the volume's allocation block 0
	logical   int64
	runs      []interfaces.ExtentRun
}

// NewReader resolves fd's extent list (inline plus any Extents
// Overflow continuation records) and returns a Reader bound to dev.
// baseOff is the device-relative byte offset of the volume's first
// allocation block, accounting for any wrapper/partition offset.
func NewReader(dev interfaces.BlockDevice, blockSize uint32, baseOff int64, fileCNID types.CNID, kind types.ForkKind, fd types.ForkData, overflow interfaces.BTree) (*Reader, error) {
	runs, err := extentRuns(fileCNID, kind, fd.Extents, overflow)
	if err != nil {
		return nil, err
	}
	return &Reader{
		dev:       dev,
		blockSize: blockSize,
		baseOff:   baseOff,
		logical:   int64(fd.LogicalSize),
		runs:      runs,
	}, nil
}

func (r *Reader) Extents() ([]interfaces.ExtentRun, error) { return r.runs, nil }

func (r *Reader) LogicalSize() int64 { return r.logical }

// ReadAt reads up to len(buf) bytes starting at the fork-logical
// offset, translating each covered range of the request into one or
// more device-offset reads across the fork's extents.
func (r *Reader) ReadAt(buf []byte, offset int64) (int, error) {
	const op = "fork.Reader.ReadAt"
	if offset < 0 {
		return 0, types.NewError(types.KindCorrupt, op, nil)
	}
	if offset >= r.logical {
		return 0, nil
	}
	want := len(buf)
	if int64(want) > r.logical-offset {
		want = int(r.logical - offset)
	}

	total := 0
	cursor := offset
	bs := int64(r.blockSize)

	for total < want {
		run, runStartByte, ok := r.locate(cursor)
		if !ok {
			return total, types.NewError(types.KindCorrupt, op, nil)
		}
		runEndByte := runStartByte + int64(run.BlockCount)*bs
		avail := runEndByte - cursor
		n := int64(want - total)
		if n > avail {
			n = avail
		}
		devOff := r.baseOff + int64(run.StartBlock)*bs + (cursor - runStartByte)
		if err := r.dev.ReadAt(buf[total:int64(total)+n], devOff); err != nil {
			return total, types.NewError(types.KindIO, op, err)
		}
		total += int(n)
		cursor += n
	}

	return total, nil
}

// locate finds the extent run covering fork-logical byte off, along
// with that run's own starting logical byte offset.
func (r *Reader) locate(off int64) (interfaces.ExtentRun, int64, bool) {
	bs := int64(r.blockSize)
	var runStart int64
	for _, run := range r.runs {
		runLen := int64(run.BlockCount) * bs
		if off < runStart+runLen {
			return run, runStart, true
		}
		runStart += runLen
	}
	return interfaces.ExtentRun{}, 0, false
}
