// Package container locates the HFS+ Volume Header inside whatever
// container the raw device actually holds: a bare volume, an HFS
// wrapper (a plain-HFS MDB pointing at an embedded HFS+ volume), or a
// partition map. Detection mirrors the teacher's DMG offset-probing
// approach in internal/disk — try the cheap, well-known cases first,
// fall back to a configured default.
package container

import (
	"encoding/binary"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// apmSignature is the 2-byte signature ("PM") at the start of an Apple
// Partition Map entry.
const apmSignature = 0x504D

// DetectOffset returns the device byte offset at which the HFS+ volume
// starts (its Volume Header lies 1024 bytes further in), trying in order: a bare volume at device offset 0, an HFS
// wrapper's embedded-volume extent, and an Apple Partition Map's
// "Apple_HFS" entry. defaultOffset is returned unexamined if none of
// those is found, so a caller can still force a known offset via
// config.
func DetectOffset(dev interfaces.BlockDevice, defaultOffset int64) (int64, error) {
	if off, ok, err := probeBareVolume(dev); err != nil {
		return 0, err
	} else if ok {
		return off, nil
	}

	if off, ok, err := probeHFSWrapper(dev); err != nil {
		return 0, err
	} else if ok {
		return off, nil
	}

	if off, ok, err := probeAPM(dev); err != nil {
		return 0, err
	} else if ok {
		return off, nil
	}

	return defaultOffset, nil
}

func readHeaderSignature(dev interfaces.BlockDevice, offset int64) (uint16, error) {
	buf := make([]byte, 2)
	if err := dev.ReadAt(buf, offset); err != nil {
		return 0, types.NewError(types.KindIO, "container.readHeaderSignature", err)
	}
	return binary.BigEndian.Uint16(buf), nil
}

// probeBareVolume checks for an H+/HX signature at the fixed Volume
// Header offset with no wrapper in front of it.
func probeBareVolume(dev interfaces.BlockDevice) (int64, bool, error) {
	const headerOffset = 1024
	sig, err := readHeaderSignature(dev, headerOffset)
	if err != nil {
		return 0, false, err
	}
	return 0, sig == types.SignatureHFSPlus || sig == types.SignatureHFSX, nil
}

// probeHFSWrapper checks for a plain-HFS MDB ("BD" signature) at
// offset 1024 whose drEmbedSigWord names an embedded HFS+ volume, and
// if so decodes the wrapper's embedded-volume extent to locate it.
// The wrapper MDB layout (drAlBlkSiz, drAlBlSt, drEmbedExtent) is per
// Inside Macintosh: Files; only the fields needed to resolve the
// embedded extent are read.
func probeHFSWrapper(dev interfaces.BlockDevice) (int64, bool, error) {
	const wrapperOffset = 1024
	buf := make([]byte, 162)
	if err := dev.ReadAt(buf, wrapperOffset); err != nil {
		return 0, false, types.NewError(types.KindIO, "container.probeHFSWrapper", err)
	}
	sig := binary.BigEndian.Uint16(buf[0:2])
	if sig != types.SignatureHFS {
		return 0, false, nil
	}

	alBlkSiz := binary.BigEndian.Uint32(buf[20:24])
	alBlSt := binary.BigEndian.Uint16(buf[28:30])

	embedSig := binary.BigEndian.Uint16(buf[124:126])
	if embedSig != types.SignatureHFSPlus && embedSig != types.SignatureHFSX {
		return 0, false, nil
	}
	embedStartBlock := binary.BigEndian.Uint16(buf[126:128])

	embeddedOffset := int64(alBlSt)*512 + int64(embedStartBlock)*int64(alBlkSiz)
	return embeddedOffset, true, nil
}

// probeAPM scans the first few Apple Partition Map entries (512 bytes
// each, starting at block 1) for an "Apple_HFS" partition and returns
// its starting byte offset.
func probeAPM(dev interfaces.BlockDevice) (int64, bool, error) {
	const blockSize = 512
	const maxEntries = 64

	for i := int64(1); i <= maxEntries; i++ {
		buf := make([]byte, blockSize)
		if err := dev.ReadAt(buf, i*blockSize); err != nil {
			return 0, false, nil // past end of device or unreadable: stop scanning, not fatal
		}
		sig := binary.BigEndian.Uint16(buf[0:2])
		if sig != apmSignature {
			if i == 1 {
				return 0, false, nil // no partition map at all
			}
			continue
		}
		partType := string(buf[48:80])
		if containsHFS(partType) {
			startBlock := binary.BigEndian.Uint32(buf[8:12])
			return int64(startBlock) * blockSize, true, nil
		}
	}
	return 0, false, nil
}

func containsHFS(partType string) bool {
	for i := 0; i+9 <= len(partType); i++ {
		if partType[i:i+9] == "Apple_HFS" {
			return true
		}
	}
	return false
}
