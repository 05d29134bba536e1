// Package hfsunicode implements the three Unicode concerns HFS+ gets
// wrong on purpose relative to the rest of the ecosystem: UTF-16/UTF-8
// transcoding bounded to on-disk name lengths, Apple's variant of
// Unicode Normalization Form D, and the fixed case-folding table used to
// compare catalog keys. None of this is interchangeable with a generic
// normalization library — see DESIGN.md.
package hfsunicode

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/0x09/go-hfsplus/internal/types"
)

// MaxNameUnits is the longest name HFS+ permits, in UTF-16 code units.
const MaxNameUnits = 255

// MaxUTF8Bytes bounds the expansion of a MaxNameUnits name to UTF-8.
const MaxUTF8Bytes = 512

// utf16BE is the big-endian UTF-16 codec used for the raw transcoding
// step of every name conversion in this package. Catalog keys are
// already split into on-disk code units, so callers go through
// unitsToBytes/bytesToUnits around this codec rather than feeding it a
// []uint16 directly.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func unitsToBytes(units []uint16) []byte {
	b := make([]byte, len(units)*2)
	for i, u := range units {
		b[i*2] = byte(u >> 8)
		b[i*2+1] = byte(u)
	}
	return b
}

func bytesToUnits(b []byte) []uint16 {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[i*2])<<8 | uint16(b[i*2+1])
	}
	return units
}

// DecodeName converts an on-disk UTF-16BE name (already split into code
// units) to a UNIX-facing UTF-8 pathname component, mapping the on-disk
// '/' separator to ':' per TN1150.
func DecodeName(units []uint16) (string, error) {
	const op = "hfsunicode.DecodeName"
	if len(units) > MaxNameUnits {
		return "", types.NewError(types.KindInvalidName, op, nil)
	}
	if countValidRunes(units) < 0 {
		return "", types.NewError(types.KindInvalidName, op, errUnpairedSurrogate)
	}

	utf8Bytes, err := utf16BE.NewDecoder().Bytes(unitsToBytes(units))
	if err != nil {
		return "", types.NewError(types.KindInvalidName, op, err)
	}

	runes := []rune(string(utf8Bytes))
	for i, r := range runes {
		if r == '/' {
			runes[i] = ':'
		}
	}
	return string(runes), nil
}

// countValidRunes reports how many runes a fully valid sequence would
// decode to, returning -1 on an unpaired surrogate. The x/text UTF-16
// decoder silently substitutes U+FFFD for unpaired surrogates rather
// than erroring, so this pass over the raw code units runs first to
// detect them ourselves.
func countValidRunes(units []uint16) int {
	n := 0
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF {
			if i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF {
				i++
			} else {
				return -1
			}
		} else if u >= 0xDC00 && u <= 0xDFFF {
			return -1
		}
		n++
	}
	return n
}

var errUnpairedSurrogate = unpairedSurrogateError{}

type unpairedSurrogateError struct{}

func (unpairedSurrogateError) Error() string { return "unpaired UTF-16 surrogate" }

// EncodeName converts a UNIX-facing UTF-8 pathname component to on-disk
// UTF-16BE code units, mapping ':' back to '/' per TN1150. The input is
// NOT normalized here — callers that need HFS+ NFD call NFD first.
func EncodeName(s string) ([]uint16, error) {
	const op = "hfsunicode.EncodeName"

	runes := []rune(s)
	for i, r := range runes {
		if r == ':' {
			runes[i] = '/'
		}
	}

	b, err := utf16BE.NewEncoder().Bytes([]byte(string(runes)))
	if err != nil {
		return nil, types.NewError(types.KindInvalidName, op, err)
	}
	if len(b)%2 != 0 {
		return nil, types.NewError(types.KindInvalidName, op, nil)
	}
	units := bytesToUnits(b)
	if len(units) > MaxNameUnits {
		return nil, types.NewError(types.KindInvalidName, op, lengthError{len(units)})
	}
	return units, nil
}

type lengthError struct{ n int }

func (e lengthError) Error() string { return "name exceeds 255 UTF-16 code units" }
