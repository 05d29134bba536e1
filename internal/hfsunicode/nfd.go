package hfsunicode

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// inRange reports whether a codepoint participates in HFS+'s variant of
// NFD. Per Apple TN Q&A 1173, HFS+ decomposes U+0000..U+FFFF except for
// U+2000..U+2FFF and U+F900..U+FAFF; codepoints above the BMP are passed
// through untouched and do not participate in combining-class reordering
// either, even when adjacent to an in-range codepoint.
func inRange(r rune) bool {
	if r < 0x0000 || r > 0xFFFF {
		return false
	}
	if r >= 0x2000 && r <= 0x2FFF {
		return false
	}
	if r >= 0xF900 && r <= 0xFAFF {
		return false
	}
	return true
}

// NFD applies HFS+'s variant of Unicode Normalization Form D to s. This
// deliberately does not call norm.NFD.String(s): that would decompose
// and reorder every codepoint per standard Unicode rules, which disagrees
// with HFS+ on the excluded ranges above and on non-BMP codepoints. We
// instead use norm's per-codepoint canonical decomposition and combining
// class as primitives (the Go equivalent of utf8proc_decompose_char),
// applying them only to in-range codepoints, mirroring
// hfs_utf8proc_NFD/sort_combining_characters in the original C driver.
func NFD(s string) string {
	runes := decomposeInRange(s)
	sortCombiningClasses(runes)
	return string(runes)
}

func decomposeInRange(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if !inRange(r) {
			out = append(out, r)
			continue
		}
		props := norm.NFD.Properties([]byte(string(r)))
		dec := props.Decomposition()
		if dec == nil {
			out = append(out, r)
			continue
		}
		for j := 0; j < len(dec); {
			dr, dsize := utf8.DecodeRune(dec[j:])
			j += dsize
			out = append(out, dr)
		}
	}
	return out
}

// sortCombiningClasses performs the same bounded bubble-pass the
// original C driver does: adjacent in-range codepoints are swapped when
// the left one's combining class outranks the right one's nonzero
// combining class. Out-of-range codepoints are never moved and act as a
// barrier — reorderings never cross them.
func sortCombiningClasses(runes []rune) {
	n := len(runes)
	if n <= 1 {
		return
	}
	ccc := make([]uint8, n)
	for i, r := range runes {
		if inRange(r) {
			ccc[i] = norm.NFD.Properties([]byte(string(r))).CCC()
		}
	}

	for i := 0; i < n-1; i++ {
		rclass := ccc[i+1]
		if rclass == 0 || !inRange(runes[i+1]) {
			continue
		}
		if inRange(runes[i]) && ccc[i] > rclass {
			runes[i], runes[i+1] = runes[i+1], runes[i]
			ccc[i], ccc[i+1] = ccc[i+1], ccc[i]
			if i > 0 {
				i -= 2 // re-examine the new left neighbor, matching the C loop's i-- retry
			}
		}
	}
}
