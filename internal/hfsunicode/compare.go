package hfsunicode

import "github.com/0x09/go-hfsplus/internal/types"

// CompareKeys orders two Catalog keys the way the
// on-disk B-tree does: first by parent CNID (unsigned), then by name.
// caseSensitive selects strict binary code-unit comparison (HFSX, "HX")
// over the default HFS+ case-folding comparison ("H+").
func CompareKeys(aParent, bParent types.CNID, aName, bName []uint16, caseSensitive bool) int {
	if aParent != bParent {
		if aParent < bParent {
			return -1
		}
		return 1
	}
	if caseSensitive {
		return compareBinary(aName, bName)
	}
	return compareFolded(aName, bName)
}

func compareBinary(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func compareFolded(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		fa, fb := caseFold(a[i]), caseFold(b[i])
		if fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
