package reduce

import "bytes"

// isProperSubstring reports whether a occurs somewhere inside b and a is
// not equal to b, matching the source's memcmp-based containment test
// over raw element arrays.
func isProperSubstring(a, b []byte) bool {
	if len(a) >= len(b) {
		return false
	}
	return bytes.Contains(b, a)
}

// isProperLeftSubstring reports whether a is a proper prefix of b. The
// sort-based algorithms apply it only to neighbours in lexicographic
// order, which avoids an O(n^2) scan.
func isProperLeftSubstring(a, b []byte) bool {
	if len(a) >= len(b) {
		return false
	}
	return bytes.HasPrefix(b, a)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
