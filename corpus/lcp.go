package corpus

import "github.com/jimregan/ngramtool"

// BuildLTable computes the LCP table for a sorted pointer table p over
// buffer b: L[0] = 0, L[i] is the capped common-prefix length of the
// suffixes at p[i-1] and p[i].
func BuildLTable[E ngram.Element](b []E, p []uint32) []byte {
	l := make([]byte, len(p))
	for i := 1; i < len(p); i++ {
		l[i] = byte(ngram.CommonPrefixLen(b, int(p[i-1]), int(p[i])))
	}
	return l
}
