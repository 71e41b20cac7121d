package corpus

import (
	"golang.org/x/exp/slices"

	"github.com/jimregan/ngramtool"
)

// SortPointers sorts p in place under the bounded-prefix order: compare
// up to MaxNGramLength elements of B[p[i]:], ties broken by p[i] itself.
// slices.SortFunc is not guaranteed stable, but the position tie-break
// makes the comparator a total order, so stability is unnecessary.
func SortPointers[E ngram.Element](b []E, p []uint32) {
	slices.SortFunc(p, func(i, j uint32) bool {
		c := ngram.CompareBounded(b, int(i), int(j), ngram.MaxNGramLength)
		if c != 0 {
			return c < 0
		}
		return i < j
	})
}
