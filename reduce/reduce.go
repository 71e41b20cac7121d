// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reduce implements Statistical Substring Reduction: given a set
// of (ngram, freq) entries, remove every entry whose frequency is
// "explained" by a longer containing entry, i.e. is a proper substring of
// some other entry whose count differs from its own by less than a
// threshold f0. Reduce1 and Reduce4 test an entry against every entry
// that contains it. Reduce2 and Reduce3 compare only neighbours in sorted
// order, so they keep an entry whose only close-count superstring is not
// its sorted neighbour in either the forward or the reversed pass.
package reduce

import (
	"bytes"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Entry is one (ngram, frequency) pair. NGram holds the entry's surface
// form as a flat byte sequence, and containment is tested byte by byte,
// so a match may start or end inside a token: "at" is contained in
// "the cat".
type Entry struct {
	NGram []byte
	Freq  int
}

// Reduce1 is the quadratic algorithm: for each entry, scan every other
// entry and mark it suppressed if it is a proper substring of the other
// with a close-enough frequency. O(n^2 * L).
func Reduce1(entries []Entry, f0 int) ([]Entry, error) {
	n := len(entries)
	marked := make([]bool, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if absInt(entries[i].Freq-entries[j].Freq) < f0 && isProperSubstring(entries[i].NGram, entries[j].NGram) {
				marked[i] = true
				break
			}
		}
	}
	out := make([]Entry, 0, n)
	for i, e := range entries {
		if !marked[i] {
			out = append(out, e)
		}
	}
	return out, nil
}

type signedEntry struct {
	ngram []byte
	freq  int // sign-flipped in place to mark a suppressed entry
}

// markLeftSubstringPass sorts work lexicographically and, for each
// adjacent pair where the first is a proper prefix of the second within
// threshold, sign-flips the first entry's frequency. Only immediate
// neighbours are compared: a prefix of an entry that is not its sorted
// successor (such as "a" against "abc" when "ab" sorts between them) is
// not checked against it.
func markLeftSubstringPass(work []signedEntry, f0 int) {
	sort.Slice(work, func(i, j int) bool {
		return bytes.Compare(work[i].ngram, work[j].ngram) < 0
	})
	for i := 0; i+1 < len(work); i++ {
		a, b := work[i], work[i+1]
		if isProperLeftSubstring(a.ngram, b.ngram) && absInt(absInt(a.freq)-absInt(b.freq)) < f0 {
			work[i].freq = -absInt(work[i].freq)
		}
	}
}

// Reduce2 is the four-pass sort algorithm: mark left-substrings by
// adjacent comparison after a lexicographic sort, then do the same again
// on reversed strings to catch right-substrings. Marking sign-flips the
// count instead of removing the entry so the second pass still sees
// every original entry. O(n log n) comparisons.
func Reduce2(entries []Entry, f0 int) ([]Entry, error) {
	work := make([]signedEntry, len(entries))
	for i, e := range entries {
		work[i] = signedEntry{ngram: e.NGram, freq: e.Freq}
	}

	markLeftSubstringPass(work, f0)
	for i := range work {
		work[i].ngram = reverseBytes(work[i].ngram)
	}
	markLeftSubstringPass(work, f0)
	for i := range work {
		work[i].ngram = reverseBytes(work[i].ngram)
	}

	out := make([]Entry, 0, len(work))
	for _, w := range work {
		if w.freq > 0 {
			out = append(out, Entry{NGram: w.ngram, Freq: w.freq})
		}
	}
	return out, nil
}

// Reduce3 is the compacting variant of Reduce2: instead of sign-flipping
// a marked entry, it is dropped from the working set immediately. This
// only produces the same result as Reduce2 when every input entry has
// freq == 1, since the compaction relies on equal-count substring runs
// being immediately adjacent after sorting; any other input is a hard
// error.
func Reduce3(entries []Entry, f0 int) ([]Entry, error) {
	for _, e := range entries {
		if e.Freq != 1 {
			return nil, ErrAlgorithm3Precondition
		}
	}

	work := append([]Entry(nil), entries...)
	compactPass := func(reversed bool) {
		if reversed {
			for i := range work {
				work[i].NGram = reverseBytes(work[i].NGram)
			}
		}
		sort.Slice(work, func(i, j int) bool {
			return bytes.Compare(work[i].NGram, work[j].NGram) < 0
		})
		kept := work[:0]
		for i := 0; i < len(work); i++ {
			if i+1 < len(work) && isProperLeftSubstring(work[i].NGram, work[i+1].NGram) && absInt(work[i].Freq-work[i+1].Freq) < f0 {
				continue // drop: explained by its successor
			}
			kept = append(kept, work[i])
		}
		work = kept
		if reversed {
			for i := range work {
				work[i].NGram = reverseBytes(work[i].NGram)
			}
		}
	}

	compactPass(false)
	compactPass(true)
	return work, nil
}

// Reduce4 is the hash-based algorithm: for each entry, enumerate its own
// substrings of length [m1, len) and suppress any that are themselves
// present in the set with a close-enough frequency. A roaring.Bitmap of
// suppressed entry indices replaces the mutated suppressed_flag field the
// source keeps per entry; "is this entry alive" becomes one Contains
// check regardless of index order. O(sum of len^2) on average.
func Reduce4(entries []Entry, f0, m1 int) ([]Entry, error) {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[string(e.NGram)] = i
	}

	suppressed := roaring.New()
	for i, w := range entries {
		wlen := len(w.NGram)
		for length := m1; length < wlen; length++ {
			for start := 0; start+length <= wlen; start++ {
				sub := w.NGram[start : start+length]
				j, ok := index[string(sub)]
				if !ok || j == i {
					continue
				}
				if absInt(entries[j].Freq-w.Freq) < f0 {
					suppressed.Add(uint32(j))
				}
			}
		}
	}

	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if !suppressed.Contains(uint32(i)) {
			out = append(out, e)
		}
	}
	return out, nil
}

