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

// Package extract implements the single sweep over a finished corpus's
// (P, L) tables that turns a sorted suffix order into (ngram, count)
// pairs: every maximal run of adjacent suffixes sharing a length-N (or
// longer) prefix becomes one emitted n-gram.
package extract

import (
	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/corpus"
)

// Emit receives one extracted n-gram and its occurrence count. The slice
// is only valid for the duration of the call; callers that need to keep
// it must copy it.
type Emit[E ngram.Element] func(ngramText []E, count uint32)

// Progress is called periodically during the sweep with the current and
// total pointer-table position. It exists purely for a CLI progress
// line; Sweep's output does not depend on whether or how often it is
// called.
type Progress func(done, total int)

// Sweep walks a finished corpus's pointer and LCP tables once, emitting
// every n-gram of length N..M occurring at least freq times. N == M
// dispatches to a cheaper single-length path; both paths produce
// identical multisets of (ngram, count) pairs for the same inputs.
func Sweep[E ngram.Element](c corpus.Reader[E], n, m, freq int, emit Emit[E], progress Progress) error {
	if n < 1 || m < n || m > int(ngram.MaxNGramLength) || freq < 1 {
		return ErrBadRange
	}
	if n == m {
		return sweepFast(c, n, freq, emit, progress)
	}
	return sweepGeneral(c, n, m, freq, emit, progress)
}

// fetchNGram reads length elements starting at the buffer position at.
// If the corpus terminator (element value 0) is hit before length
// elements are collected, it returns nil: the fetch rule that makes a
// truncated position contribute nothing to the sweep.
func fetchNGram[E ngram.Element](c corpus.Reader[E], length, at int) []E {
	out := make([]E, 0, length)
	total := c.Len()
	for i := 0; i < length; i++ {
		pos := at + i
		if pos >= total {
			return nil
		}
		e := c.At(pos)
		if e == 0 {
			return nil
		}
		out = append(out, e)
	}
	return out
}

func sweepFast[E ngram.Element](c corpus.Reader[E], n, freq int, emit Emit[E], progress Progress) error {
	total := c.NumPointers()
	if total == 0 {
		return nil
	}

	current := fetchNGram(c, n, int(c.Pointer(0)))
	count := uint32(1)

	for i := 1; i < total; i++ {
		if progress != nil {
			progress(i, total)
		}
		l := int(c.LCP(i))
		if l >= n {
			count++
			continue
		}
		if count >= uint32(freq) && len(current) > 0 {
			emit(current, count)
		}
		current = fetchNGram(c, n, int(c.Pointer(i)))
		count = 1
	}
	if count >= uint32(freq) && len(current) > 0 {
		emit(current, count)
	}
	return nil
}

// runEntry tracks one in-progress n-gram length's accumulated text and
// count during the general-path sweep.
type runEntry[E ngram.Element] struct {
	text  []E
	count uint32
}

func sweepGeneral[E ngram.Element](c corpus.Reader[E], n, m, freq int, emit Emit[E], progress Progress) error {
	total := c.NumPointers()
	if total == 0 {
		return nil
	}

	runs := make([]runEntry[E], m-n+1)
	refetch := func(from, to, at int) {
		for j := from; j <= to; j++ {
			runs[j-n] = runEntry[E]{text: fetchNGram(c, j, at), count: 1}
		}
	}
	flushEligible := func(from, to int) {
		for j := from; j <= to; j++ {
			r := runs[j-n]
			if r.count >= uint32(freq) && len(r.text) > 0 {
				emit(r.text, r.count)
			}
		}
	}

	refetch(n, m, int(c.Pointer(0)))

	for i := 1; i < total; i++ {
		if progress != nil {
			progress(i, total)
		}
		l := int(c.LCP(i))
		at := int(c.Pointer(i))

		switch {
		case l < n:
			flushEligible(n, m)
			refetch(n, m, at)
		case l >= m:
			for j := n; j <= m; j++ {
				runs[j-n].count++
			}
		default:
			for j := n; j <= l; j++ {
				runs[j-n].count++
			}
			flushEligible(l+1, m)
			refetch(l+1, m, at)
		}
	}
	flushEligible(n, m)
	return nil
}
