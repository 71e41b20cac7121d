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

// Package tokenize splits a decoded character stream into the token
// stream word-mode ingestion consumes: runs of non-space, non-punctuation
// code units become one word each; each punctuation code unit becomes its
// own single-character word.
package tokenize

import (
	"unicode/utf16"

	"github.com/jimregan/ngramtool/filter"
)

// Words splits units into word tokens.
func Words(units []uint16) []string {
	var words []string
	var cur []uint16

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(utf16.Decode(cur)))
			cur = cur[:0]
		}
	}

	for _, ch := range units {
		switch {
		case filter.IsSpace(ch):
			flush()
		case filter.IsPunct(ch):
			flush()
			words = append(words, string(utf16.Decode([]uint16{ch})))
		default:
			cur = append(cur, ch)
		}
	}
	flush()
	return words
}
