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

package ngram

// Normalize appends src to dst, collapsing runs of whitespace elements
// (as classified by isSpace) into a single space element, and returns the
// extended slice. No run of two or more space elements appears in the
// result, mirroring the source's preprocessing pass over a raw token or
// code-unit stream.
func Normalize[E Element](dst []E, src []E, space E, isSpace func(E) bool) []E {
	for _, e := range src {
		if isSpace(e) {
			if n := len(dst); n > 0 && dst[n-1] == space {
				continue
			}
			dst = append(dst, space)
			continue
		}
		dst = append(dst, e)
	}
	return dst
}

// padBOSEOS is an extension point left unimplemented, matching the
// source's commented-out BOS/EOS padding logic in ngramstat.hpp. The
// sentinel ids BOS and EOS are already reserved by vocab.Vocab so a future
// implementation can pad word-mode sequences without a vocabulary format
// change.
func padBOSEOS[E Element](buf []E) []E { return buf }
