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

// Package cliutil holds the small pieces text2ngram and extractngram both
// need: n-gram formatting for output, and argument-range validation.
package cliutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/filter"
	"github.com/jimregan/ngramtool/internal/transcode"
	"github.com/jimregan/ngramtool/vocab"
)

// ErrBadArgs is the sentinel argument-error wrapped with the offending
// detail before being printed and turned into a non-zero exit.
var ErrBadArgs = errors.New("cliutil: invalid arguments")

// CheckRange validates N, M and freq against the bounds the extraction
// sweep and the CLI surface both require.
func CheckRange(n, m, freq int) error {
	if n < 1 || m < n || m > int(ngram.MaxNGramLength) || freq < 1 {
		return errors.Wrapf(ErrBadArgs, "need 1 <= min-n (%d) <= max-n (%d) <= %d and freq (%d) >= 1", n, m, ngram.MaxNGramLength, freq)
	}
	return nil
}

// FormatChars renders a character-mode n-gram for output in the target
// encoding, optionally dropping it (ok == false) when --nopunct is set
// and the n-gram contains punctuation or an internal space.
func FormatChars(units []ngram.Char, toEnc string, noPunct bool) (s string, ok bool, err error) {
	raw := make([]uint16, len(units))
	for i, u := range units {
		raw[i] = uint16(u)
	}
	if noPunct && filter.HasPunct(raw) {
		return "", false, nil
	}
	out, err := transcode.FromUTF16(raw, toEnc)
	if err != nil {
		return "", false, err
	}
	return string(out), true, nil
}

// FormatWords renders a word-mode n-gram as its tokens joined by a single
// space, resolving each word id through voc.
func FormatWords(ids []ngram.Word, voc *vocab.Vocab) string {
	toks := make([]string, len(ids))
	for i, id := range ids {
		toks[i] = voc.Token(uint32(id))
	}
	return strings.Join(toks, " ")
}

// PrintNGram writes one "ngram\tcount" line.
func PrintNGram(w io.Writer, text string, count uint32) {
	fmt.Fprintf(w, "%s\t%d\n", text, count)
}
