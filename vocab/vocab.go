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

// Package vocab implements the word-mode vocabulary: an injective mapping
// between tokens and dense, stable word ids, assigned in first-seen order,
// with a fixed prefix of ids reserved for sentinel tokens.
package vocab

import (
	"bufio"
	"fmt"
	"os"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"
)

// Reserved sentinel ids, in the order the source's init_special_id adds
// them. Id 0 is the alphabet terminator and is never assigned to a token.
const (
	Null word_id = iota // 0, terminator, never a real token
	Space
	Tab
	VerticalTab
	Period
	Question
	Semicolon
	Exclamation
	BOS
	EOS
	firstUserID // first id available to add()
)

type word_id = uint32

// Vocab is the injective string<->word_id bijection used in word mode. Ids
// are dense, stable across Add calls on the same instance and assigned in
// first-seen order.
type Vocab struct {
	byToken  map[string]word_id
	byID     []string
	sentinel *roaring.Bitmap
}

// New returns a Vocab with the sentinel ids already reserved.
func New() *Vocab {
	v := &Vocab{
		byToken:  make(map[string]word_id),
		sentinel: roaring.New(),
	}
	v.reserve("__NULL_ID__")
	for _, tok := range []string{" ", "\t", "\v", ".", "?", ";", "!", "BOS", "EOS"} {
		v.reserve(tok)
	}
	for id := Null; id < firstUserID; id++ {
		v.sentinel.Add(id)
	}
	return v
}

func (v *Vocab) reserve(tok string) word_id {
	id := word_id(len(v.byID))
	v.byID = append(v.byID, tok)
	v.byToken[tok] = id
	return id
}

// Add returns tok's id, assigning a new one in first-seen order if tok has
// not been seen by this Vocab before.
func (v *Vocab) Add(tok string) word_id {
	if id, ok := v.byToken[tok]; ok {
		return id
	}
	return v.reserve(tok)
}

// ID returns tok's id and whether tok is present.
func (v *Vocab) ID(tok string) (word_id, bool) {
	id, ok := v.byToken[tok]
	return id, ok
}

// Token returns the token for id. It panics if id is out of range, the
// same contract as the source's operator[].
func (v *Vocab) Token(id word_id) string {
	return v.byID[id]
}

// Len returns the number of ids assigned, including the sentinel prefix.
func (v *Vocab) Len() int { return len(v.byID) }

// IsSentinel reports whether id is one of the reserved sentinel ids
// (space, tab, vertical-tab, period, question, semicolon, exclamation,
// BOS, EOS) or the terminator id.
func (v *Vocab) IsSentinel(id word_id) bool {
	return v.sentinel.Contains(id)
}

// Save writes the vocabulary to file as UTF-8, one token per line,
// excluding the reserved sentinel prefix, matching the source's
// save_vocab.
func (v *Vocab) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open vocab file %s to write", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for id := firstUserID; int(id) < len(v.byID); id++ {
		if _, err := fmt.Fprintln(w, v.byID[id]); err != nil {
			return errors.Wrapf(err, "writing vocab file %s", path)
		}
	}
	return w.Flush()
}

// Load reads a vocabulary previously written by Save, re-reserving the
// sentinel prefix first.
func Load(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open vocab file %s to read", path)
	}
	defer f.Close()

	v := New()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		v.Add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading vocab file %s", path)
	}
	return v, nil
}
