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

// Package transcode converts between raw input bytes and the engine's
// 16-bit character alphabet, so the --from/--to encoding hints on the CLI
// tools never have to be understood by the core engine itself.
package transcode

import (
	"unicode/utf16"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
)

// ToUTF16 decodes data from the named encoding (empty means UTF-8) into a
// sequence of UTF-16 code units, the engine's character-mode alphabet.
func ToUTF16(data []byte, encName string) ([]uint16, error) {
	if encName == "" {
		encName = "utf-8"
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown source encoding %q", encName)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding input as %q", encName)
	}
	return utf16.Encode([]rune(string(decoded))), nil
}

// FromUTF16 encodes a sequence of UTF-16 code units into the named
// encoding (empty means UTF-8).
func FromUTF16(units []uint16, encName string) ([]byte, error) {
	if encName == "" {
		encName = "utf-8"
	}
	s := string(utf16.Decode(units))
	enc, err := htmlindex.Get(encName)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown target encoding %q", encName)
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrapf(err, "encoding output as %q", encName)
	}
	return out, nil
}
