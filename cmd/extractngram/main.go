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

// Command extractngram runs the extraction sweep over an existing
// .ngram/.ptable/.ltable (and, in word mode, .vocab) bundle produced by
// text2ngram.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/corpus"
	"github.com/jimregan/ngramtool/extract"
	"github.com/jimregan/ngramtool/internal/cliutil"
	"github.com/jimregan/ngramtool/internal/logutil"
	"github.com/jimregan/ngramtool/vocab"
)

func main() {
	var (
		input    = flag.String("input", "", "artifact base path (required)")
		charMode = flag.Bool("char", false, "character mode (default is word mode)")
		toEnc    = flag.String("to", "", "output encoding (default UTF-8)")
		useMmap  = flag.Bool("mmap", false, "use mmap-based I/O")
		minN     = flag.Int("min-n", 1, "minimum n-gram length")
		maxN     = flag.Int("max-n", 1, "maximum n-gram length")
		freq     = flag.Int("freq", 1, "minimum occurrence count")
		noPunct  = flag.Bool("nopunct", false, "drop n-grams containing punctuation or internal spaces (character mode only)")
		count    = flag.Bool("count", false, "print only the number of matching n-grams")
		devLog   = flag.Bool("v", false, "verbose (development-mode) logging")
	)
	flag.Parse()

	_, _ = maxprocs.Set()
	log := logutil.Init(logutil.Options{Development: *devLog})

	if *input == "" {
		fmt.Fprintln(flag.CommandLine.Output(), "USAGE: extractngram --input <base> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err := cliutil.CheckRange(*minN, *maxN, *freq); err != nil {
		log.Fatal("bad extraction range", zap.Error(err))
	}
	if *noPunct && !*charMode {
		log.Fatal("--nopunct is only valid in character mode")
	}

	cfg := config{
		input:   *input,
		toEnc:   *toEnc,
		charMode: *charMode,
		useMmap: *useMmap,
		minN:    *minN,
		maxN:    *maxN,
		freq:    *freq,
		noPunct: *noPunct,
		count:   *count,
	}

	var err error
	if *charMode {
		err = run[ngram.Char](cfg, log, corpus.SizeChar)
	} else {
		err = run[ngram.Word](cfg, log, corpus.SizeWord)
	}
	if err != nil {
		log.Fatal("extractngram failed", zap.Error(err))
	}
}

type config struct {
	input    string
	toEnc    string
	charMode bool
	useMmap  bool
	minN     int
	maxN     int
	freq     int
	noPunct  bool
	count    bool
}

func run[E ngram.Element](cfg config, log *zap.Logger, elemSize corpus.ElemSize) error {
	var voc *vocab.Vocab
	if !cfg.charMode {
		v, err := vocab.Load(cfg.input + ".vocab")
		if err != nil {
			return err
		}
		voc = v
		log.Debug("loaded vocabulary", zap.Int("size", voc.Len()))
	}

	r, err := corpus.OpenReader[E](cfg.input+".ngram", cfg.input+".ptable", cfg.input+".ltable", elemSize, cfg.useMmap)
	if err != nil {
		return err
	}
	defer r.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	matched := 0
	emit := func(text []E, cnt uint32) {
		matched++
		if cfg.count {
			return
		}
		printOne(w, text, cnt, cfg, voc)
	}

	if err := extract.Sweep[E](r, cfg.minN, cfg.maxN, cfg.freq, emit, nil); err != nil {
		return err
	}
	if cfg.count {
		fmt.Fprintln(w, matched)
	}
	return nil
}

func printOne[E ngram.Element](w *bufio.Writer, text []E, count uint32, cfg config, voc *vocab.Vocab) {
	if cfg.charMode {
		chars := make([]ngram.Char, len(text))
		for i, e := range text {
			chars[i] = ngram.Char(e)
		}
		s, ok, err := cliutil.FormatChars(chars, cfg.toEnc, cfg.noPunct)
		if err != nil || !ok {
			return
		}
		cliutil.PrintNGram(w, s, count)
		return
	}
	words := make([]ngram.Word, len(text))
	for i, e := range text {
		words[i] = ngram.Word(e)
	}
	cliutil.PrintNGram(w, cliutil.FormatWords(words, voc), count)
}
