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

// Command text2ngram reads one or more input files, builds a corpus
// buffer and pointer/LCP table from them, and optionally runs the
// extraction sweep directly afterwards.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/dustin/go-humanize"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/corpus"
	"github.com/jimregan/ngramtool/extract"
	"github.com/jimregan/ngramtool/filter"
	"github.com/jimregan/ngramtool/internal/cliutil"
	"github.com/jimregan/ngramtool/internal/logutil"
	"github.com/jimregan/ngramtool/internal/tokenize"
	"github.com/jimregan/ngramtool/internal/transcode"
	"github.com/jimregan/ngramtool/vocab"
)

// ingestChunkSize bounds how many elements are handed to Builder.ParseBuf
// at once, independent of --mem, so a single large input file cannot
// trip ErrOversizedChunk even under a small memory budget.
const ingestChunkSize = 1 << 16

func main() {
	var (
		fromEnc    = flag.String("from", "", "source encoding (default UTF-8)")
		toEnc      = flag.String("to", "", "output encoding for extracted n-grams (default UTF-8)")
		output     = flag.String("output", "", "artifact base path; omit for in-memory-only mode")
		charMode   = flag.Bool("char", false, "character mode (default is word mode)")
		memMB      = flag.Uint64("mem", 10, "memory budget in MB")
		useMmap    = flag.Bool("mmap", false, "use mmap-based I/O for merge and extraction")
		minN       = flag.Int("min-n", 0, "minimum n-gram length; with --max-n and --freq, runs extraction after parsing")
		maxN       = flag.Int("max-n", 0, "maximum n-gram length")
		freq       = flag.Int("freq", 1, "minimum occurrence count")
		noPunct    = flag.Bool("nopunct", false, "drop n-grams containing punctuation or internal spaces (character mode only)")
		progress   = flag.Bool("progress", false, "print a progress line to stderr during extraction")
		cpuProfile = flag.String("cpu_profile", "", "write cpu profile to file")
		devLog     = flag.Bool("v", false, "verbose (development-mode) logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(flag.CommandLine.Output(), "USAGE: %s [options] FILES...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	_, _ = maxprocs.Set()
	log := logutil.Init(logutil.Options{Development: *devLog})

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal("creating cpu profile", zap.Error(err))
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("starting cpu profile", zap.Error(err))
		}
		defer pprof.StopCPUProfile()
	}

	extractRequested := *minN != 0 || *maxN != 0 || *freq != 1
	if extractRequested {
		if *maxN == 0 {
			*maxN = *minN
		}
		if *minN == 0 {
			*minN = *maxN
		}
		if err := cliutil.CheckRange(*minN, *maxN, *freq); err != nil {
			log.Fatal("bad extraction range", zap.Error(err))
		}
	}
	if *noPunct && !*charMode {
		log.Fatal("--nopunct is only valid in character mode")
	}

	cfg := config{
		inputs:   flag.Args(),
		fromEnc:  *fromEnc,
		toEnc:    *toEnc,
		output:   *output,
		charMode: *charMode,
		memBytes: *memMB * humanize.MByte,
		useMmap:  *useMmap,
		minN:     *minN,
		maxN:     *maxN,
		freq:     *freq,
		noPunct:  *noPunct,
		extract:  extractRequested,
		progress: *progress,
	}

	var err error
	if *charMode {
		err = run[ngram.Char](cfg, log, corpus.SizeChar)
	} else {
		err = run[ngram.Word](cfg, log, corpus.SizeWord)
	}
	if err != nil {
		log.Fatal("text2ngram failed", zap.Error(err))
	}
}

type config struct {
	inputs   []string
	fromEnc  string
	toEnc    string
	output   string
	charMode bool
	memBytes uint64
	useMmap  bool
	minN     int
	maxN     int
	freq     int
	noPunct  bool
	extract  bool
	progress bool
}

func run[E ngram.Element](cfg config, log *zap.Logger, elemSize corpus.ElemSize) error {
	opts := corpus.Options{
		MemBudget:    cfg.memBytes,
		ElemSize:     elemSize,
		FilenameBase: cfg.output,
		UseMmap:      cfg.useMmap,
		Logger:       log,
	}
	b := corpus.New[E](opts)
	if err := b.ParseBegin(); err != nil {
		return err
	}

	var voc *vocab.Vocab
	if !cfg.charMode {
		voc = vocab.New()
	}

	for _, path := range cfg.inputs {
		if err := ingestFile[E](b, path, cfg, voc, log); err != nil {
			log.Warn("skipping input file", zap.String("path", path), zap.Error(err))
		}
	}

	if err := b.ParseEnd(); err != nil {
		return err
	}

	if voc != nil && cfg.output != "" {
		if err := voc.Save(cfg.output + ".vocab"); err != nil {
			return err
		}
	}

	if !cfg.extract {
		return nil
	}

	r, err := b.Reader()
	if err != nil {
		return err
	}
	defer r.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	var prog extract.Progress
	if cfg.progress {
		prog = func(done, total int) {
			if done%4096 == 0 {
				fmt.Fprintf(os.Stderr, "\rextracting: %d/%d", done, total)
			}
		}
	}

	emit := func(text []E, count uint32) {
		printOne(w, text, count, cfg, voc)
	}

	if err := extract.Sweep[E](r, cfg.minN, cfg.maxN, cfg.freq, emit, prog); err != nil {
		return err
	}
	if cfg.progress {
		fmt.Fprintln(os.Stderr)
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

// ingestFile parses path one line at a time, matching the source's
// getline+iconv.convert loop: a line that fails to decode in cfg.fromEnc
// is logged and skipped, but the rest of the file still ingests.
func ingestFile[E ngram.Element](b *corpus.Builder[E], path string, cfg config, voc *vocab.Vocab, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		units, err := transcode.ToUTF16(line, cfg.fromEnc)
		if err != nil {
			log.Warn("line cannot be decoded, skipping", zap.String("path", path), zap.Error(err))
			continue
		}
		if err := ingestLine[E](b, units, cfg, voc); err != nil {
			log.Warn("parse_buf failed", zap.String("path", path), zap.Error(err))
		}
	}
	return sc.Err()
}

// ingestLine normalizes one already-decoded line and feeds it to the
// builder, chunked so an unusually long line still respects ParseBuf's
// per-call capacity.
func ingestLine[E ngram.Element](b *corpus.Builder[E], units []uint16, cfg config, voc *vocab.Vocab) error {
	var elems []E
	if cfg.charMode {
		chars := toChars(units)
		normalized := ngram.Normalize(make([]ngram.Char, 0, len(chars)), chars, ' ', isSpaceChar)
		elems = make([]E, len(normalized))
		for i, c := range normalized {
			elems[i] = E(c)
		}
	} else {
		words := tokenize.Words(units)
		elems = make([]E, 0, len(words)*2)
		for i, w := range words {
			if i > 0 {
				elems = append(elems, E(vocab.Space))
			}
			elems = append(elems, E(voc.Add(w)))
		}
	}

	for off := 0; off < len(elems); off += ingestChunkSize {
		end := off + ingestChunkSize
		if end > len(elems) {
			end = len(elems)
		}
		if err := b.ParseBuf(elems[off:end]); err != nil {
			return err
		}
	}
	return nil
}

func toChars(units []uint16) []ngram.Char {
	out := make([]ngram.Char, len(units))
	for i, u := range units {
		out[i] = ngram.Char(u)
	}
	return out
}

func isSpaceChar(c ngram.Char) bool {
	return filter.IsSpace(uint16(c))
}
