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

// Command strreduction reads (ngram, freq) pairs and applies statistical
// substring reduction, printing the surviving entries.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/jimregan/ngramtool/reduce"
)

func main() {
	fs := flag.NewFlagSet("strreduction", flag.ExitOnError)
	var (
		algorithm  = fs.Int("algorithm", 0, "reduction algorithm 1-4 (default 2, or 3 if --freq 1 and --algorithm unset)")
		f0         = fs.Int("freq", 1, "reducibility threshold f0")
		m1         = fs.Int("m1", 1, "minimum substring length for algorithm 4")
		charMode   = fs.Bool("char", false, "character mode (accepted for symmetry with text2ngram; has no effect here)")
		fromEnc    = fs.String("from", "", "input encoding (accepted for symmetry with text2ngram; has no effect here)")
		toEnc      = fs.String("to", "", "output encoding (accepted for symmetry with text2ngram; has no effect here)")
		output     = fs.String("output", "", "output file (default stdout)")
		sortOutput = fs.Bool("sort", false, "lexicographically sort surviving entries")
	)
	// --char/--from/--to are accepted for CLI symmetry with text2ngram and
	// extractngram; strreduction itself works on already-decoded NGram
	// bytes and has nothing further to transcode.
	_ = charMode
	_ = fromEnc
	_ = toEnc

	cmd := &ffcli.Command{
		Name:       "strreduction",
		ShortUsage: "strreduction [flags] < input > output",
		ShortHelp:  "apply statistical substring reduction to (ngram, freq) pairs",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			_, _ = maxprocs.Set()

			algo := *algorithm
			if algo == 0 {
				freqGiven := false
				fs.Visit(func(f *flag.Flag) {
					if f.Name == "freq" {
						freqGiven = true
					}
				})
				if freqGiven && *f0 == 1 {
					algo = 3
				} else {
					algo = 2
				}
			}

			entries, err := readEntries(os.Stdin)
			if err != nil {
				return err
			}

			reduced, err := applyAlgorithm(algo, entries, *f0, *m1)
			if err != nil {
				return err
			}

			if *sortOutput {
				sort.Slice(reduced, func(i, j int) bool {
					return string(reduced[i].NGram) < string(reduced[j].NGram)
				})
			}

			out := os.Stdout
			if *output != "" {
				f, err := os.Create(*output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return writeEntries(out, reduced)
		},
	}

	if err := cmd.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func applyAlgorithm(algo int, entries []reduce.Entry, f0, m1 int) ([]reduce.Entry, error) {
	switch algo {
	case 1:
		return reduce.Reduce1(entries, f0)
	case 2:
		return reduce.Reduce2(entries, f0)
	case 3:
		return reduce.Reduce3(entries, f0)
	case 4:
		return reduce.Reduce4(entries, f0, m1)
	default:
		return nil, fmt.Errorf("strreduction: unknown algorithm %d", algo)
	}
}

// readEntries parses one entry per line: the last whitespace-separated
// token is the frequency, the remainder is the n-gram text.
func readEntries(f *os.File) ([]reduce.Entry, error) {
	var entries []reduce.Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		idx := strings.LastIndexAny(trimmed, " \t")
		if idx < 0 {
			return nil, fmt.Errorf("strreduction: malformed line %q: no frequency field", line)
		}
		freqStr := trimmed[idx+1:]
		freq, err := strconv.Atoi(freqStr)
		if err != nil {
			return nil, fmt.Errorf("strreduction: malformed frequency in line %q: %w", line, err)
		}
		entries = append(entries, reduce.Entry{NGram: []byte(line[:idx]), Freq: freq})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeEntries(f *os.File, entries []reduce.Entry) error {
	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %d\n", e.NGram, e.Freq); err != nil {
			return err
		}
	}
	return w.Flush()
}
