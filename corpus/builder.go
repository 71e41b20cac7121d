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

// Package corpus implements the in-RAM/out-of-core corpus buffer, the
// sorted pointer table, and the on-disk .ngram/.ptable/.ltable artifacts
// that ngramtool's extraction sweep reads. It is the analogue, in this
// repository, of a shard builder: the same "buffer fills, spill to disk,
// merge at the end" shape, generalized from a repo-of-files shard to a
// single bounded-prefix-sorted suffix table.
package corpus

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/jimregan/ngramtool"
)

// tailCapacity is the trailing slack (in elements) that lets pointers
// admitted near the end of the main capacity still compare up to
// MaxNGramLength elements without running off the buffer, assuming an
// average word length of 20 elements.
const tailCapacity = 20 * ngram.MaxNGramLength

// Options configures a Builder.
type Options struct {
	// MemBudget is the approximate total in-RAM footprint (bytes) the
	// builder should target for B, P and (implicitly) L.
	MemBudget uint64
	// ElemSize is the element width: corpus.SizeChar or corpus.SizeWord.
	// Zero means the width of the builder's element type E.
	ElemSize ElemSize
	// FilenameBase is the artifact path prefix. Empty means in-memory
	// only: no .ngram/.ptable/.ltable are written and the builder never
	// spills.
	FilenameBase string
	// UseMmap enables mmap-based I/O for the merge and extraction
	// readers produced once parsing ends; when false, sequential
	// buffered reads are used instead (see corpus.Reader).
	UseMmap bool
	// TempDir is where spilled chunk pointer files are created. Empty
	// means the current working directory.
	TempDir string
	Logger  *zap.Logger
}

// Builder is the in-RAM working set for one corpus: a contiguous element
// buffer B and a pointer vector P of offsets into B, plus (in on-disk
// mode) the spill bookkeeping that keeps that buffer bounded.
type Builder[E ngram.Element] struct {
	opts Options
	log  *zap.Logger

	mainCapacity int
	capacity     int

	state state

	B []E
	P []uint32

	startOffset uint32
	bufOff      int
	lastWordEnd int
	bufRemain   []E

	ngramFile  *os.File
	ngramW     *bufio.Writer
	chunkFiles []string
	spillSeq   atomic.Uint64

	// sortedP/sortedL hold the finalized in-memory result once ParseEnd
	// has run on a builder with no FilenameBase.
	sortedP []uint32
	sortedL []byte

	ptablePath string
	ltablePath string
}

// New allocates a Builder for the given options. It does not allocate the
// buffer; call ParseBegin to enter the Parsing state.
func New[E ngram.Element](opts Options) *Builder[E] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ElemSize == 0 {
		var zero E
		if uint64(^zero) > 0xFFFF {
			opts.ElemSize = SizeWord
		} else {
			opts.ElemSize = SizeChar
		}
	}
	return &Builder[E]{opts: opts, log: opts.Logger, state: idle}
}

// onDisk reports whether this builder spills to and reads from files.
func (b *Builder[E]) onDisk() bool { return b.opts.FilenameBase != "" }

func (b *Builder[E]) ngramPath() string  { return b.opts.FilenameBase + ".ngram" }
func (b *Builder[E]) PTablePath() string { return b.ptablePath }
func (b *Builder[E]) LTablePath() string { return b.ltablePath }

// allocMem computes mainCapacity/capacity from the memory budget: the
// total footprint is approximately mainCapacity*(elemSize+4+1) bytes (B +
// P + L), plus the fixed tail slack's own B and P contribution.
func (b *Builder[E]) allocMem() {
	perElem := uint64(b.opts.ElemSize) + 4 + 1
	total := b.opts.MemBudget
	if total == 0 {
		total = 10 * humanize.MByte
	}
	n := int(total / perElem)
	if n < tailCapacity*2 {
		n = tailCapacity * 2
	}
	b.mainCapacity = n
	b.capacity = n + tailCapacity
}

// ParseBegin (re)allocates the buffer and tables and enters the Parsing
// state, truncating any existing .ngram file when FilenameBase is set.
func (b *Builder[E]) ParseBegin() error {
	b.allocMem()
	b.B = make([]E, b.capacity)
	b.P = b.P[:0]
	b.startOffset = 0
	b.bufOff = 0
	b.lastWordEnd = 0
	b.bufRemain = nil
	b.chunkFiles = nil
	b.ptablePath = ""
	b.ltablePath = ""

	if b.onDisk() {
		f, err := os.Create(b.ngramPath())
		if err != nil {
			return errors.Wrapf(err, "opening %s", b.ngramPath())
		}
		b.ngramFile = f
		b.ngramW = bufio.NewWriter(f)
		if err := b.ngramW.WriteByte(hostMarker()); err != nil {
			return errors.Wrap(err, "writing byte-order marker")
		}
	}

	b.log.Debug("parse_begin",
		zap.Int("main_capacity", b.mainCapacity),
		zap.Int("capacity", b.capacity),
		zap.String("mem_budget", humanize.Bytes(b.opts.MemBudget)))

	b.state = parsing
	return nil
}

// admitTo appends pointer entries for every buffer position in
// [lastWordEnd, limit) and advances lastWordEnd to limit. limit is capped
// by the caller to never admit into the tail slack region during
// ParseBuf.
func (b *Builder[E]) admitTo(limit int) {
	for pos := b.lastWordEnd; pos < limit; pos++ {
		b.P = append(b.P, uint32(pos))
	}
	b.lastWordEnd = limit
}

// ParseBuf ingests one chunk of already-normalised elements.
func (b *Builder[E]) ParseBuf(chunk []E) error {
	if b.state != parsing {
		return ErrWrongState
	}
	if len(chunk) > b.mainCapacity {
		b.log.Warn("chunk exceeds main capacity, skipping", zap.Int("len", len(chunk)), zap.Int("main_capacity", b.mainCapacity))
		return ErrOversizedChunk
	}

	if b.bufOff+30 >= b.capacity {
		if !b.onDisk() {
			return ErrBufferFull
		}
		if err := b.Spill(); err != nil {
			return err
		}
	}

	room := b.capacity - b.bufOff - 20
	n := len(chunk)
	if n > room {
		n = room
	}
	copy(b.B[b.bufOff:], chunk[:n])
	oldBufOff := b.bufOff
	b.bufOff += n
	b.bufRemain = append([]E(nil), chunk[n:]...)

	limit := oldBufOff + n
	if limit > b.mainCapacity {
		limit = b.mainCapacity
	}
	b.admitTo(limit)

	return nil
}

// Spill flushes the in-RAM sorted pointer table to a new chunk file and
// appends the finalised prefix of B to .ngram.
func (b *Builder[E]) Spill() error {
	if len(b.P) == 0 || !b.onDisk() {
		return nil
	}

	SortPointers(b.B, b.P)

	chunkPath := b.nextChunkPath()
	if err := writePointerFile(chunkPath, b.P, b.startOffset); err != nil {
		return errors.Wrapf(err, "spilling pointer chunk %s", chunkPath)
	}
	b.chunkFiles = append(b.chunkFiles, chunkPath)

	if err := writeElements(b.ngramW, b.opts.ElemSize, b.B[:b.lastWordEnd]); err != nil {
		return errors.Wrap(err, "appending to .ngram during spill")
	}

	tail := append([]E(nil), b.B[b.lastWordEnd:b.bufOff]...)
	copy(b.B, tail)
	copy(b.B[len(tail):], b.bufRemain)
	newBufOff := len(tail) + len(b.bufRemain)
	b.bufRemain = nil

	b.startOffset += uint32(b.lastWordEnd)
	b.lastWordEnd = 0
	b.bufOff = newBufOff
	b.P = b.P[:0]
	b.admitTo(b.bufOff)

	b.log.Info("spilled chunk",
		zap.String("path", chunkPath),
		zap.Uint32("start_offset", b.startOffset),
		zap.Int("chunk_count", len(b.chunkFiles)))

	return nil
}

func (b *Builder[E]) nextChunkPath() string {
	seq := b.spillSeq.Add(1)
	dir := b.opts.TempDir
	name := fmt.Sprintf("%s.%s.%d.tmp", b.opts.FilenameBase, xid.New().String(), seq)
	if dir == "" {
		return name
	}
	return dir + string(os.PathSeparator) + name
}

// ParseEnd finalises parsing, producing the sorted pointer table (and, on
// disk, .ptable/.ltable) via a three-way branch: pure in-memory, on-disk
// with no prior spills, and on-disk with spills requiring a merge.
func (b *Builder[E]) ParseEnd() error {
	if b.state != parsing {
		return ErrWrongState
	}
	defer func() { b.state = flushed }()

	// Admit the tail: whatever hasn't been admitted yet, uncapped by
	// mainCapacity since no more data is coming.
	b.admitTo(b.bufOff)
	if len(b.bufRemain) > 0 {
		// A trailing element run that the last ParseBuf could not fit is
		// appended to B when it fits in the remaining slack. Otherwise an
		// on-disk builder spills first, which moves the run to the front
		// of B, and an in-memory builder reports ErrBufferFull.
		if b.bufOff+len(b.bufRemain) > len(b.B) {
			if !b.onDisk() {
				return ErrBufferFull
			}
			if err := b.Spill(); err != nil {
				return err
			}
		} else {
			copy(b.B[b.bufOff:], b.bufRemain)
			b.bufOff += len(b.bufRemain)
			b.bufRemain = nil
			b.admitTo(b.bufOff)
		}
	}

	if !b.onDisk() {
		SortPointers(b.B[:b.bufOff], b.P)
		b.sortedP = b.P
		b.sortedL = BuildLTable(b.B[:b.bufOff], b.sortedP)
		return nil
	}

	if len(b.chunkFiles) == 0 {
		// No prior spills: write .ptable/.ngram directly, then stream
		// .ltable against the mmapped/buffered .ngram.
		SortPointers(b.B[:b.bufOff], b.P)
		b.ptablePath = b.opts.FilenameBase + ".ptable"
		if err := writePointerFile(b.ptablePath, b.P, b.startOffset); err != nil {
			return errors.Wrap(err, "writing .ptable")
		}
		if err := writeElements(b.ngramW, b.opts.ElemSize, b.B[:b.bufOff]); err != nil {
			return errors.Wrap(err, "writing final .ngram tail")
		}
		if err := b.closeNgram(); err != nil {
			return err
		}

		b.ltablePath = b.opts.FilenameBase + ".ltable"
		if err := buildLTableOnDisk[E](b.ngramPath(), b.ptablePath, b.ltablePath, b.opts.ElemSize, b.opts.UseMmap); err != nil {
			return errors.Wrap(err, "writing .ltable")
		}
		return nil
	}

	// Prior spills exist: emit the final chunk, close .ngram, free B/P,
	// then k-way merge.
	SortPointers(b.B[:b.bufOff], b.P)
	lastChunk := b.nextChunkPath()
	if err := writePointerFile(lastChunk, b.P, b.startOffset); err != nil {
		return errors.Wrap(err, "writing final pointer chunk")
	}
	b.chunkFiles = append(b.chunkFiles, lastChunk)

	if err := writeElements(b.ngramW, b.opts.ElemSize, b.B[:b.lastWordEnd]); err != nil {
		return errors.Wrap(err, "writing final .ngram chunk")
	}
	if err := b.closeNgram(); err != nil {
		return err
	}

	b.B = nil
	b.P = nil

	ptablePath := b.opts.FilenameBase + ".ptable"
	ltablePath := b.opts.FilenameBase + ".ltable"
	if err := kWayMerge[E](b.ngramPath(), b.chunkFiles, ptablePath, b.opts.ElemSize, b.opts.UseMmap); err != nil {
		return errors.Wrap(err, "k-way merge")
	}
	if err := buildLTableOnDisk[E](b.ngramPath(), ptablePath, ltablePath, b.opts.ElemSize, b.opts.UseMmap); err != nil {
		return errors.Wrap(err, "writing .ltable after merge")
	}
	b.ptablePath = ptablePath
	b.ltablePath = ltablePath

	for _, f := range b.chunkFiles {
		_ = os.Remove(f)
	}
	return nil
}

func (b *Builder[E]) closeNgram() error {
	if b.ngramW != nil {
		if err := b.ngramW.Flush(); err != nil {
			return errors.Wrap(err, "flushing .ngram")
		}
	}
	if b.ngramFile != nil {
		return b.ngramFile.Close()
	}
	return nil
}

// Clear resets the builder to the Idle state, releasing the buffer and
// tables. Unlike ParseEnd it never writes any artifact.
func (b *Builder[E]) Clear() {
	b.B = nil
	b.P = nil
	b.sortedP = nil
	b.sortedL = nil
	b.bufRemain = nil
	b.chunkFiles = nil
	if b.ngramFile != nil {
		b.ngramFile.Close()
	}
	b.ngramFile = nil
	b.ngramW = nil
	b.state = idle
}

// InMemoryReader returns the sorted (P, L) pair for in-memory mode. It is
// only valid after ParseEnd has run on a builder with no FilenameBase.
func (b *Builder[E]) InMemoryReader() *MemReader[E] {
	return &MemReader[E]{B: b.B[:b.bufOff], P: b.sortedP, L: b.sortedL}
}

// Reader opens the finished corpus for extraction, choosing the
// in-memory or on-disk path according to how this Builder was
// configured. It must be called after ParseEnd.
func (b *Builder[E]) Reader() (Reader[E], error) {
	if !b.onDisk() {
		return b.InMemoryReader(), nil
	}
	return OpenReader[E](b.ngramPath(), b.ptablePath, b.ltablePath, b.opts.ElemSize, b.opts.UseMmap)
}

