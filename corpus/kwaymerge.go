package corpus

import (
	"bufio"
	"container/heap"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/internal/diskfmt"
)

// pointerSource is a sequentially-consumable source of absolute pointer
// values, backed either by an mmapped chunk file or a fully materialised
// in-memory slice.
type pointerSource interface {
	len() int
	at(i int) uint32
	close() error
}

type mmapPointerSource struct{ mf *diskfmt.MappedFile }

func (m *mmapPointerSource) len() int { return int(m.mf.Size() / 4) }
func (m *mmapPointerSource) at(i int) uint32 {
	b, err := m.mf.Read(int64(i)*4, 4)
	if err != nil {
		panic(err) // bounds are caller-guaranteed by len()
	}
	return diskfmt.GetElem(b, SizeWord)
}
func (m *mmapPointerSource) close() error { return m.mf.Close() }

type memPointerSource struct{ p []uint32 }

func (m *memPointerSource) len() int          { return len(m.p) }
func (m *memPointerSource) at(i int) uint32   { return m.p[i] }
func (m *memPointerSource) close() error      { return nil }

type mergeItem struct {
	src int
	ptr uint32
}

// mergeHeap orders mergeItems by the bounded-prefix suffix order over a
// shared corpus buffer, the same comparator SortPointers uses within one
// chunk. container/heap turns that per-chunk order into a single global
// order across all chunks, holding one candidate per chunk. kWayMerge
// loads the whole corpus buffer, and unless useMmap is set it also reads
// every chunk file fully into memory before merging.
type mergeHeap[E ngram.Element] struct {
	buf   []E
	items []mergeItem
}

func (h *mergeHeap[E]) Len() int { return len(h.items) }
func (h *mergeHeap[E]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	c := ngram.CompareBounded(h.buf, int(a.ptr), int(b.ptr), ngram.MaxNGramLength)
	if c != 0 {
		return c < 0
	}
	return a.ptr < b.ptr
}
func (h *mergeHeap[E]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *mergeHeap[E]) Push(x any)    { h.items = append(h.items, x.(mergeItem)) }
func (h *mergeHeap[E]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// kWayMerge merges chunkFiles, each already bounded-prefix sorted over
// the fully-appended corpus buffer at ngramPath, into a single sorted
// pointer table written to ptablePath. It is the out-of-core analogue of
// SortPointers: each chunk was sorted against a partial, rolling window
// of the buffer at spill time, so a straight concatenation would not be
// globally sorted, but every chunk individually is, which is exactly
// what a heap merge needs.
func kWayMerge[E ngram.Element](ngramPath string, chunkFiles []string, ptablePath string, elemSize ElemSize, useMmap bool) error {
	buf, err := readNgramElements[E](ngramPath, elemSize)
	if err != nil {
		return errors.Wrap(err, "loading corpus buffer for merge")
	}

	sources := make([]pointerSource, len(chunkFiles))
	if useMmap {
		g := new(errgroup.Group)
		for i, path := range chunkFiles {
			i, path := i, path
			g.Go(func() error {
				mf, err := diskfmt.OpenMapped(path)
				if err != nil {
					return errors.Wrapf(err, "mmap chunk %s", path)
				}
				sources[i] = &mmapPointerSource{mf: mf}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, path := range chunkFiles {
			p, err := readPointerFileSeq(path)
			if err != nil {
				return errors.Wrapf(err, "reading chunk %s", path)
			}
			sources[i] = &memPointerSource{p: p}
		}
	}
	defer func() {
		for _, s := range sources {
			if s != nil {
				_ = s.close()
			}
		}
	}()

	out, err := os.Create(ptablePath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", ptablePath)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	h := &mergeHeap[E]{buf: buf}
	heap.Init(h)
	cursor := make([]int, len(sources))
	for i, s := range sources {
		if s.len() > 0 {
			heap.Push(h, mergeItem{src: i, ptr: s.at(0)})
			cursor[i] = 1
		}
	}

	var tmp [4]byte
	for h.Len() > 0 {
		top := heap.Pop(h).(mergeItem)
		diskfmt.PutElem(tmp[:], SizeWord, top.ptr)
		if _, err := w.Write(tmp[:]); err != nil {
			return errors.Wrap(err, "writing merged pointer")
		}
		i := top.src
		if cursor[i] < sources[i].len() {
			heap.Push(h, mergeItem{src: i, ptr: sources[i].at(cursor[i])})
			cursor[i]++
		}
	}

	return w.Flush()
}
