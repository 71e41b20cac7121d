package corpus

import (
	"os"

	"github.com/pkg/errors"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/internal/diskfmt"
)

// Reader gives the extraction sweep read-only access to one finished
// corpus: the element buffer, its bounded-prefix-sorted pointer table,
// and the matching LCP table, regardless of whether they live in RAM or
// on disk.
type Reader[E ngram.Element] interface {
	// Len returns the number of elements in the corpus buffer.
	Len() int
	// At returns the element at buffer position i.
	At(i int) E
	// NumPointers returns the number of entries in the pointer table.
	NumPointers() int
	// Pointer returns the i'th sorted pointer table entry: a buffer
	// position marking the start of one suffix.
	Pointer(i int) uint32
	// LCP returns the i'th LCP table entry: the length of the common
	// prefix between the suffixes at Pointer(i-1) and Pointer(i). LCP(0)
	// is always 0.
	LCP(i int) byte
	// Close releases any underlying file handles or mappings.
	Close() error
}

// MemReader is a Reader backed entirely by in-RAM slices, used for small
// corpora that never spilled.
type MemReader[E ngram.Element] struct {
	B []E
	P []uint32
	L []byte
}

func (r *MemReader[E]) Len() int          { return len(r.B) }
func (r *MemReader[E]) At(i int) E        { return r.B[i] }
func (r *MemReader[E]) NumPointers() int  { return len(r.P) }
func (r *MemReader[E]) Pointer(i int) uint32 { return r.P[i] }
func (r *MemReader[E]) LCP(i int) byte    { return r.L[i] }
func (r *MemReader[E]) Close() error      { return nil }

// diskReader is a Reader backed by the .ngram/.ptable/.ltable artifacts
// of a finished, on-disk Builder. In mmap mode the three files stay
// mapped and are decoded lazily; in buffered mode they are read fully
// into RAM once, up front.
type diskReader[E ngram.Element] struct {
	elemSize ElemSize
	useMmap  bool

	ngramMM *diskfmt.MappedFile
	ptableMM *diskfmt.MappedFile
	ltableMM *diskfmt.MappedFile

	b []E
	p []uint32
	l []byte
}

// OpenReader opens the on-disk artifacts produced by a Builder's
// ParseEnd for reading.
func OpenReader[E ngram.Element](ngramPath, ptablePath, ltablePath string, elemSize ElemSize, useMmap bool) (Reader[E], error) {
	if useMmap {
		return openDiskReaderMmap[E](ngramPath, ptablePath, ltablePath, elemSize)
	}
	return openDiskReaderBuffered[E](ngramPath, ptablePath, ltablePath, elemSize)
}

func openDiskReaderMmap[E ngram.Element](ngramPath, ptablePath, ltablePath string, elemSize ElemSize) (Reader[E], error) {
	ngramMM, err := diskfmt.OpenMapped(ngramPath)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s", ngramPath)
	}
	if ngramMM.Size() < 1 {
		return nil, errors.Errorf("corpus: %s is too small to contain a byte-order marker", ngramPath)
	}
	if marker, err := ngramMM.Read(0, 1); err != nil {
		return nil, err
	} else if err := checkMarker(marker[0]); err != nil {
		return nil, errors.Wrapf(err, "validating %s", ngramPath)
	}

	ptableMM, err := diskfmt.OpenMapped(ptablePath)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s", ptablePath)
	}
	ltableMM, err := diskfmt.OpenMapped(ltablePath)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s", ltablePath)
	}

	return &diskReader[E]{elemSize: elemSize, useMmap: true, ngramMM: ngramMM, ptableMM: ptableMM, ltableMM: ltableMM}, nil
}

func openDiskReaderBuffered[E ngram.Element](ngramPath, ptablePath, ltablePath string, elemSize ElemSize) (Reader[E], error) {
	b, err := readNgramElements[E](ngramPath, elemSize)
	if err != nil {
		return nil, err
	}
	p, err := readPointerFileSeq(ptablePath)
	if err != nil {
		return nil, err
	}

	l, err := os.ReadFile(ltablePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ltablePath)
	}
	return &diskReader[E]{elemSize: elemSize, useMmap: false, b: b, p: p, l: l}, nil
}

func (r *diskReader[E]) Len() int {
	if !r.useMmap {
		return len(r.b)
	}
	return int((r.ngramMM.Size() - 1) / int64(r.elemSize))
}

func (r *diskReader[E]) At(i int) E {
	if !r.useMmap {
		return r.b[i]
	}
	off := 1 + int64(i)*int64(r.elemSize)
	buf, err := r.ngramMM.Read(off, int64(r.elemSize))
	if err != nil {
		panic(err)
	}
	return E(diskfmt.GetElem(buf, r.elemSize))
}

func (r *diskReader[E]) NumPointers() int {
	if !r.useMmap {
		return len(r.p)
	}
	return int(r.ptableMM.Size() / 4)
}

func (r *diskReader[E]) Pointer(i int) uint32 {
	if !r.useMmap {
		return r.p[i]
	}
	buf, err := r.ptableMM.Read(int64(i)*4, 4)
	if err != nil {
		panic(err)
	}
	return diskfmt.GetElem(buf, SizeWord)
}

func (r *diskReader[E]) LCP(i int) byte {
	if !r.useMmap {
		return r.l[i]
	}
	buf, err := r.ltableMM.Read(int64(i), 1)
	if err != nil {
		panic(err)
	}
	return buf[0]
}

func (r *diskReader[E]) Close() error {
	if !r.useMmap {
		return nil
	}
	var firstErr error
	for _, mf := range []*diskfmt.MappedFile{r.ngramMM, r.ptableMM, r.ltableMM} {
		if err := mf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
