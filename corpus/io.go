package corpus

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/internal/diskfmt"
)

// writePointerFile writes p to path as a sequence of native-order uint32
// values, each biased by the buffer's current startOffset so that every
// pointer is an absolute offset into the final, fully-appended .ngram
// file rather than an offset into the builder's rolling in-RAM window.
func writePointerFile(path string, p []uint32, bias uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var tmp [4]byte
	for _, v := range p {
		diskfmt.PutElem(tmp[:], SizeWord, v+bias)
		if _, err := w.Write(tmp[:]); err != nil {
			return errors.Wrapf(err, "writing pointer to %s", path)
		}
	}
	return w.Flush()
}

// readPointerFileSeq reads an entire pointer file into memory. Chunk
// files are expected to fit comfortably within the same memory budget
// that produced them, so a full sequential read is adequate even when
// the builder itself is operating out-of-core.
func readPointerFileSeq(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	n := int(fi.Size() / 4)
	out := make([]uint32, n)

	r := bufio.NewReader(f)
	var tmp [4]byte
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return nil, errors.Wrapf(err, "reading pointer %d from %s", i, path)
		}
		out[i] = diskfmt.GetElem(tmp[:], SizeWord)
	}
	return out, nil
}

// writeElements writes elems to w, size bytes each, in host order.
func writeElements[E ngram.Element](w *bufio.Writer, size ElemSize, elems []E) error {
	var tmp [4]byte
	for _, e := range elems {
		diskfmt.PutElem(tmp[:size], size, uint32(e))
		if _, err := w.Write(tmp[:size]); err != nil {
			return err
		}
	}
	return nil
}

// readNgramElements reads an entire .ngram file into memory, validating
// and skipping its leading byte-order marker.
func readNgramElements[E ngram.Element](path string, size ElemSize) ([]E, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r := bufio.NewReader(f)
	marker, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrapf(err, "reading byte-order marker from %s", path)
	}
	if err := checkMarker(marker); err != nil {
		return nil, errors.Wrapf(err, "validating %s", path)
	}

	n := int((fi.Size() - 1) / int64(size))
	out := make([]E, n)
	tmp := make([]byte, size)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, tmp); err != nil {
			return nil, errors.Wrapf(err, "reading element %d from %s", i, path)
		}
		out[i] = E(diskfmt.GetElem(tmp, size))
	}
	return out, nil
}
