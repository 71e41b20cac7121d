package corpus

import (
	"os"

	"github.com/pkg/errors"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/internal/diskfmt"
)

// buildLTableOnDisk computes the LCP table for the pointer table at
// ptablePath over the corpus buffer at ngramPath and writes it to
// ltablePath, one byte per pointer entry.
func buildLTableOnDisk[E ngram.Element](ngramPath, ptablePath, ltablePath string, elemSize ElemSize, useMmap bool) error {
	buf, err := readNgramElements[E](ngramPath, elemSize)
	if err != nil {
		return errors.Wrap(err, "loading corpus buffer for ltable")
	}

	var p []uint32
	if useMmap {
		mf, err := diskfmt.OpenMapped(ptablePath)
		if err != nil {
			return errors.Wrapf(err, "mmap %s", ptablePath)
		}
		defer mf.Close()
		n := int(mf.Size() / 4)
		p = make([]uint32, n)
		bs := mf.Bytes()
		for i := 0; i < n; i++ {
			p[i] = diskfmt.GetElem(bs[i*4:], SizeWord)
		}
	} else {
		p, err = readPointerFileSeq(ptablePath)
		if err != nil {
			return errors.Wrapf(err, "reading %s", ptablePath)
		}
	}

	l := BuildLTable(buf, p)

	out, err := os.Create(ltablePath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", ltablePath)
	}
	defer out.Close()
	if _, err := out.Write(l); err != nil {
		return errors.Wrapf(err, "writing %s", ltablePath)
	}
	return nil
}
