package corpus

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimregan/ngramtool"
)

func TestWritePointerFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.ptr")
	p := []uint32{3, 1, 4, 1, 5}
	require.NoError(t, writePointerFile(path, p, 100))

	got, err := readPointerFileSeq(path)
	require.NoError(t, err)
	require.Equal(t, []uint32{103, 101, 104, 101, 105}, got)
}

func TestWriteElementsReadNgramElementsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.ngram")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := bufio.NewWriter(f)
	require.NoError(t, w.WriteByte(hostMarker()))
	elems := []ngram.Char{'h', 'e', 'l', 'l', 'o', 0}
	require.NoError(t, writeElements(w, SizeChar, elems))
	require.NoError(t, w.Flush())
	require.NoError(t, f.Close())

	got, err := readNgramElements[ngram.Char](path, SizeChar)
	require.NoError(t, err)
	require.Equal(t, elems, got)
}

func TestReadNgramElementsRejectsForeignMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.ngram")
	foreign := hostMarker() ^ 0x03 // flips to the other marker value
	require.NoError(t, os.WriteFile(path, []byte{foreign, 0, 0}, 0o644))

	_, err := readNgramElements[ngram.Char](path, SizeChar)
	require.Error(t, err)
}
