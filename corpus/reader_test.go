package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimregan/ngramtool"
)

func TestOpenReaderBufferedAndMmapAgree(t *testing.T) {
	dir := t.TempDir()
	elems := []ngram.Char{'a', 'b', 'a', 0}
	ngramPath := writeTestNgram(t, dir, elems)

	p := []uint32{2, 0, 1}
	ptablePath := filepath.Join(dir, "corpus.ptable")
	require.NoError(t, writePointerFile(ptablePath, p, 0))
	l := BuildLTable(elems, p)
	ltablePath := filepath.Join(dir, "corpus.ltable")
	require.NoError(t, os.WriteFile(ltablePath, l, 0o644))

	buffered, err := OpenReader[ngram.Char](ngramPath, ptablePath, ltablePath, SizeChar, false)
	require.NoError(t, err)
	defer buffered.Close()

	mapped, err := OpenReader[ngram.Char](ngramPath, ptablePath, ltablePath, SizeChar, true)
	require.NoError(t, err)
	defer mapped.Close()

	require.Equal(t, buffered.Len(), mapped.Len())
	require.Equal(t, buffered.NumPointers(), mapped.NumPointers())
	for i := 0; i < buffered.Len(); i++ {
		require.Equal(t, buffered.At(i), mapped.At(i))
	}
	for i := 0; i < buffered.NumPointers(); i++ {
		require.Equal(t, buffered.Pointer(i), mapped.Pointer(i))
		require.Equal(t, buffered.LCP(i), mapped.LCP(i))
	}
}

func TestOpenReaderRejectsForeignMarker(t *testing.T) {
	dir := t.TempDir()
	elems := []ngram.Char{'a', 0}
	ngramPath := writeTestNgram(t, dir, elems)
	ptablePath := filepath.Join(dir, "corpus.ptable")
	require.NoError(t, writePointerFile(ptablePath, []uint32{0}, 0))
	ltablePath := filepath.Join(dir, "corpus.ltable")
	require.NoError(t, os.WriteFile(ltablePath, []byte{0}, 0o644))

	// Corrupt the marker byte: XOR with 0x03 always yields the other
	// valid-looking marker value, never the host's own.
	data, err := os.ReadFile(ngramPath)
	require.NoError(t, err)
	data[0] ^= 0x03
	require.NoError(t, os.WriteFile(ngramPath, data, 0o644))

	_, err = OpenReader[ngram.Char](ngramPath, ptablePath, ltablePath, SizeChar, true)
	require.Error(t, err)
}
