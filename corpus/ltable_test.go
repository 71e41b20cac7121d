package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimregan/ngramtool"
)

func TestBuildLTableOnDiskMatchesInMemory(t *testing.T) {
	dir := t.TempDir()
	elems := []ngram.Char{'a', 'b', 'a', 0}
	ngramPath := writeTestNgram(t, dir, elems)

	p := []uint32{2, 0, 1}
	ptablePath := filepath.Join(dir, "corpus.ptable")
	require.NoError(t, writePointerFile(ptablePath, p, 0))

	ltablePath := filepath.Join(dir, "corpus.ltable")
	require.NoError(t, buildLTableOnDisk[ngram.Char](ngramPath, ptablePath, ltablePath, SizeChar, false))

	want := BuildLTable(elems, p)
	got, err := os.ReadFile(ltablePath)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestBuildLTableOnDiskMmapMatchesBuffered(t *testing.T) {
	dir := t.TempDir()
	elems := []ngram.Char{'a', 'b', 'a', 0}
	ngramPath := writeTestNgram(t, dir, elems)

	p := []uint32{2, 0, 1}
	ptablePath := filepath.Join(dir, "corpus.ptable")
	require.NoError(t, writePointerFile(ptablePath, p, 0))

	bufferedPath := filepath.Join(dir, "buffered.ltable")
	require.NoError(t, buildLTableOnDisk[ngram.Char](ngramPath, ptablePath, bufferedPath, SizeChar, false))
	mmapPath := filepath.Join(dir, "mmap.ltable")
	require.NoError(t, buildLTableOnDisk[ngram.Char](ngramPath, ptablePath, mmapPath, SizeChar, true))

	buffered, err := os.ReadFile(bufferedPath)
	require.NoError(t, err)
	mmapped, err := os.ReadFile(mmapPath)
	require.NoError(t, err)
	require.Equal(t, buffered, mmapped)
}
