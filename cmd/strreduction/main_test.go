package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimregan/ngramtool/reduce"
)

func TestReadEntriesParsesTrailingFrequency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab 5\nabc 5\nxyz 7\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	entries, err := readEntries(f)
	require.NoError(t, err)
	require.Equal(t, []reduce.Entry{
		{NGram: []byte("ab"), Freq: 5},
		{NGram: []byte("abc"), Freq: 5},
		{NGram: []byte("xyz"), Freq: 7},
	}, entries)
}

func TestReadEntriesSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("a 1\n\nb 2\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	entries, err := readEntries(f)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestReadEntriesRejectsMissingFrequency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("justanngram\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = readEntries(f)
	require.Error(t, err)
}

func TestWriteEntriesFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, writeEntries(f, []reduce.Entry{{NGram: []byte("abc"), Freq: 5}}))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "abc 5\n", string(got))
}

func TestApplyAlgorithmDispatch(t *testing.T) {
	entries := []reduce.Entry{{NGram: []byte("ab"), Freq: 5}, {NGram: []byte("abc"), Freq: 5}, {NGram: []byte("xyz"), Freq: 7}}

	for _, algo := range []int{1, 2, 4} {
		got, err := applyAlgorithm(algo, entries, 1, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
	}
}

func TestApplyAlgorithmUnknown(t *testing.T) {
	_, err := applyAlgorithm(99, nil, 1, 1)
	require.Error(t, err)
}

func TestEndToEndScenario(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("ab 5\nabc 5\nxyz 7\n"), 0o644))

	f, err := os.Open(in)
	require.NoError(t, err)
	defer f.Close()

	entries, err := readEntries(f)
	require.NoError(t, err)

	reduced, err := applyAlgorithm(2, entries, 1, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	for _, e := range reduced {
		buf.WriteString(string(e.NGram))
		buf.WriteByte(' ')
	}
	require.Contains(t, buf.String(), "abc")
	require.Contains(t, buf.String(), "xyz")
	require.NotContains(t, buf.String(), "ab ")
}
