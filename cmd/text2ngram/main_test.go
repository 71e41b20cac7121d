package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jimregan/ngramtool"
	"github.com/jimregan/ngramtool/corpus"
	"github.com/jimregan/ngramtool/vocab"
)

func TestToChars(t *testing.T) {
	got := toChars([]uint16{'a', 'b', 'c'})
	require.Equal(t, []ngram.Char{'a', 'b', 'c'}, got)
}

func TestIsSpaceChar(t *testing.T) {
	require.True(t, isSpaceChar(' '))
	require.True(t, isSpaceChar('\t'))
	require.False(t, isSpaceChar('a'))
}

func TestIngestFileCharModeNormalizesWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("aa  bb\tcc"), 0o644))

	b := corpus.New[ngram.Char](corpus.Options{})
	require.NoError(t, b.ParseBegin())

	cfg := config{charMode: true}
	require.NoError(t, ingestFile[ngram.Char](b, path, cfg, nil, zap.NewNop()))
	require.NoError(t, b.ParseEnd())

	r, err := b.Reader()
	require.NoError(t, err)
	defer r.Close()

	// Runs of whitespace collapse to one space, so the corpus buffer
	// should spell exactly "aa bb cc" with no doubled separators.
	var got []byte
	for i := 0; i < r.Len(); i++ {
		got = append(got, byte(r.At(i)))
	}
	require.Equal(t, "aa bb cc", string(got))
}

func TestIngestFileInvalidBytesKeepRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	// The middle line carries bytes that are not valid UTF-8. The UTF-8
	// decoder replaces them with U+FFFD instead of failing; either way the
	// lines around them, "hello" and "world", must still be ingested.
	raw := append([]byte("hello\n"), append([]byte{0xff, 0xfe}, []byte("\nworld")...)...)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	b := corpus.New[ngram.Char](corpus.Options{})
	require.NoError(t, b.ParseBegin())

	cfg := config{charMode: true}
	require.NoError(t, ingestFile[ngram.Char](b, path, cfg, nil, zap.NewNop()))
	require.NoError(t, b.ParseEnd())

	r, err := b.Reader()
	require.NoError(t, err)
	defer r.Close()

	var got []byte
	for i := 0; i < r.Len(); i++ {
		got = append(got, byte(r.At(i)))
	}
	require.Contains(t, string(got), "hello")
	require.Contains(t, string(got), "world")
}

func TestIngestFileWordModeInsertsSpaceSentinels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("the cat"), 0o644))

	b := corpus.New[ngram.Word](corpus.Options{})
	require.NoError(t, b.ParseBegin())

	voc := vocab.New()
	cfg := config{charMode: false}
	require.NoError(t, ingestFile[ngram.Word](b, path, cfg, voc, zap.NewNop()))
	require.NoError(t, b.ParseEnd())

	r, err := b.Reader()
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 3, r.Len()) // "the", space sentinel, "cat"
}
