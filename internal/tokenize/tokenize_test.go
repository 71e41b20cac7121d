package tokenize

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func enc(s string) []uint16 { return utf16.Encode([]rune(s)) }

func TestWordsSplitsOnSpace(t *testing.T) {
	got := Words(enc("the cat sat"))
	require.Equal(t, []string{"the", "cat", "sat"}, got)
}

func TestWordsPunctuationIsItsOwnToken(t *testing.T) {
	got := Words(enc("hello, world!"))
	require.Equal(t, []string{"hello", ",", "world", "!"}, got)
}

func TestWordsCollapsesRepeatedSpace(t *testing.T) {
	got := Words(enc("a   b"))
	require.Equal(t, []string{"a", "b"}, got)
}

func TestWordsEmpty(t *testing.T) {
	require.Nil(t, Words(nil))
}
