package corpus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jimregan/ngramtool"
)

func TestParseBufBeforeParseBeginIsWrongState(t *testing.T) {
	b := New[ngram.Char](Options{})
	err := b.ParseBuf([]ngram.Char{'a'})
	require.True(t, errors.Is(err, ErrWrongState))
}

func TestParseEndBeforeParseBeginIsWrongState(t *testing.T) {
	b := New[ngram.Char](Options{})
	err := b.ParseEnd()
	require.True(t, errors.Is(err, ErrWrongState))
}

func TestParseBufAfterParseEndIsWrongState(t *testing.T) {
	b := New[ngram.Char](Options{})
	require.NoError(t, b.ParseBegin())
	require.NoError(t, b.ParseBuf([]ngram.Char{'a', 0}))
	require.NoError(t, b.ParseEnd())

	err := b.ParseBuf([]ngram.Char{'b'})
	require.True(t, errors.Is(err, ErrWrongState))
}

func TestClearResetsToIdle(t *testing.T) {
	b := New[ngram.Char](Options{})
	require.NoError(t, b.ParseBegin())
	require.NoError(t, b.ParseBuf([]ngram.Char{'a', 0}))
	b.Clear()

	err := b.ParseBuf([]ngram.Char{'a'})
	require.True(t, errors.Is(err, ErrWrongState))
}
