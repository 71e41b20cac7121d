package vocab

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewReservesSentinelPrefix(t *testing.T) {
	v := New()
	require.Equal(t, int(firstUserID), v.Len())
	require.True(t, v.IsSentinel(Null))
	require.True(t, v.IsSentinel(Space))
	require.True(t, v.IsSentinel(EOS))

	id, ok := v.ID(" ")
	require.True(t, ok)
	require.Equal(t, Space, id)
}

func TestAddAssignsStableFirstSeenIDs(t *testing.T) {
	v := New()
	a := v.Add("hello")
	b := v.Add("world")
	again := v.Add("hello")

	require.Equal(t, a, again)
	require.NotEqual(t, a, b)
	require.False(t, v.IsSentinel(a))
	require.Equal(t, "hello", v.Token(a))
}

func TestIDMissingToken(t *testing.T) {
	v := New()
	_, ok := v.ID("nope")
	require.False(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	v := New()
	v.Add("foo")
	v.Add("bar")
	v.Add("foo")

	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, v.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	fooID, ok := loaded.ID("foo")
	require.True(t, ok)
	barID, ok := loaded.ID("bar")
	require.True(t, ok)
	require.NotEqual(t, fooID, barID)
	require.False(t, loaded.IsSentinel(fooID))

	// Order of first appearance is preserved across a round trip.
	require.Equal(t, v.Token(fooID), loaded.Token(fooID))
	require.Equal(t, v.Token(barID), loaded.Token(barID))
}

func TestSaveLoadRoundTripPreservesUserTokenSlice(t *testing.T) {
	v := New()
	v.Add("foo")
	v.Add("bar")
	v.Add("baz")

	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, v.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	want := v.byID[firstUserID:]
	got := loaded.byID[firstUserID:]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("user token slice mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestSaveExcludesSentinelPrefix(t *testing.T) {
	v := New()
	v.Add("only")

	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, v.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int(firstUserID)+1, loaded.Len())
}
