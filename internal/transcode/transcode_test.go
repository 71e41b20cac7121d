package transcode

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestToUTF16DefaultsToUTF8(t *testing.T) {
	units, err := ToUTF16([]byte("héllo"), "")
	require.NoError(t, err)
	require.Equal(t, utf16.Encode([]rune("héllo")), units)
}

func TestFromUTF16DefaultsToUTF8(t *testing.T) {
	units := utf16.Encode([]rune("héllo"))
	out, err := FromUTF16(units, "")
	require.NoError(t, err)
	require.Equal(t, "héllo", string(out))
}

func TestRoundTripUTF8(t *testing.T) {
	units, err := ToUTF16([]byte("abc 123"), "utf-8")
	require.NoError(t, err)
	out, err := FromUTF16(units, "utf-8")
	require.NoError(t, err)
	require.Equal(t, "abc 123", string(out))
}

func TestUnknownEncoding(t *testing.T) {
	_, err := ToUTF16([]byte("x"), "not-a-real-encoding")
	require.Error(t, err)
}
