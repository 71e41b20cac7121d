package corpus

import "github.com/jimregan/ngramtool/internal/diskfmt"

// ElemSize is the on-disk width of one corpus element: SizeChar for the
// 16-bit char alphabet, SizeWord for the 32-bit word alphabet.
type ElemSize = diskfmt.ElemSize

const (
	SizeChar = diskfmt.SizeChar
	SizeWord = diskfmt.SizeWord
)

func hostMarker() byte            { return diskfmt.HostMarker() }
func checkMarker(got byte) error  { return diskfmt.CheckMarker(got) }
