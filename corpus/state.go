package corpus

import "errors"

type state int

const (
	idle state = iota
	parsing
	flushed
)

func (s state) String() string {
	switch s {
	case idle:
		return "idle"
	case parsing:
		return "parsing"
	case flushed:
		return "flushed"
	default:
		return "unknown"
	}
}

// Sentinel errors, checked with errors.Is rather than compared directly.
var (
	// ErrOversizedChunk is returned by ParseBuf when the caller's chunk
	// is larger than the builder's main capacity. The caller should log
	// a warning and skip the chunk; the builder's state is unaffected.
	ErrOversizedChunk = errors.New("corpus: chunk exceeds main capacity")

	// ErrBufferFull is returned by ParseBuf in in-memory mode (no output
	// base configured) when the buffer would overflow and there is
	// nowhere to spill to.
	ErrBufferFull = errors.New("corpus: buffer full and no output base configured for spilling")

	// ErrWrongState is returned when a method is called outside the
	// state it requires (idle -> parsing -> flushed).
	ErrWrongState = errors.New("corpus: invalid operation for current state")
)
