package extract

import "errors"

// ErrBadRange is returned by Sweep when N, M or freq fall outside the
// documented bounds (1 <= N <= M <= 255, freq >= 1).
var ErrBadRange = errors.New("extract: N, M or freq out of range")
