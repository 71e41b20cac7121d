package reduce

import "errors"

// ErrAlgorithm3Precondition is returned by Reduce3 when any input entry
// has a frequency other than 1. The compacting variant relies on
// equal-count substring runs landing adjacent to each other after
// sorting, which only holds when every count is 1.
var ErrAlgorithm3Precondition = errors.New("reduce: algorithm 3 requires every entry to have freq == 1")
