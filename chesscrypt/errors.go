package chesscrypt

import "errors"

var (
	ErrBoardTooSmall        = errors.New("board side must be at least 3")
	ErrNegativeIterations   = errors.New("iteration count must be non-negative")
	ErrOutOfRange           = errors.New("input outside table domain")
	ErrBijectivityViolation = errors.New("table is not a permutation")
)
