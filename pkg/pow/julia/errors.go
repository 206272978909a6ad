package julia

import "errors"

var (
	ErrInvalidIterationCap = errors.New("iteration cap must be positive")
	ErrInvalidTarget       = errors.New("target iterations out of acceptable range")
	ErrNonFinite           = errors.New("non-finite coordinate")
	ErrInvalidRadius       = errors.New("invalid sampling radius")
	ErrInvalidCount        = errors.New("invalid sample count")
	ErrInvalidPointBytes   = errors.New("invalid point encoding")
	ErrNoSolutionFound     = errors.New("no candidate escapes in the target iterations")
)
