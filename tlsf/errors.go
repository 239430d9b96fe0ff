package tlsf

import "errors"

// Error taxonomy, mirroring falloc's (see falloc/errors.go): four
// sentinel errors, no panics except on a detected double free.
var (
	ErrInvalidSize             = errors.New("tlsf: invalid size")
	ErrInvalidPointer          = errors.New("tlsf: invalid pointer")
	ErrOutOfMemory             = errors.New("tlsf: out of memory")
	ErrBackingAllocationFailed = errors.New("tlsf: backing allocation failed")
)
