package falloc

import "errors"

// Error taxonomy per spec.md §7. All four are returned to the caller
// immediately; the allocator is left in a consistent state on every
// error path (no partial split or coalesce happens before an error is
// returned). Use-after-free is not detected and remains undefined
// behavior, as spec.md §7 allows; Free does panic when the span's tag
// already reads free, which catches a plain double free (a double free
// after the memory was reused is not caught), the same
// debug-assertion-style choice unsafex/malloc makes.
var (
	// ErrInvalidSize is returned by Allocate for a zero-sized request.
	ErrInvalidSize = errors.New("falloc: invalid size")
	// ErrInvalidPointer is returned by Free for a nil pointer or one
	// that does not lie inside any arena owned by this allocator.
	ErrInvalidPointer = errors.New("falloc: invalid pointer")
	// ErrOutOfMemory is returned by Allocate under Static allocation
	// mode when no free span is large enough.
	ErrOutOfMemory = errors.New("falloc: out of memory")
	// ErrBackingAllocationFailed is returned by Allocate under Dynamic
	// allocation mode when growing the arena set failed.
	ErrBackingAllocationFailed = errors.New("falloc: backing allocation failed")
)
