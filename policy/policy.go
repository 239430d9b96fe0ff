// Package policy carries the tagged-variant enums selected at allocator
// construction: where to place a fit (Placement), when to merge free
// neighbors (Coalescing), and whether the arena may grow (AllocationMode).
// Each is dispatched once per Allocate/Free call rather than through a
// virtual-dispatch hierarchy.
package policy

// Placement selects which free span satisfies a request.
type Placement int

const (
	// FirstFit returns the first free span encountered that fits.
	FirstFit Placement = iota
	// NextFit resumes scanning from the span that satisfied the previous
	// request. It does NOT wrap from the end of the free list back to
	// the head when no fit is found past the roving pointer — this is
	// the reference implementation's documented behavior, preserved
	// here rather than silently patched. A request that would only fit
	// in a span before last_fit spuriously misses.
	NextFit
	// BestFit scans the whole free list and returns the smallest span
	// that fits, ties broken by first-encountered.
	BestFit
)

func (p Placement) String() string {
	switch p {
	case FirstFit:
		return "FirstFit"
	case NextFit:
		return "NextFit"
	case BestFit:
		return "BestFit"
	default:
		return "Placement(?)"
	}
}

// Coalescing selects when freed neighbors are merged.
type Coalescing int

const (
	// Immediate merges a freed span with its physical neighbors inline,
	// during Free.
	Immediate Coalescing = iota
	// Deferred is carried as a distinct enum value but is not
	// differentiated in behavior from Immediate: Free still merges
	// inline. A real deferred scheme would accumulate freed spans and
	// coalesce lazily on an allocation miss; the reference
	// implementation never did this, so neither do we (see DESIGN.md).
	Deferred
)

func (c Coalescing) String() string {
	switch c {
	case Immediate:
		return "Immediate"
	case Deferred:
		return "Deferred"
	default:
		return "Coalescing(?)"
	}
}

// AllocationMode selects whether the arena is fixed or grows on demand.
type AllocationMode int

const (
	// Static fails Allocate with ErrOutOfMemory when no span fits.
	Static AllocationMode = iota
	// Dynamic acquires a new arena sized max(requestedSize, PageSize)
	// and retries the search when no span fits.
	Dynamic
)

func (m AllocationMode) String() string {
	switch m {
	case Static:
		return "Static"
	case Dynamic:
		return "Dynamic"
	default:
		return "AllocationMode(?)"
	}
}

// DefaultAlignment is the default payload alignment in bytes.
const DefaultAlignment = 8

// DefaultPageSize is the default arena growth unit under Dynamic mode.
const DefaultPageSize = 4096

// LargeBlockThreshold is unused by the explicit free-list hot path; it
// is carried for variants (e.g. a size-classed front end) that want to
// route large requests differently.
const LargeBlockThreshold = 128

// Align rounds request up to a multiple of alignment (a power of two),
// then raises it further to minPayload if still short, returning the
// aligned size and the padding added relative to the original request.
func Align(request, alignment, minPayload int) (alignedSize, padding int) {
	aligned := (request + alignment - 1) &^ (alignment - 1)
	if aligned < minPayload {
		aligned = minPayload
	}
	return aligned, aligned - request
}
