// Package falloc implements the explicit free-list allocator: boundary
// tags for O(1) neighbor lookup, a doubly-linked free list, pluggable
// placement and coalescing policies, and optional Dynamic arena growth.
// It is the Go-native reworking of ExplicitFreeListAllocator.cpp.
package falloc

import (
	"github.com/cloudwego/galloc/arena"
	"github.com/cloudwego/galloc/freelist"
	"github.com/cloudwego/galloc/internal/unsafex"
	"github.com/cloudwego/galloc/policy"
	"github.com/cloudwego/galloc/span"
	"github.com/cloudwego/galloc/stats"
)

// Allocator is the explicit free-list allocator façade. The zero value is
// not usable; construct one with NewAllocator.
type Allocator struct {
	cfg         Config
	arenas      []*arena.Arena
	freeList    freelist.List
	lastFit     uintptr
	stats       stats.Counters
	minSpanSize int
}

// NewAllocator builds an Allocator that starts with one arena whose single
// free span holds capacity bytes (rounded up to the alignment), configured
// by opts. capacity must be positive. PageSize only sizes later growth.
func NewAllocator(capacity int, opts ...Option) (*Allocator, error) {
	if capacity <= 0 {
		return nil, ErrInvalidSize
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Allocator{cfg: cfg}
	a.minSpanSize = span.Overhead + span.LinkFieldsSize + cfg.Alignment

	payload, _ := policy.Align(capacity, cfg.Alignment, span.LinkFieldsSize)
	buf, err := cfg.RawAllocator.Alloc(span.Bytes(payload))
	if err != nil {
		return nil, ErrBackingAllocationFailed
	}
	ar := arena.New(buf)
	a.arenas = append(a.arenas, ar)
	a.installSpan(ar.Start(), payload)
	a.stats.OnGrow(payload)
	return a, nil
}

// grow acquires a new arena sized to host a span of at least payload
// bytes, or PageSize bytes if that is larger, and installs it as a fresh
// free span at the head of the free list. Matches spec's Dynamic-mode
// growth unit: max(alignedSize, PageSize).
//
// Resets lastFit to NilAddr: installSpan prepends the new span at Head,
// but under NextFit a stale lastFit may sit on a free span deeper in the
// list than Head, so the forward-only retry scan in find would never
// reach the span grow just installed. Clearing it forces that retry to
// start from Head, where the new span now lives.
func (a *Allocator) grow(payload int) error {
	arenaPayload := payload
	if arenaPayload < a.cfg.PageSize {
		arenaPayload = a.cfg.PageSize
	}

	buf, err := a.cfg.RawAllocator.Alloc(span.Bytes(arenaPayload))
	if err != nil {
		return ErrBackingAllocationFailed
	}

	ar := arena.New(buf)
	a.arenas = append(a.arenas, ar)

	addr := ar.Start()
	a.installSpan(addr, arenaPayload)
	a.lastFit = span.NilAddr
	a.stats.OnGrow(arenaPayload)
	return nil
}

// installSpan creates a fresh free span at addr and links it into the
// free list.
//
// When the free list is empty, Head is set to addr directly before
// calling Insert, mirroring the reference constructor's
// `free_list_ = CreateSpan(...)` direct assignment. Insert then hits its
// documented addr==Head early return (see freelist.Insert) and is a
// harmless no-op in that case; when the free list already has members,
// Head is left untouched and Insert performs its normal head-prepend.
func (a *Allocator) installSpan(addr uintptr, payload int) {
	span.Create(addr, payload)
	if a.freeList.Empty() {
		a.freeList.Head = addr
	}
	a.freeList.Insert(addr)
}

// Allocate returns a byte slice of at least size bytes (the whole payload
// of the chosen span, so at least size rounded up to the alignment)
// carved from a free span, or an error. Under Dynamic allocation mode a miss grows a new
// arena and retries once; under Static it returns ErrOutOfMemory.
func (a *Allocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	payload, _ := policy.Align(size, a.cfg.Alignment, span.LinkFieldsSize)

	fit := a.find(payload)
	if fit == span.NilAddr {
		if a.cfg.AllocationMode == policy.Static {
			return nil, ErrOutOfMemory
		}
		if err := a.grow(payload); err != nil {
			return nil, err
		}
		fit = a.find(payload)
		if fit == span.NilAddr {
			return nil, ErrOutOfMemory
		}
	}

	next := span.At(fit).Next()
	a.freeList.Remove(fit)
	if a.lastFit == fit {
		a.lastFit = next
	}

	a.splitIfWorthwhile(fit, payload)

	v := span.At(fit)
	v.SetSizeAndFlag(v.Header().GetSize(), true)
	v.ZeroLinks()
	a.stats.OnAllocate(v.Header().GetSize())
	return v.Payload(), nil
}

// Free returns buf, previously returned by Allocate, to the free list,
// coalescing with physical neighbors per the configured Coalescing
// policy. Returns ErrInvalidPointer if buf is nil or does not point
// inside any arena this Allocator owns. Panics if the span's tag shows
// it is already free, a cheap double-free detector; general
// use-after-free is not detected, matching spec.md §7.
func (a *Allocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrInvalidPointer
	}

	addr := uintptr(unsafex.DataPointer(buf)) - uintptr(span.HeaderSize)
	if !a.Contains(addr) {
		return ErrInvalidPointer
	}

	v := span.At(addr)
	if v.Header().IsFree() {
		panic("falloc: double free")
	}

	size := v.Header().GetSize()
	a.coalesceAndInsert(addr)
	a.stats.OnFree(size)
	return nil
}

// Contains reports whether addr lies inside any arena this Allocator owns.
func (a *Allocator) Contains(addr uintptr) bool {
	return a.arenaFor(addr) != nil
}

func (a *Allocator) arenaFor(addr uintptr) *arena.Arena {
	for _, ar := range a.arenas {
		if ar.Contains(addr) {
			return ar
		}
	}
	return nil
}

// Stats returns a point-in-time snapshot of the allocator's counters.
func (a *Allocator) Stats() stats.Snapshot {
	return a.stats.Snapshot(a.Capacity())
}

// Capacity returns the total bytes across every arena this allocator owns.
func (a *Allocator) Capacity() int64 {
	var total int64
	for _, ar := range a.arenas {
		total += int64(ar.Len())
	}
	return total
}

// ArenaBytes returns the backing buffer of each arena this allocator owns,
// in acquisition order. Exposed for diagnostics; callers must not mutate
// the returned slices' headers/footers.
func (a *Allocator) ArenaBytes() [][]byte {
	out := make([][]byte, len(a.arenas))
	for i, ar := range a.arenas {
		out[i] = ar.Bytes()
	}
	return out
}
