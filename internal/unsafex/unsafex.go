// Package unsafex is the one place in this module allowed to reinterpret
// raw bytes of an arena as structured words. Every exported function here
// is a narrow, auditable primitive: load or store a machine word at a
// pointer, offset a pointer, or recover the byte distance between two
// pointers (PointerToOffset).
//
// Callers are responsible for proving, per call, that the offset is
// in-bounds and word-aligned; these functions do no checking of their
// own (only Base, by indexing buf[0], panics on an empty slice), matching
// the discipline unsafex/malloc in the teacher tree already follows for
// its arena/header arithmetic.
package unsafex

import "unsafe"

// WordSize is the size in bytes of the machine word boundary tags and
// free-list links are packed into.
const WordSize = int(unsafe.Sizeof(uint64(0)))

// Base returns an unsafe.Pointer to the first byte of buf.
// Panics if buf is empty; callers must not call Base on an empty arena.
func Base(buf []byte) unsafe.Pointer {
	return unsafe.Pointer(&buf[0])
}

// Add returns a pointer offset bytes past base. offset may be negative.
func Add(base unsafe.Pointer, offset int) unsafe.Pointer {
	return unsafe.Add(base, offset)
}

// LoadWord reads a uint64 at p without bounds checking beyond what the
// caller has already established.
func LoadWord(p unsafe.Pointer) uint64 {
	return *(*uint64)(p)
}

// StoreWord writes v as a uint64 at p.
func StoreWord(p unsafe.Pointer, v uint64) {
	*(*uint64)(p) = v
}

// SliceAt reinterprets the n bytes starting at p as a []byte without
// copying. The returned slice aliases the arena; its lifetime is bounded
// by the arena's.
func SliceAt(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}

// PointerToOffset returns the distance in bytes from base to p. p must
// point at or after base; the result is negative otherwise, which a
// caller can use as an out-of-bounds signal.
func PointerToOffset(base, p unsafe.Pointer) int {
	return int(uintptr(p) - uintptr(base))
}

// FromAddr reconstructs an unsafe.Pointer from an address previously
// obtained via uintptr(somePointer) and stored in arena memory (as a
// free-list link or similar intrusive field).
//
// This relies on Go's current non-moving garbage collector: converting
// an arbitrary uintptr back to unsafe.Pointer is documented as invalid
// in general, but is safe here because the byte slice backing every
// address this module hands out is kept reachable for the allocator's
// whole lifetime (held by arena.Arena), so the GC never frees or moves
// the memory an address like this points into.
func FromAddr(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr) //nolint:govet // intrusive pointer reconstruction, see doc comment
}

// DataPointer recovers the address of the first byte of a []byte slice
// header without requiring the slice to be non-empty (len/cap may be 0,
// unlike &b[0] which panics on an empty slice with a nil data pointer).
func DataPointer(b []byte) unsafe.Pointer {
	type sliceHeader struct {
		Data unsafe.Pointer
		Len  int
		Cap  int
	}
	return (*sliceHeader)(unsafe.Pointer(&b)).Data
}
