package falloc

import (
	"github.com/cloudwego/galloc/arena"
	"github.com/cloudwego/galloc/internal/unsafex"
	"github.com/cloudwego/galloc/span"
	"github.com/cloudwego/galloc/tag"
)

// coalesceAndInsert implements the four cases of spec.md §4.6: a freed
// span's immediate left and right physical neighbors (same arena only —
// coalescing never crosses an arena boundary) are merged in if they are
// currently free, then the resulting span is linked into the free list.
//
// Both Immediate and Deferred coalescing policies reach this path; see
// policy.Coalescing for why Deferred is not actually different.
func (a *Allocator) coalesceAndInsert(addr uintptr) {
	ar := a.arenaFor(addr)
	v := span.At(addr)
	size := v.Header().GetSize()

	leftAddr, hasLeft := leftNeighbor(ar, addr)
	rightAddr, hasRight := rightNeighbor(ar, addr, size)

	leftFree := hasLeft && span.At(leftAddr).Header().IsFree()
	rightFree := hasRight && span.At(rightAddr).Header().IsFree()

	// A right neighbor merged away stops being a span; don't leave the
	// NextFit roving pointer on it. NilAddr restarts the scan at Head,
	// where the merged span is about to be inserted.
	if rightFree && a.lastFit == rightAddr {
		a.lastFit = span.NilAddr
	}

	switch {
	case !leftFree && !rightFree:
		span.Create(addr, size)
		a.freeList.Insert(addr)

	case leftFree && !rightFree:
		a.freeList.Remove(leftAddr)
		merged := span.At(leftAddr).Header().GetSize() + span.Overhead + size
		span.Create(leftAddr, merged)
		a.freeList.Insert(leftAddr)

	case !leftFree && rightFree:
		a.freeList.Remove(rightAddr)
		merged := size + span.Overhead + span.At(rightAddr).Header().GetSize()
		span.Create(addr, merged)
		a.freeList.Insert(addr)

	default: // both neighbors free
		a.freeList.Remove(leftAddr)
		a.freeList.Remove(rightAddr)
		merged := span.At(leftAddr).Header().GetSize() + span.Overhead +
			size + span.Overhead + span.At(rightAddr).Header().GetSize()
		span.Create(leftAddr, merged)
		a.freeList.Insert(leftAddr)
	}
}

// leftNeighbor reads the boundary-tag footer immediately preceding addr
// to locate and size the left physical neighbor in O(1), the reason
// boundary tags exist at all. Returns false if addr is the first span in
// its arena.
func leftNeighbor(ar *arena.Arena, addr uintptr) (uintptr, bool) {
	if ar == nil || addr < ar.Start()+uintptr(span.FooterSize) {
		return span.NilAddr, false
	}
	footerAddr := addr - uintptr(span.FooterSize)
	leftTag := tag.Tag(unsafex.LoadWord(unsafex.FromAddr(footerAddr)))
	leftSize := leftTag.GetSize()
	leftHeaderAddr := footerAddr - uintptr(leftSize) - uintptr(span.HeaderSize)
	if leftHeaderAddr < ar.Start() {
		return span.NilAddr, false
	}
	return leftHeaderAddr, true
}

// rightNeighbor locates the span immediately following the one at addr
// with the given payload size. Returns false if addr's span runs to the
// end of its arena.
func rightNeighbor(ar *arena.Arena, addr uintptr, size int) (uintptr, bool) {
	if ar == nil {
		return span.NilAddr, false
	}
	rightAddr := addr + uintptr(span.HeaderSize+size+span.FooterSize)
	if rightAddr >= ar.End() {
		return span.NilAddr, false
	}
	return rightAddr, true
}
