package falloc

import (
	"github.com/cloudwego/galloc/policy"
	"github.com/cloudwego/galloc/span"
)

// find dispatches to the configured placement policy and returns the
// header address of a free span whose payload is at least size bytes, or
// span.NilAddr if none fits.
func (a *Allocator) find(size int) uintptr {
	switch a.cfg.Placement {
	case policy.NextFit:
		return a.findNextFit(size)
	case policy.BestFit:
		return a.findBestFit(size)
	default:
		return a.findFirstFit(size)
	}
}

func (a *Allocator) findFirstFit(size int) uintptr {
	found := span.NilAddr
	a.freeList.Each(func(addr uintptr) bool {
		if span.At(addr).Header().GetSize() >= size {
			found = addr
			return false
		}
		return true
	})
	return found
}

// findNextFit resumes scanning from the roving lastFit pointer and walks
// forward to the tail of the free list without wrapping back to Head —
// the reference implementation's documented non-wrapping behavior (see
// policy.NextFit). lastFit is only ever set to an address this method
// returns or to that span's successor once it is removed from the list
// (see Allocate), so it is never left dangling on an allocated span.
func (a *Allocator) findNextFit(size int) uintptr {
	cur := a.lastFit
	if cur == span.NilAddr {
		cur = a.freeList.Head
	}
	for cur != span.NilAddr {
		if span.At(cur).Header().GetSize() >= size {
			a.lastFit = cur
			return cur
		}
		cur = span.At(cur).Next()
	}
	return span.NilAddr
}

func (a *Allocator) findBestFit(size int) uintptr {
	best := span.NilAddr
	bestSize := -1
	a.freeList.Each(func(addr uintptr) bool {
		s := span.At(addr).Header().GetSize()
		if s >= size && (bestSize == -1 || s < bestSize) {
			bestSize = s
			best = addr
		}
		return true
	})
	return best
}
