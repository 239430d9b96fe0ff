package falloc

import "github.com/cloudwego/galloc/span"

// splitIfWorthwhile carves a second free span out of the tail of the span
// at addr when the leftover is large enough to stand on its own (spec.md
// §4.5): strictly more than minSpanSize bytes once its own header and
// footer are accounted for. Otherwise the whole span is left allocated
// as-is, accepting the internal fragmentation rather than producing a
// free span too small to ever satisfy a later request (it could not
// even hold its own free-list links).
//
// On a split, addr's header is truncated to payload bytes; the caller
// (Allocate) is responsible for marking it allocated afterward.
func (a *Allocator) splitIfWorthwhile(addr uintptr, payload int) {
	v := span.At(addr)
	have := v.Header().GetSize()
	remaining := have - payload
	if remaining <= a.minSpanSize {
		return
	}

	remainderPayload := remaining - span.Overhead
	remainderAddr := addr + uintptr(span.HeaderSize+payload+span.FooterSize)
	span.Create(remainderAddr, remainderPayload)
	a.freeList.Insert(remainderAddr)

	v.SetSizeAndFlag(payload, false)
}
