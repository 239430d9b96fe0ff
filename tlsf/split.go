package tlsf

// canSplit reports whether a block of b's size can donate size bytes of
// payload to a new allocation and still leave a remainder big enough to
// stand alone as a block. Ported from TwoLevelSegregateFit.cpp::CanSplit.
func canSplit(b View, size int) bool {
	return b.Size() >= BlockStructSize+size
}

// splitIfWorthwhile, given a free block b about to satisfy a size-byte
// request, carves the excess off into a new free block and inserts it,
// shrinking b to exactly size in place. Does nothing if the excess is
// too small to stand alone as a block (b is handed over whole, carrying
// some internal fragmentation instead).
//
// Grounded on TwoLevelSegregateFit.cpp::Split, generalized from its
// empty body using the same back-pointer bookkeeping CoalesceLeft/Right
// must undo: the block physically following the split point has its
// prevPhysBlock repointed at the new remainder.
func (p *Pool) splitIfWorthwhile(b View, size int) {
	if !canSplit(b, size) {
		return
	}

	remainderSize := b.Size() - size - HeaderSize
	remainderAddr := b.PayloadAddr() + uintptr(size)

	rem := At(remainderAddr)
	rem.SetPrevPhysAddr(b.Addr())
	rem.SetSize(remainderSize)
	rem.SetFree(true)
	rem.SetPrevFree(false) // b, its predecessor, is about to be allocated

	after := At(remainderAddr + uintptr(HeaderSize+remainderSize))
	after.SetPrevPhysAddr(remainderAddr)

	b.SetSize(size)

	p.insert(rem)
}
