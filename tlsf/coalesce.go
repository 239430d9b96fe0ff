package tlsf

// coalesceRight merges b with its physical successor if that successor
// is free, unlinking it from its size class first. Returns b, grown to
// cover the merged span. Ported from
// TwoLevelSegregateFit.cpp::CoalesceRight, generalized from its empty
// body.
func (p *Pool) coalesceRight(b View) View {
	next := p.physicalNext(b)
	if !next.IsFree() {
		return b
	}
	p.remove(next)

	b.SetSize(b.Size() + HeaderSize + next.Size())
	p.physicalNext(b).SetPrevPhysAddr(b.Addr())
	return b
}

// coalesceLeft merges b into its physical predecessor if that
// predecessor is free, unlinking it from its size class first. Returns
// the predecessor, grown to cover the merged span, or b unchanged if
// its predecessor is not free. Ported from
// TwoLevelSegregateFit.cpp::CoalesceLeft, generalized from its empty
// body.
func (p *Pool) coalesceLeft(b View) View {
	if !b.IsPrevFree() {
		return b
	}
	prevAddr := b.PrevPhysAddr()
	if prevAddr == NilAddr {
		return b
	}
	prev := At(prevAddr)
	p.remove(prev)

	prev.SetSize(prev.Size() + HeaderSize + b.Size())
	p.physicalNext(prev).SetPrevPhysAddr(prev.Addr())
	return prev
}

// coalesce merges a freshly-freed block b with both physical neighbors
// that are currently free, returning the single resulting block, still
// unlinked from any size class; the caller marks it free and inserts it
// (when it is the merged-into predecessor it already carries the free
// flag). Merging right first means a
// subsequent left merge folds all three spans together in one pass,
// matching the sequential nb-then-prevHeader structure of
// other_examples' tlsf-go Free.
func (p *Pool) coalesce(b View) View {
	b = p.coalesceRight(b)
	b = p.coalesceLeft(b)
	return b
}
