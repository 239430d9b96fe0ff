package tlsf

// insertFreeBlock links block into the head of size class (fl, sl) and
// sets both bitmap bits. Ported from
// TwoLevelSegregateFit.cpp::InsertFreeBlock, with a nil-head guard the
// original lacks (InsertFreeBlock there unconditionally dereferences the
// current head to set its prev pointer, which is only safe once every
// class starts with a live sentinel block — this pool has no such
// sentinel, so an empty class's head is genuinely nil).
func (p *Pool) insertFreeBlock(b View, fl, sl int) {
	head := p.blocks[fl][sl]
	b.SetNext(head)
	b.SetPrev(NilAddr)
	if head != NilAddr {
		At(head).SetPrev(b.Addr())
	}
	p.blocks[fl][sl] = b.Addr()

	p.flBitmap |= 1 << uint(fl)
	p.slBitmap[fl] |= 1 << uint(sl)
}

// removeFreeBlock splices block out of size class (fl, sl), clearing the
// class's bitmap bits once it empties.
//
// Ported from TwoLevelSegregateFit.cpp::RemoveFreeBlock, with its
// documented bug fixed: the reference only clears fl_bitmap_ when
// sl_bitmap_[fl] is still non-zero after clearing the sl bit — backwards,
// since a non-empty second-level bitmap means the first-level bit must
// stay set. This clears fl_bitmap_'s bit precisely when sl_bitmap_[fl]
// has become zero.
func (p *Pool) removeFreeBlock(b View, fl, sl int) {
	prev := b.Prev()
	next := b.Next()

	if prev != NilAddr {
		At(prev).SetNext(next)
	}
	if next != NilAddr {
		At(next).SetPrev(prev)
	}

	if p.blocks[fl][sl] == b.Addr() {
		p.blocks[fl][sl] = next

		if next == NilAddr {
			p.slBitmap[fl] &^= 1 << uint(sl)
			if p.slBitmap[fl] == 0 {
				p.flBitmap &^= 1 << uint(fl)
			}
		}
	}

	b.SetPrev(NilAddr)
	b.SetNext(NilAddr)
}

// insert maps block to its size class and links it in.
func (p *Pool) insert(b View) {
	fl, sl := mappingInsert(b.Size())
	p.insertFreeBlock(b, fl, sl)
}

// remove maps block to its size class and unlinks it.
func (p *Pool) remove(b View) {
	fl, sl := mappingInsert(b.Size())
	p.removeFreeBlock(b, fl, sl)
}
