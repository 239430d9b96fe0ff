package tlsf

import "github.com/cloudwego/galloc/bitops"

// searchSuitableBlock finds the smallest non-empty size class at or above
// (fl, sl), returning its head block and the coordinates it actually
// lives at. Returns (View{}, 0, 0, false) if no class at or above (fl, sl)
// has any free block. Ported from
// TwoLevelSegregateFit.cpp::SearchSuitableBlock.
func (p *Pool) searchSuitableBlock(fl, sl int) (View, int, int, bool) {
	slBitmap := p.slBitmap[fl] & (^uint64(0) << uint(sl))
	if slBitmap == 0 {
		flBitmap := p.flBitmap & (^uint64(0) << uint(fl+1))
		if flBitmap == 0 {
			return View{}, 0, 0, false
		}
		fl = bitops.FindFirstBitSet(flBitmap)
		slBitmap = p.slBitmap[fl]
	}

	sl = bitops.FindFirstBitSet(slBitmap)
	addr := p.blocks[fl][sl]
	if addr == NilAddr {
		return View{}, 0, 0, false
	}
	return At(addr), fl, sl, true
}
