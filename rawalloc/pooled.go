package rawalloc

import "github.com/bytedance/gopkg/lang/mcache"

// Pooled backs arena acquisition with bytedance/gopkg's size-classed
// byte-slice pool instead of a fresh make() per arena. It plays the
// same role cache/mempool plays in the teacher tree, generalized from a
// package-level singleton to an injectable rawalloc.Allocator: under
// Dynamic growth, an allocator churns through many arena-sized buffers,
// and routing that churn through a pool avoids repeatedly pressuring
// the garbage collector for multi-KB/MB allocations.
type Pooled struct{}

// Alloc returns a buffer of exactly size bytes from the shared mcache
// pool. mcache.Malloc may return a buffer with spare capacity beyond
// size; Pooled reslices it down to exactly size so arena bookkeeping
// always sees the requested length.
func (Pooled) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	buf := mcache.Malloc(size)
	return buf[:size:size], nil
}

// Free returns buf to the mcache pool. buf must be the exact slice
// returned by Alloc (or a reslice sharing its backing array and
// original capacity); mcache validates this internally and silently
// ignores buffers it didn't allocate.
func (Pooled) Free(buf []byte) {
	mcache.Free(buf)
}
