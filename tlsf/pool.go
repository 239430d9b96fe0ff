package tlsf

import (
	"github.com/cloudwego/galloc/arena"
	"github.com/cloudwego/galloc/internal/unsafex"
	"github.com/cloudwego/galloc/stats"
)

// Pool is the TLSF allocator façade: a single fixed-size arena carved
// into Blocks, indexed by the two-level bitmap matrix. Unlike falloc's
// Allocator, a Pool never grows; it is the Go-native completion of
// TwoLevelSegregateFit.{h,cpp}'s Pool class, which likewise takes one
// backing buffer at construction and never requests another.
type Pool struct {
	cfg   Config
	arena *arena.Arena
	stats stats.Counters

	// start is the header address of the first real block; end is the
	// header address of the permanent zero-size sentinel block planted
	// at the arena's tail (grounded on other_examples' tlsf-go, which
	// uses the same technique). Every real block therefore always has a
	// valid physical-next neighbor to read or update flags on, even when
	// it is the last live block in the pool.
	start uintptr
	end   uintptr

	flBitmap uint64
	slBitmap [FLI]uint64
	blocks   [FLI][slCount]uintptr
}

// New builds a Pool backed by one arena sized to hold at least capacity
// bytes of payload, configured by opts. capacity must be positive.
func New(capacity int, opts ...Option) (*Pool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidSize
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	payload := adjustRequestSize(capacity)
	total := HeaderSize + payload + HeaderSize // real block + sentinel

	buf, err := cfg.RawAllocator.Alloc(total)
	if err != nil {
		return nil, ErrBackingAllocationFailed
	}

	ar := arena.New(buf)
	p := &Pool{cfg: cfg, arena: ar}

	start := ar.Start()
	sentinelAddr := start + uintptr(HeaderSize+payload)

	b := At(start)
	b.SetPrevPhysAddr(NilAddr)
	b.SetSize(payload)
	b.SetFree(true)
	b.SetPrevFree(false)

	sentinel := At(sentinelAddr)
	sentinel.SetPrevPhysAddr(start)
	sentinel.SetSize(0)
	sentinel.SetFree(false)
	sentinel.SetPrevFree(true)

	p.start = start
	p.end = sentinelAddr

	p.insert(b)
	p.stats.OnGrow(payload)
	return p, nil
}

// physicalNext returns the block immediately following b in memory.
// Always valid for any live block, including one abutting the sentinel.
func (p *Pool) physicalNext(b View) View {
	return At(b.PayloadAddr() + uintptr(b.Size()))
}

// Alloc returns a byte slice of at least size bytes, or ErrOutOfMemory
// if no free block is large enough.
func (p *Pool) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	need := adjustRequestSize(size)
	fl, sl := mappingSearch(need)
	b, fl, sl, ok := p.searchSuitableBlock(fl, sl)
	if !ok {
		return nil, ErrOutOfMemory
	}
	p.removeFreeBlock(b, fl, sl)

	p.splitIfWorthwhile(b, need)

	b.SetFree(false)
	p.physicalNext(b).SetPrevFree(false)
	b.SetPrev(NilAddr)
	b.SetNext(NilAddr)

	p.stats.OnAllocate(b.Size())
	return b.Payload(), nil
}

// Free returns buf, previously returned by Alloc, to the pool,
// coalescing with free physical neighbors. Returns ErrInvalidPointer if
// buf is nil or does not point inside this pool's arena. Panics if the
// block is already free, a cheap double-free detector.
func (p *Pool) Free(buf []byte) error {
	if len(buf) == 0 {
		return ErrInvalidPointer
	}

	addr := uintptr(unsafex.DataPointer(buf)) - uintptr(HeaderSize)
	if !p.Contains(addr) {
		return ErrInvalidPointer
	}

	b := At(addr)
	if b.IsFree() {
		panic("tlsf: double free")
	}
	size := b.Size()

	merged := p.coalesce(b)
	merged.SetFree(true)
	p.physicalNext(merged).SetPrevFree(true)
	p.insert(merged)

	p.stats.OnFree(size)
	return nil
}

// Contains reports whether addr is a valid block header address inside
// this pool's arena (excluding the sentinel itself).
func (p *Pool) Contains(addr uintptr) bool {
	return addr >= p.start && addr < p.end
}

// Stats returns a point-in-time snapshot of the pool's counters.
func (p *Pool) Stats() stats.Snapshot {
	return p.stats.Snapshot(p.Capacity())
}

// Capacity returns the total payload bytes this pool was built with.
func (p *Pool) Capacity() int64 {
	return int64(p.end - p.start - HeaderSize)
}

// ArenaBytes returns the pool's single backing buffer. Exposed for
// diagnostics; callers must not mutate it.
func (p *Pool) ArenaBytes() []byte {
	return p.arena.Bytes()
}
