package falloc

import (
	"github.com/cloudwego/galloc/policy"
	"github.com/cloudwego/galloc/rawalloc"
)

// Config holds every tunable of an Allocator. The original C++ allocator
// exposed these as constructor overloads; NewAllocator replaces that set
// with a single constructor plus functional options (see SPEC_FULL.md §6).
type Config struct {
	Alignment      int
	PageSize       int
	Placement      policy.Placement
	Coalescing     policy.Coalescing
	AllocationMode policy.AllocationMode
	RawAllocator   rawalloc.Allocator
}

func defaultConfig() Config {
	return Config{
		Alignment:      policy.DefaultAlignment,
		PageSize:       policy.DefaultPageSize,
		Placement:      policy.FirstFit,
		Coalescing:     policy.Immediate,
		AllocationMode: policy.Dynamic,
		RawAllocator:   rawalloc.Heap{},
	}
}

// Option configures an Allocator at construction time.
type Option func(*Config)

// WithAlignment sets the payload alignment in bytes. alignment must be a
// power of two; NewAllocator does not validate this.
func WithAlignment(alignment int) Option {
	return func(c *Config) { c.Alignment = alignment }
}

// WithPageSize sets the arena growth unit used by Dynamic allocation mode.
func WithPageSize(pageSize int) Option {
	return func(c *Config) { c.PageSize = pageSize }
}

// WithPlacement selects the fit-finding policy.
func WithPlacement(p policy.Placement) Option {
	return func(c *Config) { c.Placement = p }
}

// WithCoalescing selects the free-neighbor merge policy.
func WithCoalescing(co policy.Coalescing) Option {
	return func(c *Config) { c.Coalescing = co }
}

// WithAllocationMode selects whether the allocator grows on a miss
// (Dynamic, the default) or fails with ErrOutOfMemory (Static).
func WithAllocationMode(m policy.AllocationMode) Option {
	return func(c *Config) { c.AllocationMode = m }
}

// WithRawAllocator overrides the host allocator arenas are acquired from.
// The default is rawalloc.Heap{}; pass rawalloc.Pooled{} to route arena
// acquisition through a size-classed pool instead.
func WithRawAllocator(ra rawalloc.Allocator) Option {
	return func(c *Config) { c.RawAllocator = ra }
}
