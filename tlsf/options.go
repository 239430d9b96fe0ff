package tlsf

import "github.com/cloudwego/galloc/rawalloc"

// Config holds Pool's tunables. Unlike falloc, there is no Placement
// policy (the two-level bitmap always finds a good-fit block directly)
// and no Coalescing policy (coalescing here is always immediate, since
// the prevPhysBlock back-pointer that makes it O(1) has no cheaper
// deferred alternative).
type Config struct {
	RawAllocator rawalloc.Allocator
}

func defaultConfig() Config {
	return Config{RawAllocator: rawalloc.Heap{}}
}

// Option configures a Pool at construction time.
type Option func(*Config)

// WithRawAllocator overrides the host allocator the pool's backing
// arena is acquired from. The default is rawalloc.Heap{}.
func WithRawAllocator(ra rawalloc.Allocator) Option {
	return func(c *Config) { c.RawAllocator = ra }
}
