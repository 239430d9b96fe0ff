package falloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/galloc/policy"
)

// TestRoundTripPreservesPayload checks that bytes written into an
// allocated span survive until that span is freed, across a mixed
// allocate/free workload — the allocator must never hand out overlapping
// memory for two live allocations.
func TestRoundTripPreservesPayload(t *testing.T) {
	a, err := NewAllocator(64 * 1024)
	require.NoError(t, err)

	type live struct {
		buf    []byte
		marker byte
	}
	var liveBufs []live

	for i := 0; i < 64; i++ {
		size := 16 + (i%13)*8
		buf, err := a.Allocate(size)
		require.NoError(t, err)
		marker := byte(i + 1)
		for j := range buf {
			buf[j] = marker
		}
		liveBufs = append(liveBufs, live{buf: buf, marker: marker})

		if i%3 == 0 && len(liveBufs) > 1 {
			victim := liveBufs[0]
			liveBufs = liveBufs[1:]
			require.NoError(t, a.Free(victim.buf))
		}
	}

	for _, lb := range liveBufs {
		for _, b := range lb.buf {
			require.Equal(t, lb.marker, b, "live allocation corrupted by a later allocation/free")
		}
	}
}

// TestPeakNeverDecreases exercises the high-water-mark invariant across
// an allocate/free/allocate cycle.
func TestPeakNeverDecreases(t *testing.T) {
	a, err := NewAllocator(8192)
	require.NoError(t, err)

	b1, err := a.Allocate(2048)
	require.NoError(t, err)
	peak1 := a.Stats().Peak

	require.NoError(t, a.Free(b1))
	assert.Equal(t, peak1, a.Stats().Peak)

	b2, err := a.Allocate(512)
	require.NoError(t, err)
	defer func() { _ = a.Free(b2) }()
	assert.Equal(t, peak1, a.Stats().Peak, "a smaller live allocation must not lower a prior peak")
}

// TestAllocatedNeverExceedsCapacityUnderStatic checks that Static mode
// never reports more bytes allocated than the arena actually has.
func TestAllocatedNeverExceedsCapacityUnderStatic(t *testing.T) {
	a, err := NewAllocator(4096, WithAllocationMode(policy.Static))
	require.NoError(t, err)

	var total int
	for {
		buf, err := a.Allocate(64)
		if err != nil {
			break
		}
		total += len(buf)
	}

	assert.LessOrEqual(t, int64(total), a.Capacity())
}
