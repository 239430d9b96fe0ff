package tlsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocBasic(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	buf, err := p.Alloc(100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(buf), 100)
}

func TestAllocInvalidSize(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	_, err = p.Alloc(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = p.Alloc(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewInvalidCapacity(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestOutOfMemory(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)

	_, err = p.Alloc(2000)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestFreeThenReuse(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	buf, err := p.Alloc(200)
	require.NoError(t, err)

	require.NoError(t, p.Free(buf))

	buf2, err := p.Alloc(200)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(buf2), 200)
}

func TestFreeNilIsInvalidPointer(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Free(nil), ErrInvalidPointer)
}

func TestFreeForeignBufferIsInvalidPointer(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	foreign := make([]byte, 64)
	assert.ErrorIs(t, p.Free(foreign), ErrInvalidPointer)
}

func TestDoubleFreePanics(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	buf, err := p.Alloc(100)
	require.NoError(t, err)
	require.NoError(t, p.Free(buf))

	assert.Panics(t, func() {
		_ = p.Free(buf)
	})
}

func TestCoalesceReclaimsFullCapacityAfterFreeingEverything(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	a, err := p.Alloc(500)
	require.NoError(t, err)
	b, err := p.Alloc(500)
	require.NoError(t, err)
	c, err := p.Alloc(500)
	require.NoError(t, err)

	require.NoError(t, p.Free(b))
	require.NoError(t, p.Free(a))
	require.NoError(t, p.Free(c))

	// Every live block should have coalesced back into one span covering
	// (approximately) the whole pool, since nothing else was ever
	// allocated: a big request should now succeed.
	big, err := p.Alloc(3000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(big), 3000)
}

func TestStatsTrackAllocatedFreedAndPeak(t *testing.T) {
	p, err := New(4096)
	require.NoError(t, err)

	buf, err := p.Alloc(100)
	require.NoError(t, err)

	snap := p.Stats()
	assert.Equal(t, int64(len(buf)), snap.Allocated)
	assert.Equal(t, snap.Allocated, snap.Peak)

	require.NoError(t, p.Free(buf))
	snap = p.Stats()
	assert.Equal(t, int64(0), snap.Allocated)
	assert.Equal(t, int64(len(buf)), snap.Peak)
}
