package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackRoundTrip(t *testing.T) {
	tests := []struct {
		size      int
		allocated bool
	}{
		{0, false},
		{8, true},
		{4096, false},
		{1 << 20, true},
	}
	for _, tt := range tests {
		tg := Pack(tt.size, tt.allocated)
		assert.Equal(t, tt.size, tg.GetSize())
		assert.Equal(t, tt.allocated, tg.IsAllocated())
		assert.Equal(t, !tt.allocated, tg.IsFree())
	}
}

func TestPackOddSizePanics(t *testing.T) {
	assert.Panics(t, func() { Pack(3, false) })
}

func TestWithSizePreservesFlag(t *testing.T) {
	tg := Pack(16, true)
	tg2 := tg.WithSize(32)
	assert.Equal(t, 32, tg2.GetSize())
	assert.True(t, tg2.IsAllocated())
}

func TestWithAllocatedPreservesSize(t *testing.T) {
	tg := Pack(16, false)
	tg2 := tg.WithAllocated(true)
	assert.Equal(t, 16, tg2.GetSize())
	assert.True(t, tg2.IsAllocated())
	tg3 := tg2.WithAllocated(false)
	assert.Equal(t, 16, tg3.GetSize())
	assert.True(t, tg3.IsFree())
}
