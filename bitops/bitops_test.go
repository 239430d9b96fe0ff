package bitops

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindLastBitSetZero(t *testing.T) {
	assert.Equal(t, -1, FindLastBitSet(0))
}

func TestFindLastBitSetMatchesMathBits(t *testing.T) {
	for _, v := range []uint64{1, 2, 3, 4, 7, 8, 255, 256, 1 << 20, 1 << 62, ^uint64(0)} {
		want := bits.Len64(v) - 1
		assert.Equal(t, want, FindLastBitSet(v), "v=%d", v)
	}
}

func TestFindFirstBitSetZero(t *testing.T) {
	assert.Equal(t, -1, FindFirstBitSet(0))
}

func TestFindFirstBitSetMatchesMathBits(t *testing.T) {
	for _, v := range []uint64{1, 2, 3, 4, 8, 12, 256, 1 << 20, 1 << 62} {
		want := bits.TrailingZeros64(v)
		assert.Equal(t, want, FindFirstBitSet(v), "v=%d", v)
	}
}
