package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestNewAndBounds(t *testing.T) {
	buf := make([]byte, 4096)
	a := New(buf)
	assert.Equal(t, 4096, a.Len())
	assert.Equal(t, a.start+4096, a.end)
	assert.True(t, a.Contains(a.Start()))
	assert.False(t, a.Contains(a.End()))
	assert.True(t, a.Contains(a.End()-1))
}

func TestContainsOffset(t *testing.T) {
	a := New(make([]byte, 64))
	assert.True(t, a.ContainsOffset(0))
	assert.True(t, a.ContainsOffset(63))
	assert.False(t, a.ContainsOffset(64))
	assert.False(t, a.ContainsOffset(-1))
}

func TestAtAndOffsetOfRoundTrip(t *testing.T) {
	a := New(make([]byte, 128))
	p := a.At(16)
	addr := uintptr(p)
	assert.Equal(t, 16, a.OffsetOf(addr))
	assert.Equal(t, unsafe.Pointer(&a.buf[16]), p)
}
