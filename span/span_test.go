package span

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func baseAddr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}

func TestCreateAndReadBack(t *testing.T) {
	buf := make([]byte, 256)
	v := Create(baseAddr(buf), 200)
	assert.Equal(t, 200, v.Header().GetSize())
	assert.True(t, v.Header().IsFree())
	assert.Equal(t, v.Header(), v.Footer())
	assert.Equal(t, NilAddr, v.Prev())
	assert.Equal(t, NilAddr, v.Next())
}

func TestSetSizeAndFlagSyncsFooter(t *testing.T) {
	buf := make([]byte, 256)
	v := At(baseAddr(buf))
	v.SetSizeAndFlag(64, true)
	assert.Equal(t, v.Header(), v.Footer())
	assert.True(t, v.Header().IsAllocated())
	assert.Equal(t, 64, v.Header().GetSize())
}

func TestLinks(t *testing.T) {
	buf := make([]byte, 256)
	base := baseAddr(buf)
	v := Create(base, 200)
	v.SetPrev(base + 8)
	v.SetNext(base + 64)
	assert.Equal(t, base+8, v.Prev())
	assert.Equal(t, base+64, v.Next())
	v.ZeroLinks()
	assert.Equal(t, NilAddr, v.Prev())
	assert.Equal(t, NilAddr, v.Next())
}

func TestPayloadAddrAndFooterAddr(t *testing.T) {
	buf := make([]byte, 256)
	base := baseAddr(buf)
	v := Create(base+16, 100)
	assert.Equal(t, base+16+uintptr(HeaderSize), v.PayloadAddr())
	assert.Equal(t, base+16+uintptr(HeaderSize)+100, v.FooterAddr())
	assert.Len(t, v.Payload(), 100)
}

func TestSpanBytes(t *testing.T) {
	assert.Equal(t, HeaderSize+100+FooterSize, Bytes(100))
}
