// Package arena owns a single contiguous byte region obtained from a
// host allocator and answers bounds questions about addresses inside it.
package arena

import (
	"unsafe"

	"github.com/cloudwego/galloc/internal/unsafex"
)

// Arena is a [start, end) byte region. It does not know about spans or
// boundary tags; it only tracks the raw buffer and its address range.
type Arena struct {
	buf   []byte
	start uintptr
	end   uintptr
}

// New wraps buf as an Arena. buf must be non-empty.
func New(buf []byte) *Arena {
	base := unsafex.Base(buf)
	start := uintptr(base)
	return &Arena{
		buf:   buf,
		start: start,
		end:   start + uintptr(len(buf)),
	}
}

// Bytes returns the backing buffer.
func (a *Arena) Bytes() []byte { return a.buf }

// Len returns the arena's capacity in bytes.
func (a *Arena) Len() int { return len(a.buf) }

// Start is the address of the first byte of the arena.
func (a *Arena) Start() uintptr { return a.start }

// End is the address one past the last byte of the arena.
func (a *Arena) End() uintptr { return a.end }

// Contains reports whether addr lies inside [start, end).
func (a *Arena) Contains(addr uintptr) bool {
	return addr >= a.start && addr < a.end
}

// ContainsOffset reports whether the arena-relative offset lies in
// [0, len(buf)).
func (a *Arena) ContainsOffset(offset int) bool {
	return offset >= 0 && offset < len(a.buf)
}

// At returns a pointer to byte offset inside the arena.
func (a *Arena) At(offset int) unsafe.Pointer {
	return unsafex.Add(unsafex.Base(a.buf), offset)
}

// OffsetOf returns the arena-relative offset of addr, which must satisfy
// Contains(addr) for the result to be meaningful.
func (a *Arena) OffsetOf(addr uintptr) int {
	return int(addr - a.start)
}
