// Package tlsf implements the Two-Level Segregated Fit allocator: O(1)
// mapping from a requested size to a size class, an O(1) bitmap search
// for the first non-empty class at or above it, and O(1) coalescing via
// a back-pointer to the previous physical block instead of a boundary-tag
// footer. It is the Go-native completion of TwoLevelSegregateFit.{h,cpp},
// whose Alloc/Free/Split/Coalesce* bodies were left empty in the
// original and are implemented here in full.
package tlsf

import (
	"github.com/cloudwego/galloc/internal/unsafex"
)

// NilAddr marks the absence of a link or back-pointer.
const NilAddr uintptr = 0

// HeaderSize is prevPhysBlock + size/flags: the part of a Block that is
// never reused as payload, even while the block is allocated.
const HeaderSize = 16

// LinkSize is the size of one free-list link field (prev or next).
const LinkSize = 8

// LinkFieldsSize is prev + next: valid only while the block is free, and
// aliases the first 16 bytes of payload otherwise.
const LinkFieldsSize = LinkSize * 2

// BlockStructSize is sizeof(Block) in the reference layout: header plus
// both free-list link fields.
const BlockStructSize = HeaderSize + LinkFieldsSize

// MinBlockSize is the reference's `sizeof(Block) - sizeof(Block*)`,
// ported verbatim rather than re-derived: the smallest payload
// adjustRequestSize lets a request ask for. canSplit does not use it; a
// remainder it carves off can hold as little as LinkFieldsSize bytes.
const MinBlockSize = BlockStructSize - LinkSize

const (
	freeBit     uint64 = 1 << 0
	prevFreeBit uint64 = 1 << 1
	freeBits           = freeBit | prevFreeBit
)

// View addresses one block living at a given header address.
type View struct {
	addr uintptr
}

// At constructs a View for the block whose header starts at addr.
func At(addr uintptr) View { return View{addr: addr} }

// Addr returns the header address this view was constructed with.
func (v View) Addr() uintptr { return v.addr }

func (v View) wordPtr(offset int) *uint64 {
	return (*uint64)(unsafex.FromAddr(v.addr + uintptr(offset)))
}

// PrevPhysAddr returns the address of the block immediately preceding
// this one in memory, or NilAddr if this is the first block in its pool.
func (v View) PrevPhysAddr() uintptr {
	return uintptr(*v.wordPtr(0))
}

// SetPrevPhysAddr sets the physical-predecessor back-pointer.
func (v View) SetPrevPhysAddr(addr uintptr) {
	*v.wordPtr(0) = uint64(addr)
}

func (v View) sizeWord() uint64 { return *v.wordPtr(8) }

// Size returns the block's payload size in bytes (flags masked off).
func (v View) Size() int {
	return int(v.sizeWord() &^ freeBits)
}

// IsFree reports whether this block is currently free.
func (v View) IsFree() bool {
	return v.sizeWord()&freeBit != 0
}

// IsPrevFree reports whether the block immediately preceding this one in
// memory is currently free.
func (v View) IsPrevFree() bool {
	return v.sizeWord()&prevFreeBit != 0
}

// SetSize replaces the payload size, preserving both flags.
func (v View) SetSize(size int) {
	*v.wordPtr(8) = uint64(size) | (v.sizeWord() & freeBits)
}

// SetFree sets or clears this block's own free flag.
func (v View) SetFree(free bool) {
	if free {
		*v.wordPtr(8) = v.sizeWord() | freeBit
	} else {
		*v.wordPtr(8) = v.sizeWord() &^ freeBit
	}
}

// SetPrevFree sets or clears the flag recording whether this block's
// physical predecessor is free.
func (v View) SetPrevFree(free bool) {
	if free {
		*v.wordPtr(8) = v.sizeWord() | prevFreeBit
	} else {
		*v.wordPtr(8) = v.sizeWord() &^ prevFreeBit
	}
}

// PayloadAddr returns the address of the first payload byte.
func (v View) PayloadAddr() uintptr {
	return v.addr + uintptr(HeaderSize)
}

// Payload returns the payload bytes as a slice aliasing the pool.
func (v View) Payload() []byte {
	return unsafex.SliceAt(unsafex.FromAddr(v.PayloadAddr()), v.Size())
}

// Prev reads the free-list prev link (valid only while the block is free).
func (v View) Prev() uintptr { return uintptr(*v.wordPtr(HeaderSize)) }

// SetPrev writes the free-list prev link.
func (v View) SetPrev(addr uintptr) { *v.wordPtr(HeaderSize) = uint64(addr) }

// Next reads the free-list next link (valid only while the block is free).
func (v View) Next() uintptr { return uintptr(*v.wordPtr(HeaderSize + LinkSize)) }

// SetNext writes the free-list next link.
func (v View) SetNext(addr uintptr) { *v.wordPtr(HeaderSize+LinkSize) = uint64(addr) }
