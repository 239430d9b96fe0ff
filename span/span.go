// Package span views a block of arena memory as a Span: a boundary-tag
// header, two free-list link fields, payload bytes, and a boundary-tag
// footer. The link fields alias the first sixteen bytes of the payload;
// they are only meaningful while the span is free.
//
// A Span is identified by the absolute address of its header, which is
// how the reference allocator this package is modeled on addresses
// blocks too: the free list threads spans from different arenas
// together (Dynamic mode installs new arenas as fresh spans on the same
// list), so links store whole addresses rather than offsets relative to
// one buffer.
package span

import (
	"unsafe"

	"github.com/cloudwego/galloc/internal/unsafex"
	"github.com/cloudwego/galloc/tag"
)

// NilAddr marks the absence of a link (no prev / no next). Zero is never
// a valid span address since Go never places a live allocation at
// address 0.
const NilAddr uintptr = 0

// HeaderSize is the size in bytes of the header tag.
const HeaderSize = tag.Size

// FooterSize is the size in bytes of the footer tag.
const FooterSize = tag.Size

// LinkSize is the size in bytes of one free-list link field (prev or
// next), stored as an 8-byte absolute address.
const LinkSize = 8

// Overhead is the number of non-payload bytes a span of any size costs:
// header + footer. Matches spec's `2·sizeof(tag)` per span.
const Overhead = HeaderSize + FooterSize

// LinkFieldsSize is sizeof(Span) - sizeof(tag) in the reference layout:
// the prev+next fields that must fit inside a free span's payload.
const LinkFieldsSize = LinkSize * 2

// View addresses one span living at a given header address.
type View struct {
	addr uintptr
}

// At constructs a View for the span whose header starts at addr.
func At(addr uintptr) View { return View{addr: addr} }

// Addr returns the header address this view was constructed with.
func (v View) Addr() uintptr { return v.addr }

func (v View) headerPtr() unsafe.Pointer { return unsafex.FromAddr(v.addr) }

// Header reads the header tag.
func (v View) Header() tag.Tag {
	return tag.Tag(unsafex.LoadWord(v.headerPtr()))
}

// SetHeader writes the header tag (footer is not touched; pair with
// SyncFooter to preserve the header==footer invariant).
func (v View) SetHeader(t tag.Tag) {
	unsafex.StoreWord(v.headerPtr(), uint64(t))
}

// FooterAddr returns the address of this span's footer tag, given its
// current header's payload size.
func (v View) FooterAddr() uintptr {
	return v.addr + uintptr(HeaderSize+v.Header().GetSize())
}

func (v View) footerPtr(payloadSize int) unsafe.Pointer {
	return unsafex.FromAddr(v.addr + uintptr(HeaderSize+payloadSize))
}

// Footer reads the footer tag, trusting the header's size field to
// locate it.
func (v View) Footer() tag.Tag {
	return tag.Tag(unsafex.LoadWord(v.footerPtr(v.Header().GetSize())))
}

// SyncFooter writes the header tag's current value to the footer
// position implied by payloadSize. Every header mutation must be paired
// with a SyncFooter call (directly or via SetSizeAndFlag) to preserve
// the header-equals-footer invariant.
func (v View) SyncFooter(payloadSize int) {
	unsafex.StoreWord(v.footerPtr(payloadSize), uint64(v.Header()))
}

// SetSizeAndFlag overwrites the header with {size, allocated} and syncs
// the footer to match.
func (v View) SetSizeAndFlag(size int, allocated bool) {
	v.SetHeader(tag.Pack(size, allocated))
	v.SyncFooter(size)
}

// PayloadAddr returns the address of the first payload byte.
func (v View) PayloadAddr() uintptr {
	return v.addr + uintptr(HeaderSize)
}

// Payload returns the payload bytes as a slice aliasing the arena.
func (v View) Payload() []byte {
	size := v.Header().GetSize()
	return unsafex.SliceAt(unsafex.FromAddr(v.PayloadAddr()), size)
}

func (v View) linkPtr(fieldOffset int) unsafe.Pointer {
	return unsafex.FromAddr(v.PayloadAddr() + uintptr(fieldOffset))
}

// Prev reads the free-list prev link (valid only while the span is free).
func (v View) Prev() uintptr {
	return uintptr(unsafex.LoadWord(v.linkPtr(0)))
}

// SetPrev writes the free-list prev link.
func (v View) SetPrev(addr uintptr) {
	unsafex.StoreWord(v.linkPtr(0), uint64(addr))
}

// Next reads the free-list next link (valid only while the span is free).
func (v View) Next() uintptr {
	return uintptr(unsafex.LoadWord(v.linkPtr(LinkSize)))
}

// SetNext writes the free-list next link.
func (v View) SetNext(addr uintptr) {
	unsafex.StoreWord(v.linkPtr(LinkSize), uint64(addr))
}

// ZeroLinks clears prev and next to NilAddr, the hygiene step spec.md
// asks for when a span leaves the free list.
func (v View) ZeroLinks() {
	v.SetPrev(NilAddr)
	v.SetNext(NilAddr)
}

// Bytes returns the total span footprint in bytes given a payload size:
// header + payload + footer.
func Bytes(payloadSize int) int {
	return HeaderSize + payloadSize + FooterSize
}

// Create initializes a fresh free span at addr with the given payload
// size: zeroed links, header and footer set to {size, free}.
func Create(addr uintptr, size int) View {
	v := At(addr)
	v.SetSizeAndFlag(size, false)
	v.ZeroLinks()
	return v
}
