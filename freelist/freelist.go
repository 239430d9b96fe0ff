// Package freelist implements the doubly-linked, insertion-at-head free
// list of spans described by spec.md §4.3: O(1) insert and remove, O(n)
// scan. The list does not own any arena; it only threads spans together
// by address, so it works the same whether every span lives in one
// arena or spans were installed from several (Dynamic growth appends a
// new arena's initial span to this same list).
package freelist

import "github.com/cloudwego/galloc/span"

// List is a doubly-linked free list. The zero value is an empty list.
type List struct {
	// Head is the address of the first free span, or span.NilAddr.
	Head uintptr
}

// Insert adds the span at addr to the head of the list and marks its
// tag free.
//
// This preserves the reference implementation's early-return quirk: if
// addr already equals Head, Insert returns immediately without
// rewiring prev/next. That is only correct the one time it fires in
// practice — a freshly constructed arena's sole span is already Head by
// construction, so there is nothing to rewire. It is not a general
// self-loop guard and is kept as documented behavior (see DESIGN.md),
// not silently patched.
func (l *List) Insert(addr uintptr) {
	v := span.At(addr)
	v.SetSizeAndFlag(v.Header().GetSize(), false)

	if addr == l.Head {
		return
	}

	v.SetPrev(span.NilAddr)
	v.SetNext(l.Head)
	if l.Head != span.NilAddr {
		span.At(l.Head).SetPrev(addr)
	}
	l.Head = addr
}

// Remove splices the span at addr out of the list. addr must currently
// be a member of the list.
func (l *List) Remove(addr uintptr) {
	v := span.At(addr)
	prev := v.Prev()
	next := v.Next()

	v.ZeroLinks()

	if prev != span.NilAddr {
		span.At(prev).SetNext(next)
	}
	if next != span.NilAddr {
		span.At(next).SetPrev(prev)
	}

	if addr == l.Head {
		if prev != span.NilAddr {
			l.Head = prev
		} else if next != span.NilAddr {
			l.Head = next
		} else {
			l.Head = span.NilAddr
		}
	}
}

// Each walks the list from Head, calling fn with each span's address.
// Iteration stops early if fn returns false.
func (l *List) Each(fn func(addr uintptr) bool) {
	cur := l.Head
	for cur != span.NilAddr {
		next := span.At(cur).Next()
		if !fn(cur) {
			return
		}
		cur = next
	}
}

// Len counts the spans currently on the list. O(n); intended for tests
// and diagnostics, not the hot path.
func (l *List) Len() int {
	n := 0
	l.Each(func(uintptr) bool { n++; return true })
	return n
}

// Empty reports whether the list has no spans.
func (l *List) Empty() bool { return l.Head == span.NilAddr }
