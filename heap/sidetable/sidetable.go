// Package sidetable is a free-list allocator with the same first-fit and
// coalescing behaviour as package hole, but with its bookkeeping kept outside
// the managed memory.
//
// Free regions are stored as {address, size} entries in a B-tree ordered by
// address and hosted on the Go heap. Nothing is ever written into the managed
// range, so the range can be any span of addresses: file offsets, device
// memory, or memory that is not mapped into this process at all.
//
// Allocation outcomes are identical to hole.List for the same sequence of
// calls; both use hole.Split, so a hole leaving an undersized fragment is
// refused here too, even though the side table could record one.
//
// A List is not thread-safe.
package sidetable

import (
	"github.com/cockroachdb/errors"
	"github.com/google/btree"

	"github.com/joshuapare/holekit/heap/hole"
	"github.com/joshuapare/holekit/internal/buf"
	"github.com/joshuapare/holekit/internal/format"
)

// degree is the B-tree branching factor.
const degree = 16

// List tracks the free regions of [base, base+size).
type List struct {
	base, size uintptr
	free       *btree.BTreeG[hole.Info]

	onDealloc func(addr, size uintptr)
}

func byAddr(a, b hole.Info) bool { return a.Addr < b.Addr }

// New returns a list whose single free region spans [base, base+size).
func New(base, size uintptr) *List {
	if size < hole.MinSize() {
		violation("region of %d bytes is smaller than the minimum %d", size, hole.MinSize())
	}
	l := Empty(base, size)
	l.free.ReplaceOrInsert(hole.Info{Addr: base, Size: size})
	return l
}

// Empty returns a list managing [base, base+size) with nothing free yet.
func Empty(base, size uintptr) *List {
	if _, ok := buf.End(base, size); !ok {
		violation("region [%#x, +%d) wraps the address space", base, size)
	}
	return &List{
		base: base,
		size: size,
		free: btree.NewG(degree, byAddr),
	}
}

func (l *List) MinSize() uintptr { return hole.MinSize() }

// SetDeallocHook installs fn to be called with every block passed to
// Deallocate. A nil fn removes the hook.
func (l *List) SetDeallocHook(fn func(addr, size uintptr)) {
	l.onDealloc = fn
}

// AllocateFirstFit returns the address of a block of exactly size bytes
// aligned to align from the lowest-addressed free region that can hold it, or
// false when none can.
func (l *List) AllocateFirstFit(size, align uintptr) (uintptr, bool) {
	if size < hole.MinSize() {
		violation("allocation of %d bytes is smaller than the minimum %d", size, hole.MinSize())
	}
	if !format.IsPowerOfTwo(align) {
		violation("alignment %d is not a power of two", align)
	}

	var (
		chosen hole.Info
		alloc  hole.Allocation
		found  bool
	)
	l.free.Ascend(func(h hole.Info) bool {
		alloc, found = hole.Split(h, size, align)
		chosen = h
		return !found
	})
	if !found {
		return 0, false
	}

	l.free.Delete(chosen)
	if alloc.Front.Size != 0 {
		l.insert(alloc.Front.Addr, alloc.Front.Size)
	}
	if alloc.Back.Size != 0 {
		l.insert(alloc.Back.Addr, alloc.Back.Size)
	}
	return alloc.Info.Addr, true
}

// Deallocate returns [addr, addr+size) to the free set, merging it with the
// regions on either side when they touch.
func (l *List) Deallocate(addr, size uintptr) {
	if l.onDealloc != nil {
		l.onDealloc(addr, size)
	}
	if size < hole.MinSize() {
		violation("free of %d bytes at %#x is smaller than the minimum %d", size, addr, hole.MinSize())
	}
	if !buf.Within(l.base, l.size, addr, size) {
		violation("free of [%#x, +%d) is outside the managed range", addr, size)
	}
	l.insert(addr, size)
}

// insert merges a free block with its neighbours. With the predecessor and
// successor found directly in the tree, the chain walk of the in-place list
// reduces to one lookup each way.
func (l *List) insert(addr, size uintptr) {
	end := addr + size

	prev, hasPrev := l.floor(addr)
	if hasPrev && prev.End() > addr {
		violation("block [%#x, %#x) overlaps free region [%#x, %#x)", addr, end, prev.Addr, prev.End())
	}
	next, hasNext := l.ceiling(addr)
	if hasNext && end > next.Addr {
		violation("block [%#x, %#x) overlaps free region at %#x", addr, end, next.Addr)
	}

	touchesPrev := hasPrev && prev.End() == addr
	touchesNext := hasNext && end == next.Addr

	switch {
	case touchesPrev && touchesNext:
		l.free.Delete(next)
		prev.Size += size + next.Size
		l.free.ReplaceOrInsert(prev)
	case touchesPrev:
		prev.Size += size
		l.free.ReplaceOrInsert(prev)
	case touchesNext:
		l.free.Delete(next)
		l.free.ReplaceOrInsert(hole.Info{Addr: addr, Size: size + next.Size})
	default:
		l.free.ReplaceOrInsert(hole.Info{Addr: addr, Size: size})
	}
}

// floor returns the free region with the greatest address <= addr.
func (l *List) floor(addr uintptr) (hole.Info, bool) {
	var (
		out   hole.Info
		found bool
	)
	l.free.DescendLessOrEqual(hole.Info{Addr: addr}, func(h hole.Info) bool {
		out, found = h, true
		return false
	})
	return out, found
}

// ceiling returns the free region with the smallest address > addr.
func (l *List) ceiling(addr uintptr) (hole.Info, bool) {
	var (
		out   hole.Info
		found bool
	)
	l.free.AscendGreaterOrEqual(hole.Info{Addr: addr}, func(h hole.Info) bool {
		if h.Addr == addr {
			return true
		}
		out, found = h, true
		return false
	})
	return out, found
}

func violation(format string, args ...any) {
	panic(errors.WithAssertionFailure(errors.Wrapf(hole.ErrContract, format, args...)))
}
