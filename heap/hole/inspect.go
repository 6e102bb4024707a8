package hole

import (
	"github.com/joshuapare/holekit/internal/buf"
)

// Diagnostics. None of these are needed to allocate or free; they exist so
// callers and tests can look at the chain.

// First returns the lowest-addressed hole, if any.
func (l *List) First() (Info, bool) {
	if l.first == none {
		return Info{}, false
	}
	return l.info(at(l.first)), true
}

// Walk calls fn for each hole in address order until fn returns false.
func (l *List) Walk(fn func(Info) bool) {
	for addr := l.first; addr != none; addr = l.next(at(addr)) {
		if !fn(l.info(at(addr))) {
			return
		}
	}
}

// Holes returns a snapshot of the chain.
func (l *List) Holes() []Info {
	var out []Info
	l.Walk(func(i Info) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Len returns the number of holes.
func (l *List) Len() int {
	n := 0
	l.Walk(func(Info) bool {
		n++
		return true
	})
	return n
}

// FreeBytes returns the total size of all holes.
func (l *List) FreeBytes() uintptr {
	var total uintptr
	l.Walk(func(i Info) bool {
		total += i.Size
		return true
	})
	return total
}

// Validate checks the chain invariants: every hole lies inside the region and
// is at least MinSize bytes, addresses strictly ascend, and no two consecutive
// holes touch. It stops at the first violation. Unlike Walk it is safe on a
// chain whose next pointers form a cycle.
func (l *List) Validate() error {
	limit := l.mem.Len()/MinSize() + 1
	var (
		prev    Info
		hasPrev bool
		count   uintptr
	)
	for addr := l.first; addr != none; addr = l.next(at(addr)) {
		count++
		if count > limit {
			return corrupt("more than %d holes; the chain has a cycle", limit-1)
		}
		if !buf.Within(l.mem.Base(), l.mem.Len(), addr, MinSize()) {
			return corrupt("hole at %#x is outside the region", addr)
		}
		cur := l.info(at(addr))
		if cur.Size < MinSize() {
			return corrupt("hole at %#x has size %d, below the minimum %d", cur.Addr, cur.Size, MinSize())
		}
		if !buf.Within(l.mem.Base(), l.mem.Len(), cur.Addr, cur.Size) {
			return corrupt("hole [%#x, +%d) runs past the region", cur.Addr, cur.Size)
		}
		if hasPrev {
			switch {
			case cur.Addr <= prev.Addr:
				return corrupt("hole at %#x follows hole at %#x", cur.Addr, prev.Addr)
			case prev.End() > cur.Addr:
				return corrupt("hole [%#x, %#x) overlaps hole at %#x", prev.Addr, prev.End(), cur.Addr)
			case prev.End() == cur.Addr:
				return corrupt("holes at %#x and %#x touch but were not merged", prev.Addr, cur.Addr)
			}
		}
		prev, hasPrev = cur, true
	}
	return nil
}
