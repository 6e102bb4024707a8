package sidetable

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/holekit/heap/hole"
	"github.com/joshuapare/holekit/internal/buf"
)

// First returns the lowest-addressed free region, if any.
func (l *List) First() (hole.Info, bool) {
	return l.free.Min()
}

// Walk calls fn for each free region in address order until fn returns false.
func (l *List) Walk(fn func(hole.Info) bool) {
	l.free.Ascend(fn)
}

// Holes returns a snapshot of the free regions.
func (l *List) Holes() []hole.Info {
	out := make([]hole.Info, 0, l.free.Len())
	l.free.Ascend(func(h hole.Info) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Len returns the number of free regions.
func (l *List) Len() int { return l.free.Len() }

// FreeBytes returns the total size of all free regions.
func (l *List) FreeBytes() uintptr {
	var total uintptr
	l.free.Ascend(func(h hole.Info) bool {
		total += h.Size
		return true
	})
	return total
}

// Validate checks that every region is inside the managed range and at least
// hole.MinSize bytes, and that no two regions overlap or touch.
func (l *List) Validate() error {
	var (
		err     error
		prev    hole.Info
		hasPrev bool
	)
	l.free.Ascend(func(h hole.Info) bool {
		switch {
		case h.Size < hole.MinSize():
			err = errors.Wrapf(hole.ErrCorrupt, "region at %#x has size %d, below the minimum %d", h.Addr, h.Size, hole.MinSize())
		case !buf.Within(l.base, l.size, h.Addr, h.Size):
			err = errors.Wrapf(hole.ErrCorrupt, "region [%#x, +%d) is outside the managed range", h.Addr, h.Size)
		case hasPrev && prev.End() > h.Addr:
			err = errors.Wrapf(hole.ErrCorrupt, "region [%#x, %#x) overlaps region at %#x", prev.Addr, prev.End(), h.Addr)
		case hasPrev && prev.End() == h.Addr:
			err = errors.Wrapf(hole.ErrCorrupt, "regions at %#x and %#x touch but were not merged", prev.Addr, h.Addr)
		}
		prev, hasPrev = h, true
		return err == nil
	})
	return err
}
