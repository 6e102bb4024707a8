package heap

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/holekit/heap/hole"
	"github.com/joshuapare/holekit/internal/format"
)

// maxRequest is the largest size that can be rounded to a word multiple.
const maxRequest = ^uintptr(0) &^ (format.WordSize - 1)

// Heap is a thread-safe front end for an Allocator.
type Heap struct {
	mu    sync.Mutex
	a     Allocator
	stats Stats

	log *slog.Logger
	obs Observer
}

// Stats is a snapshot of a Heap's counters and free space.
type Stats struct {
	Allocs uint64 // successful Alloc calls
	Frees  uint64 // Free calls
	NoFits uint64 // Alloc calls that returned ErrNoFit

	InUse     uintptr // bytes handed out and not yet freed
	FreeBytes uintptr // bytes in free regions
	Holes     int     // number of free regions
}

// New wraps a. The Heap takes ownership: a must not be used directly
// afterwards.
func New(a Allocator, opts ...Option) *Heap {
	h := &Heap{
		a:   a,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Alloc returns the address of a free block of at least size bytes aligned to
// align. align must be a power of two; values below the word size are raised
// to it.
func (h *Heap) Alloc(size, align uintptr) (uintptr, error) {
	size, align, err := h.round(size, align)
	if err != nil {
		return 0, err
	}

	addr, ok := h.allocate(size, align)
	if !ok {
		h.log.Debug("alloc: no fit", "size", size, "align", align)
		if h.obs != nil {
			h.obs.NoFit(size, align)
		}
		return 0, errors.Wrapf(ErrNoFit, "%d bytes aligned to %d", size, align)
	}

	h.log.Debug("alloc", "addr", addr, "size", size, "align", align)
	if h.obs != nil {
		h.obs.Allocated(addr, size, align)
	}
	return addr, nil
}

// Free returns a block obtained from Alloc. size is rounded the same way
// Alloc rounded it.
func (h *Heap) Free(addr, size uintptr) error {
	size, _, err := h.round(size, 1)
	if err != nil {
		return err
	}

	h.deallocate(addr, size)

	h.log.Debug("free", "addr", addr, "size", size)
	if h.obs != nil {
		h.obs.Freed(addr, size)
	}
	return nil
}

// allocate and deallocate hold the lock only around the allocator call. The
// allocator and its dealloc hook may panic on a broken contract; the deferred
// unlock keeps the Heap usable for callers that recover.
func (h *Heap) allocate(size, align uintptr) (uintptr, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	addr, ok := h.a.AllocateFirstFit(size, align)
	if ok {
		h.stats.Allocs++
		h.stats.InUse += size
	} else {
		h.stats.NoFits++
	}
	return addr, ok
}

func (h *Heap) deallocate(addr, size uintptr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.a.Deallocate(addr, size)
	h.stats.Frees++
	// Memory donated to an Empty allocator was never counted as in use.
	h.stats.InUse -= min(size, h.stats.InUse)
}

func (h *Heap) round(size, align uintptr) (uintptr, uintptr, error) {
	if size == 0 {
		return 0, 0, ErrZeroSize
	}
	if !format.IsPowerOfTwo(align) {
		return 0, 0, errors.Wrapf(ErrBadAlign, "alignment %d", align)
	}
	if size > maxRequest {
		return 0, 0, errors.Wrapf(ErrNoFit, "%d bytes", size)
	}
	size = max(format.AlignWord(size), h.a.MinSize())
	align = max(align, format.WordSize)
	return size, align, nil
}

// MinSize returns the smallest block the Heap hands out.
func (h *Heap) MinSize() uintptr { return h.a.MinSize() }

// Stats returns the current counters.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.stats
	s.FreeBytes = h.a.FreeBytes()
	s.Holes = h.a.Len()
	return s
}

// Holes returns the free regions in address order.
func (h *Heap) Holes() []hole.Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Holes()
}

// Validate checks the allocator's internal invariants.
func (h *Heap) Validate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Validate()
}
