package heap

import "log/slog"

// Option configures a Heap.
type Option func(*Heap)

// WithLogger logs every operation at debug level to l.
func WithLogger(l *slog.Logger) Option {
	return func(h *Heap) {
		if l != nil {
			h.log = l
		}
	}
}

// WithObserver reports every operation to o.
func WithObserver(o Observer) Option {
	return func(h *Heap) { h.obs = o }
}

// WithDeallocHook installs fn as the allocator's deallocation hook.
func WithDeallocHook(fn func(addr, size uintptr)) Option {
	return func(h *Heap) { h.a.SetDeallocHook(fn) }
}

// Observer receives a callback for each Heap operation. Sizes and alignments
// are the rounded values actually passed to the allocator.
type Observer interface {
	Allocated(addr, size, align uintptr)
	Freed(addr, size uintptr)
	NoFit(size, align uintptr)
}
