// Package trace provides deallocation hooks for hole.List and sidetable.List.
//
// A hook sees every block passed to Deallocate before the list touches it, so
// it is a cheap way to watch frees without wrapping the allocator. The hooks
// here log through slog or zap, or record events for later inspection.
package trace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/zap"
)

// Hook is called with the address and size of a block being freed.
type Hook func(addr, size uintptr)

// Slog returns a hook that logs each free at debug level.
func Slog(l *slog.Logger) Hook {
	return func(addr, size uintptr) {
		l.LogAttrs(context.Background(), slog.LevelDebug, "dealloc",
			slog.String("addr", fmt.Sprintf("%#x", addr)),
			slog.Uint64("size", uint64(size)),
		)
	}
}

// Zap returns a hook that logs each free at debug level.
func Zap(l *zap.Logger) Hook {
	return func(addr, size uintptr) {
		l.Debug("dealloc",
			zap.Uintptr("addr", addr),
			zap.Uintptr("size", size),
		)
	}
}

// Chain returns a hook calling each non-nil hook in order.
func Chain(hooks ...Hook) Hook {
	var live []Hook
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(addr, size uintptr) {
		for _, h := range live {
			h(addr, size)
		}
	}
}

// Event is one recorded free.
type Event struct {
	Addr uintptr
	Size uintptr
}

// Recorder collects frees. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Hook returns the hook that appends to r.
func (r *Recorder) Hook() Hook {
	return func(addr, size uintptr) {
		r.mu.Lock()
		r.events = append(r.events, Event{Addr: addr, Size: size})
		r.mu.Unlock()
	}
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}
