// Package heap puts a lock and a friendlier calling convention in front of a
// free-list allocator.
//
// # Overview
//
// The allocators in heap/hole and heap/sidetable are single-threaded and treat
// bad arguments as programming errors. Heap wraps either one so that:
//
//   - every call is serialised by one mutex
//   - sizes are rounded up to the allocator's minimum block and to a whole
//     machine word, and alignments up to at least a word
//   - a request that does not fit returns ErrNoFit instead of false
//   - counters are kept for Stats
//
// # Usage
//
//	mem := region.Alloc(0, 1<<20)
//	h := heap.New(hole.New(mem), heap.WithLogger(slog.Default()))
//
//	addr, err := h.Alloc(100, 16)
//	if errors.Is(err, heap.ErrNoFit) {
//	    // out of memory
//	}
//	defer h.Free(addr, 100)
//
// Free must be given the size originally requested (or any size that rounds
// to the same value).
//
// # Observation
//
// WithObserver receives a callback for each allocation, free and failed
// request. Observers run after the lock is released and may call back into
// the Heap. WithDeallocHook is forwarded to the allocator and runs under the
// lock, so it must not.
package heap
