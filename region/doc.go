// Package region provides the backing memory that the hole allocators manage.
//
// # Overview
//
// The in-place allocator in heap/hole keeps its bookkeeping inside the free
// bytes it manages, so every read or write of a hole header is a raw word
// access at an address. Those accesses go through the Memory interface and
// nowhere else; this package is the only code that turns an address into
// bytes.
//
// # Implementations
//
// Bytes: a byte slice exposed at a logical base address.
//
//   - Addresses are base + offset, so tests can use a region that starts at 0.
//   - Words are encoded little-endian via internal/format.
//
// Raw: a byte slice exposed at its real address.
//
//   - Word accesses are pointer casts, as an embedded heap would do.
//   - Word accesses must be word aligned.
//
// Mapped: an mmap'd region, anonymous or backed by a file.
//
//   - Every StoreWord records a dirty range.
//   - Flush coalesces dirty ranges to pages and msyncs them (unix), or writes
//     them back with WriteAt on platforms without mmap.
//
// # Usage Example
//
//	m, err := region.Map("heap.bin", 1<<20)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	l := hole.New(m)
//	addr, ok := l.AllocateFirstFit(64, 16)
//	...
//	err = m.Flush(ctx)
//
// # Thread Safety
//
// Regions are not thread-safe. They are mutated only by the allocator that
// owns them, and that allocator must be serialized by its caller.
package region
