// Package hole implements an intrusive, first-fit, coalescing free list over a
// single contiguous region.
//
// # Overview
//
// The free list lives inside the memory it manages. Each free region (a hole)
// starts with a two-word header holding the hole's size and the address of the
// next hole. The chain is kept sorted by address and maximally coalesced: no
// two consecutive holes ever touch.
//
//	region:  [hdr|.....free.....][ used ][hdr|..free..][   used   ]
//	chain:   head -> hole@0x00 ---------> hole@0x40 -> none
//
// A List owns a zero-size dummy head that sits before the first real hole, so
// neither allocation nor deallocation has to special-case an empty chain.
//
// # Allocation
//
// AllocateFirstFit walks the chain in address order and takes the first hole
// that can be split around an aligned block of the requested size. A hole is
// rejected when the split would leave a front or back fragment smaller than
// MinSize, even if the raw byte count would fit: such a fragment could never
// host a header. Fragments that are kept go back into the chain through the
// same insert path Deallocate uses.
//
// # Deallocation
//
// Deallocate walks the chain to the freed block's position and merges it with
// the hole before it, the hole after it, or both. Merging is immediate; there
// is no deferred coalescing.
//
// # Contract
//
// Requests smaller than MinSize, non power-of-two alignments, blocks that
// overlap a hole or fall outside the region are programmer errors. They panic
// with an assertion failure (see errors.IsAssertionFailure in
// github.com/cockroachdb/errors) instead of corrupting the chain.
//
// # Thread Safety
//
// A List is not thread-safe and performs no locking. Callers sharing one must
// serialize every call, for example with heap.Heap.
package hole
