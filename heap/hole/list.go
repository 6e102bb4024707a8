package hole

import (
	"github.com/joshuapare/holekit/internal/buf"
	"github.com/joshuapare/holekit/internal/format"
	"github.com/joshuapare/holekit/region"
)

// MinSize is the smallest block that can be allocated and, once freed, hold a
// hole header: two machine words.
func MinSize() uintptr { return format.MinBlockSize }

// List is a HoleList: an address-ordered chain of in-place hole headers behind
// a dummy head.
type List struct {
	mem     region.Memory
	first   uintptr // the dummy head's next pointer
	aligned bool    // mem needs word-aligned headers

	onDealloc func(addr, size uintptr)
}

// New returns a list with one hole spanning all of mem.
func New(mem region.Memory) *List {
	return NewAt(mem, mem.Base(), mem.Len())
}

// NewAt returns a list with one hole spanning [base, base+size), which must lie
// inside mem and be at least MinSize bytes. The caller guarantees the span is
// otherwise unused.
func NewAt(mem region.Memory, base, size uintptr) *List {
	if size < MinSize() {
		violation("region of %d bytes is smaller than the minimum %d", size, MinSize())
	}
	if !buf.Within(mem.Base(), mem.Len(), base, size) {
		violation("region [%#x, +%d) is outside the backing memory", base, size)
	}
	l := &List{mem: mem, first: none, aligned: region.NeedsAlignedWords(mem)}
	l.requireWords("region", base, size)
	l.link(dummy, base, size, none)
	return l
}

// Empty returns a list with no holes. Memory can be handed to it later with
// Deallocate.
func Empty(mem region.Memory) *List {
	return &List{mem: mem, first: none, aligned: region.NeedsAlignedWords(mem)}
}

// MinSize returns the package MinSize; it lets a List satisfy interfaces that
// ask the allocator for its block granularity.
func (l *List) MinSize() uintptr { return MinSize() }

// Memory returns the backing region.
func (l *List) Memory() region.Memory { return l.mem }

// SetDeallocHook installs fn to be called with every block passed to
// Deallocate, before it is merged into the chain. Padding fragments that
// allocation returns to the chain are not reported. A nil fn removes the hook.
func (l *List) SetDeallocHook(fn func(addr, size uintptr)) {
	l.onDealloc = fn
}

// AllocateFirstFit returns the address of a block of exactly size bytes
// aligned to align, taken from the lowest-addressed hole that can hold it.
// It reports false when no hole fits; that is an ordinary outcome.
//
// size must be at least MinSize and align a power of two. When the memory
// needs word-aligned headers (see region.NeedsAlignedWords), size must also
// be a multiple of the word size; holes then always start on a word boundary.
func (l *List) AllocateFirstFit(size, align uintptr) (uintptr, bool) {
	if size < MinSize() {
		violation("allocation of %d bytes is smaller than the minimum %d", size, MinSize())
	}
	if !format.IsPowerOfTwo(align) {
		violation("alignment %d is not a power of two", align)
	}
	l.requireWords("allocation", 0, size)

	prev := dummy
	for addr := l.next(prev); addr != none; addr = l.next(prev) {
		cur := at(addr)
		alloc, ok := Split(l.info(cur), size, align)
		if !ok {
			prev = cur
			continue
		}

		// unlink the chosen hole, then give its leftovers back
		l.setNext(prev, l.next(cur))
		if alloc.Front.Size != 0 {
			l.insert(alloc.Front.Addr, alloc.Front.Size)
		}
		if alloc.Back.Size != 0 {
			l.insert(alloc.Back.Addr, alloc.Back.Size)
		}
		return alloc.Info.Addr, true
	}
	return 0, false
}

// Deallocate returns [addr, addr+size) to the chain, merging it with any
// neighbouring hole. The block must be exactly one that AllocateFirstFit
// returned, with the same size. Word-aligned memories also require addr and
// size to be word multiples.
func (l *List) Deallocate(addr, size uintptr) {
	if l.onDealloc != nil {
		l.onDealloc(addr, size)
	}
	if size < MinSize() {
		violation("free of %d bytes at %#x is smaller than the minimum %d", size, addr, MinSize())
	}
	if !buf.Within(l.mem.Base(), l.mem.Len(), addr, size) {
		violation("free of [%#x, +%d) is outside the backing memory", addr, size)
	}
	l.requireWords("free", addr, size)
	l.insert(addr, size)
}

// requireWords enforces word granularity on memories that need it.
func (l *List) requireWords(what string, addr, size uintptr) {
	if !l.aligned {
		return
	}
	if addr%format.WordSize != 0 || size%format.WordSize != 0 {
		violation("%s [%#x, +%d) is not word aligned; this memory needs %d-byte words",
			what, addr, size, format.WordSize)
	}
}
