package region

import (
	"github.com/joshuapare/holekit/internal/buf"
	"github.com/joshuapare/holekit/internal/format"
)

// Memory is a contiguous span of addresses [Base(), Base()+Len()) that can
// host in-place hole headers.
type Memory interface {
	// Base is the first address of the region.
	Base() uintptr

	// Len is the number of bytes in the region.
	Len() uintptr

	// LoadWord reads the machine word stored at addr.
	// Panics if [addr, addr+WordSize) is outside the region.
	LoadWord(addr uintptr) uintptr

	// StoreWord writes v as a machine word at addr.
	// Panics if [addr, addr+WordSize) is outside the region.
	StoreWord(addr, v uintptr)
}

// WordAligner is implemented by memories whose word accesses must fall on
// word boundaries. Headers in such a memory can only start at multiples of
// the word size.
type WordAligner interface {
	WordAligned() bool
}

// NeedsAlignedWords reports whether mem only accepts word-aligned LoadWord
// and StoreWord addresses.
func NeedsAlignedWords(mem Memory) bool {
	wa, ok := mem.(WordAligner)
	return ok && wa.WordAligned()
}

// Bytes exposes a byte slice as a region starting at a logical base address.
type Bytes struct {
	base uintptr
	data []byte
}

// NewBytes returns a region covering data at addresses [base, base+len(data)).
func NewBytes(base uintptr, data []byte) *Bytes {
	if _, ok := buf.End(base, uintptr(len(data))); !ok {
		fault(ErrOutOfRange, "base %#x + len %d wraps the address space", base, len(data))
	}
	return &Bytes{base: base, data: data}
}

// Alloc is a convenience constructor for a zeroed region of size bytes.
func Alloc(base uintptr, size int) *Bytes {
	return NewBytes(base, make([]byte, size))
}

func (b *Bytes) Base() uintptr { return b.base }

func (b *Bytes) Len() uintptr { return uintptr(len(b.data)) }

// Data returns the backing slice.
func (b *Bytes) Data() []byte { return b.data }

// Slice returns the bytes at [addr, addr+n). Callers use it to read and write
// the payload of an allocation.
func (b *Bytes) Slice(addr, n uintptr) []byte {
	off := b.offset(addr, n)
	return b.data[off : off+int(n)]
}

func (b *Bytes) LoadWord(addr uintptr) uintptr {
	return format.ReadWord(b.data, b.offset(addr, format.WordSize))
}

func (b *Bytes) StoreWord(addr, v uintptr) {
	format.PutWord(b.data, b.offset(addr, format.WordSize), v)
}

func (b *Bytes) offset(addr, n uintptr) int {
	off, err := buf.CheckSpan(b.base, uintptr(len(b.data)), addr, n)
	if err != nil {
		fault(ErrOutOfRange, "%#x: %v", addr, err)
	}
	return int(off)
}
