package region

import (
	"unsafe"

	"github.com/joshuapare/holekit/internal/buf"
	"github.com/joshuapare/holekit/internal/format"
)

// Raw exposes a byte slice at its real memory address. Header words are read
// and written through pointer casts, the way a heap without a host allocator
// would touch them. The slice is retained so the memory stays live.
type Raw struct {
	base uintptr
	data []byte
}

// NewRaw returns a region over data. The first byte of data should be word
// aligned; Go's allocator guarantees that for slices of at least one word.
func NewRaw(data []byte) *Raw {
	var base uintptr
	if len(data) > 0 {
		base = uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	}
	return &Raw{base: base, data: data}
}

func (r *Raw) Base() uintptr { return r.base }

func (r *Raw) Len() uintptr { return uintptr(len(r.data)) }

// WordAligned reports true: Raw dereferences word pointers directly.
func (r *Raw) WordAligned() bool { return true }

func (r *Raw) LoadWord(addr uintptr) uintptr {
	return *(*uintptr)(r.word(addr))
}

func (r *Raw) StoreWord(addr, v uintptr) {
	*(*uintptr)(r.word(addr)) = v
}

// word returns a pointer to the word at addr. The pointer is derived from the
// slice element, never from the integer address.
func (r *Raw) word(addr uintptr) unsafe.Pointer {
	if addr%format.WordSize != 0 {
		fault(ErrMisaligned, "%#x is not a multiple of %d", addr, format.WordSize)
	}
	off, err := buf.CheckSpan(r.base, uintptr(len(r.data)), addr, format.WordSize)
	if err != nil {
		fault(ErrOutOfRange, "%#x: %v", addr, err)
	}
	return unsafe.Pointer(&r.data[off])
}
