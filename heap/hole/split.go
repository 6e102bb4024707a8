package hole

import (
	"github.com/joshuapare/holekit/internal/buf"
	"github.com/joshuapare/holekit/internal/format"
)

// Info describes a free region. It is a plain value and is never stored.
type Info struct {
	Addr uintptr
	Size uintptr
}

// End returns the first address after the region.
func (i Info) End() uintptr { return i.Addr + i.Size }

// Allocation is the result of splitting a hole around an aligned block.
// Front and Back are the leftover fragments; a zero Size means the fragment is
// absent.
type Allocation struct {
	Info  Info
	Front Info
	Back  Info
}

// Split decides whether a block of size bytes aligned to align fits in h.
//
// The hole is rejected when it is too small, or when the split would leave a
// non-empty front or back fragment smaller than MinSize: that fragment could
// not host a header and would be lost. The check is deliberately strict; a
// hole with enough raw bytes can still be refused.
func Split(h Info, size, align uintptr) (Allocation, bool) {
	aligned := format.AlignUp(h.Addr, align)
	if aligned < h.Addr {
		// wrapped past the top of the address space
		return Allocation{}, false
	}
	allocEnd, ok := buf.End(aligned, size)
	if !ok || allocEnd > h.End() {
		return Allocation{}, false
	}

	front := aligned - h.Addr
	if front != 0 && front < MinSize() {
		return Allocation{}, false
	}
	back := h.End() - allocEnd
	if back != 0 && back < MinSize() {
		return Allocation{}, false
	}

	a := Allocation{Info: Info{Addr: aligned, Size: size}}
	if front != 0 {
		a.Front = Info{Addr: h.Addr, Size: front}
	}
	if back != 0 {
		a.Back = Info{Addr: allocEnd, Size: back}
	}
	return a, true
}
