package hole

import (
	"github.com/joshuapare/holekit/internal/format"
)

// none terminates the chain. No hole can start at the last address, since a
// hole needs at least MinSize bytes.
const none = ^uintptr(0)

// Header word offsets.
const (
	sizeWord = 0
	nextWord = format.WordSize
)

// header is a handle on a hole header in the region, or on the dummy head.
// The dummy head has size zero and no address; its next pointer lives in the
// List itself.
type header struct {
	addr uintptr
	head bool
}

var dummy = header{head: true}

func at(addr uintptr) header { return header{addr: addr} }

func (l *List) size(h header) uintptr {
	if h.head {
		return 0
	}
	return l.mem.LoadWord(h.addr + sizeWord)
}

func (l *List) next(h header) uintptr {
	if h.head {
		return l.first
	}
	return l.mem.LoadWord(h.addr + nextWord)
}

func (l *List) setSize(h header, size uintptr) {
	if h.head {
		violation("resize of the dummy head to %d", size)
	}
	l.mem.StoreWord(h.addr+sizeWord, size)
}

func (l *List) setNext(h header, next uintptr) {
	if h.head {
		l.first = next
		return
	}
	l.mem.StoreWord(h.addr+nextWord, next)
}

// link writes a fresh header at addr and splices it in after prev.
func (l *List) link(prev header, addr, size, next uintptr) {
	h := at(addr)
	l.setSize(h, size)
	l.setNext(h, next)
	l.setNext(prev, addr)
}

func (l *List) info(h header) Info {
	return Info{Addr: h.addr, Size: l.size(h)}
}
