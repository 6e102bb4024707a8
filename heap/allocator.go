package heap

import (
	"github.com/joshuapare/holekit/heap/hole"
	"github.com/joshuapare/holekit/heap/sidetable"
)

// Allocator is the interface implemented by hole.List and sidetable.List.
type Allocator interface {
	AllocateFirstFit(size, align uintptr) (uintptr, bool)
	Deallocate(addr, size uintptr)
	MinSize() uintptr
	SetDeallocHook(fn func(addr, size uintptr))

	Holes() []hole.Info
	Len() int
	FreeBytes() uintptr
	Validate() error
}

var (
	_ Allocator = (*hole.List)(nil)
	_ Allocator = (*sidetable.List)(nil)
)
