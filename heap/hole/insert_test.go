package hole

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/holekit/region"
)

// carve returns a list over [0, size) where every block in used has been
// allocated, so only the gaps between them are holes.
func carve(t *testing.T, size int, used ...Info) *List {
	t.Helper()
	l := Empty(region.Alloc(0, size))
	var pos uintptr
	for _, u := range used {
		if u.Addr > pos {
			l.Deallocate(pos, u.Addr-pos)
		}
		pos = u.End()
	}
	if pos < uintptr(size) {
		l.Deallocate(pos, uintptr(size)-pos)
	}
	return l
}

func TestInsertIsolatedBetweenHoles(t *testing.T) {
	// holes [0,32) and [192,256); free [96,128) touches neither
	l := carve(t, 256, Info{Addr: 32, Size: 160})
	l.Deallocate(96, 32)
	requireChain(t, l,
		Info{Addr: 0, Size: 32},
		Info{Addr: 96, Size: 32},
		Info{Addr: 192, Size: 64},
	)
}

func TestInsertIsolatedBeforeFirstHole(t *testing.T) {
	l := carve(t, 256, Info{Addr: 0, Size: 128})
	l.Deallocate(32, 32)
	requireChain(t, l,
		Info{Addr: 32, Size: 32},
		Info{Addr: 128, Size: 128},
	)
}

func TestInsertIsolatedAfterLastHole(t *testing.T) {
	l := carve(t, 256, Info{Addr: 32, Size: 224})
	l.Deallocate(128, 64)
	requireChain(t, l,
		Info{Addr: 0, Size: 32},
		Info{Addr: 128, Size: 64},
	)
}

func TestInsertExtendForward(t *testing.T) {
	l := carve(t, 256, Info{Addr: 32, Size: 160})
	l.Deallocate(32, 32)
	requireChain(t, l,
		Info{Addr: 0, Size: 64},
		Info{Addr: 192, Size: 64},
	)
}

func TestInsertExtendForwardLastHole(t *testing.T) {
	l := carve(t, 256, Info{Addr: 32, Size: 224})
	l.Deallocate(32, 64)
	requireChain(t, l, Info{Addr: 0, Size: 96})
}

func TestInsertExtendBackward(t *testing.T) {
	l := carve(t, 256, Info{Addr: 32, Size: 160})
	l.Deallocate(160, 32)
	requireChain(t, l,
		Info{Addr: 0, Size: 32},
		Info{Addr: 160, Size: 96},
	)
}

func TestInsertExtendBackwardIntoFirstHole(t *testing.T) {
	l := carve(t, 256, Info{Addr: 0, Size: 128})
	l.Deallocate(64, 64)
	requireChain(t, l, Info{Addr: 64, Size: 192})
}

func TestInsertBridge(t *testing.T) {
	l := carve(t, 256, Info{Addr: 32, Size: 64})
	l.Deallocate(32, 64)
	requireChain(t, l, Info{Addr: 0, Size: 256})
}

func TestInsertBridgeMiddleOfChain(t *testing.T) {
	l := carve(t, 512,
		Info{Addr: 32, Size: 32},
		Info{Addr: 128, Size: 64},
		Info{Addr: 256, Size: 32},
	)
	requireChain(t, l,
		Info{Addr: 0, Size: 32},
		Info{Addr: 64, Size: 64},
		Info{Addr: 192, Size: 64},
		Info{Addr: 288, Size: 224},
	)

	l.Deallocate(128, 64)
	requireChain(t, l,
		Info{Addr: 0, Size: 32},
		Info{Addr: 64, Size: 192},
		Info{Addr: 288, Size: 224},
	)
}

func TestInsertDelegatesPastSeveralHoles(t *testing.T) {
	l := carve(t, 1024,
		Info{Addr: 32, Size: 32},
		Info{Addr: 96, Size: 32},
		Info{Addr: 160, Size: 800},
	)
	l.Deallocate(512, 64)
	requireChain(t, l,
		Info{Addr: 0, Size: 32},
		Info{Addr: 64, Size: 32},
		Info{Addr: 128, Size: 32},
		Info{Addr: 512, Size: 64},
		Info{Addr: 960, Size: 64},
	)
}

func TestInsertSequentialFreesCascadeToOneHole(t *testing.T) {
	l, _ := newList(t, 0, 512)
	var addrs []uintptr
	for range 8 {
		a, ok := l.AllocateFirstFit(64, 1)
		require.True(t, ok)
		addrs = append(addrs, a)
	}
	requireChain(t, l)

	// Free every other block, then the rest; each second-round free bridges.
	for i := 0; i < len(addrs); i += 2 {
		l.Deallocate(addrs[i], 64)
	}
	require.Equal(t, 4, l.Len())
	for i := 1; i < len(addrs); i += 2 {
		l.Deallocate(addrs[i], 64)
	}
	requireChain(t, l, Info{Addr: 0, Size: 512})
}

func TestInsertRejectsOverlapWithNextHole(t *testing.T) {
	l := carve(t, 256, Info{Addr: 32, Size: 64})
	// touches the first hole but runs into the second
	requireViolation(t, func() { l.Deallocate(32, 96) })
}
