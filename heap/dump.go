package heap

import (
	"fmt"
	"math"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// DumpJSON writes the Heap's counters and free regions as a JSON object:
//
//	{"stats":{"allocs":2,...},"holes":[{"addr":"0x0","size":64},...]}
func (h *Heap) DumpJSON() ([]byte, error) {
	h.mu.Lock()
	holes := h.a.Holes()
	st := h.stats
	h.mu.Unlock()

	st.Holes = len(holes)
	st.FreeBytes = 0
	for _, hl := range holes {
		st.FreeBytes += hl.Size
	}

	w := jwriter.NewWriter()
	obj := w.Object()
	writeStats(obj.Name("stats").Object(), st)

	arr := obj.Name("holes").Array()
	for _, hl := range holes {
		o := arr.Object()
		o.Name("addr").String(fmt.Sprintf("%#x", hl.Addr))
		o.Name("size").Int(clampInt(uint64(hl.Size)))
		o.End()
	}
	arr.End()
	obj.End()

	if err := w.Error(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func writeStats(obj jwriter.ObjectState, s Stats) {
	obj.Name("allocs").Int(clampInt(s.Allocs))
	obj.Name("frees").Int(clampInt(s.Frees))
	obj.Name("noFits").Int(clampInt(s.NoFits))
	obj.Name("inUse").Int(clampInt(uint64(s.InUse)))
	obj.Name("freeBytes").Int(clampInt(uint64(s.FreeBytes)))
	obj.Name("holes").Int(s.Holes)
	obj.End()
}

// clampInt converts an unsigned counter for jwriter, which only writes signed
// integers. Values above MaxInt saturate rather than turn negative.
func clampInt(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}
