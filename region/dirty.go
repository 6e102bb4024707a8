package region

import (
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is used when the platform does not report one.
	standardPageSize = 4096
)

// Range is a dirty byte range, as an offset from the start of the region.
type Range struct {
	Off int64
	Len int64
}

// DirtyTracker records which bytes of a region were written since the last
// flush. Header writes are tiny (one word), so ranges are only page-aligned
// and merged when they are about to be flushed.
//
// NOT thread-safe.
type DirtyTracker struct {
	ranges   []Range
	pageSize int64
}

// NewDirtyTracker returns a tracker that coalesces to pageSize boundaries.
// A non-positive pageSize selects 4096.
func NewDirtyTracker(pageSize int) *DirtyTracker {
	if pageSize <= 0 {
		pageSize = standardPageSize
	}
	return &DirtyTracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: int64(pageSize),
	}
}

// Add records [off, off+length) as dirty.
func (t *DirtyTracker) Add(off, length int) {
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// Reset drops all recorded ranges.
func (t *DirtyTracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Len returns the number of raw (uncoalesced) ranges.
func (t *DirtyTracker) Len() int {
	return len(t.ranges)
}

// Ranges returns a copy of the raw ranges.
func (t *DirtyTracker) Ranges() []Range {
	result := make([]Range, len(t.ranges))
	copy(result, t.ranges)
	return result
}

// Coalesced returns the page-aligned, sorted, merged ranges a flush would write.
func (t *DirtyTracker) Coalesced() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			end := max(current.Off+current.Len, next.Off+next.Len)
			current.Len = end - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
