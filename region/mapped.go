package region

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/holekit/internal/format"
)

// Mapped is a memory-mapped region. It behaves like Bytes with a logical base
// of zero, and additionally tracks which pages the allocator has written so
// they can be flushed to the backing file.
type Mapped struct {
	*Bytes

	f     *os.File // nil for anonymous mappings
	dirty *DirtyTracker
}

// Map maps the file at path read-write, creating it if needed. When size is
// larger than the file, the file is extended; a size of zero maps the file at
// its current length.
func Map(path string, size int) (*Mapped, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if int64(size) < st.Size() {
		size = int(st.Size())
	}
	if size <= 0 {
		_ = f.Close()
		return nil, errors.Wrapf(ErrEmpty, "map %s", path)
	}
	if st.Size() < int64(size) {
		if truncErr := f.Truncate(int64(size)); truncErr != nil {
			_ = f.Close()
			return nil, errors.Wrapf(truncErr, "extend %s to %d bytes", path, size)
		}
	}

	data, err := mapFile(f, size)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "mmap failed")
	}

	return &Mapped{
		Bytes: NewBytes(0, data),
		f:     f,
		dirty: NewDirtyTracker(pageSize()),
	}, nil
}

// MapAnon maps size bytes of zeroed anonymous memory.
func MapAnon(size int) (*Mapped, error) {
	if size <= 0 {
		return nil, ErrEmpty
	}
	data, err := mapAnon(size)
	if err != nil {
		return nil, errors.Wrap(err, "mmap failed")
	}
	return &Mapped{
		Bytes: NewBytes(0, data),
		dirty: NewDirtyTracker(pageSize()),
	}, nil
}

// Base returns zero once the region is closed.
func (m *Mapped) Base() uintptr {
	if m.Bytes == nil {
		return 0
	}
	return m.Bytes.Base()
}

// Len returns zero once the region is closed.
func (m *Mapped) Len() uintptr {
	if m.Bytes == nil {
		return 0
	}
	return m.Bytes.Len()
}

func (m *Mapped) LoadWord(addr uintptr) uintptr {
	m.live("load", addr)
	return m.Bytes.LoadWord(addr)
}

// StoreWord writes the word and marks it dirty.
func (m *Mapped) StoreWord(addr, v uintptr) {
	m.live("store", addr)
	m.Bytes.StoreWord(addr, v)
	m.dirty.Add(int(addr-m.base), int(format.WordSize))
}

// Slice returns the bytes at [addr, addr+n). Writes through it must be
// reported with MarkDirty.
func (m *Mapped) Slice(addr, n uintptr) []byte {
	m.live("slice", addr)
	return m.Bytes.Slice(addr, n)
}

// MarkDirty records a payload write made through Slice so Flush persists it.
func (m *Mapped) MarkDirty(addr, n uintptr) {
	m.live("mark dirty", addr)
	m.dirty.Add(int(addr-m.base), int(n))
}

func (m *Mapped) live(op string, addr uintptr) {
	if m.Bytes == nil {
		fault(ErrClosed, "%s at %#x", op, addr)
	}
}

// DirtyRanges returns the page ranges the next Flush would write.
func (m *Mapped) DirtyRanges() []Range {
	return m.dirty.Coalesced()
}

// Flush writes dirty pages back to the file and syncs it. Anonymous mappings
// have nothing to write; their dirty ranges are simply dropped.
//
// If ctx is cancelled mid-flush, some ranges may already be on disk; the
// remaining ones stay recorded for the next call.
func (m *Mapped) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Bytes == nil {
		return ErrClosed
	}
	if m.f == nil {
		m.dirty.Reset()
		return nil
	}

	for _, r := range m.dirty.Coalesced() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := int(r.Off)
		end := min(int(r.Off+r.Len), len(m.data))
		if start >= end {
			continue
		}
		if err := m.flushRange(start, end); err != nil {
			return errors.Wrapf(err, "flush [%d, %d)", start, end)
		}
	}
	m.dirty.Reset()

	return syncFile(m.f)
}

// Close unmaps the region and closes the backing file. Dirty pages that were
// not flushed may or may not reach the file.
func (m *Mapped) Close() error {
	if m.Bytes == nil {
		return nil
	}
	err := unmap(m.data)
	m.Bytes = nil
	if m.f != nil {
		if closeErr := m.f.Close(); err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
