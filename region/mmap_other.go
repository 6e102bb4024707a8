//go:build !linux && !darwin

package region

import (
	"io"
	"os"
)

// mapFile reads the file into memory when mmap is not used. Flush writes the
// dirty ranges back with WriteAt.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

func mapAnon(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmap([]byte) error { return nil }

func pageSize() int { return os.Getpagesize() }

func (m *Mapped) flushRange(start, end int) error {
	_, err := m.f.WriteAt(m.data[start:end], int64(start))
	return err
}

func syncFile(f *os.File) error {
	return f.Sync()
}
