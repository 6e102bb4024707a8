//go:build linux || darwin

package region

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// flushWhole is set where msync needs the address the mapping was created at,
// so sub-slices cannot be flushed on their own. The kernel still only writes
// pages that are actually dirty.
const flushWhole = runtime.GOOS == "darwin"

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func mapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}

func pageSize() int {
	return unix.Getpagesize()
}

func (m *Mapped) flushRange(start, end int) error {
	if flushWhole {
		return unix.Msync(m.data, unix.MS_SYNC)
	}
	return unix.Msync(m.data[start:end], unix.MS_SYNC)
}

func syncFile(f *os.File) error {
	return unix.Fsync(int(f.Fd()))
}
