// Package format holds the low-level word encoding and alignment helpers shared
// by the region providers and the allocators. Nothing in here knows about holes;
// it only knows how a machine word is laid out in a byte slice.
package format

import (
	"encoding/binary"
	"unsafe"
)

// WordSize is the size of a machine word (uintptr) on the target platform.
const WordSize = unsafe.Sizeof(uintptr(0))

// HeaderWords is the number of words in an in-place hole header (size, next).
const HeaderWords = 2

// MinBlockSize is the smallest block that can later host a hole header.
const MinBlockSize = HeaderWords * WordSize

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutWord writes a machine word at off. The encoding width follows WordSize
// so a 32-bit build lays out 4-byte words and a 64-bit build 8-byte words.
func PutWord(b []byte, off int, v uintptr) {
	if WordSize == 4 {
		PutU32(b, off, uint32(v))
		return
	}
	PutU64(b, off, uint64(v))
}

// ReadWord reads a machine word written by PutWord.
func ReadWord(b []byte, off int) uintptr {
	if WordSize == 4 {
		return uintptr(ReadU32(b, off))
	}
	return uintptr(ReadU64(b, off))
}
