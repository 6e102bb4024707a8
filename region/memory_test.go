package region

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/holekit/internal/format"
)

// recoverFault runs fn and returns the error it panicked with.
func recoverFault(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
	}()
	fn()
	return nil
}

func TestBytesLogicalAddresses(t *testing.T) {
	b := Alloc(0x1000, 64)
	require.Equal(t, uintptr(0x1000), b.Base())
	require.Equal(t, uintptr(64), b.Len())

	b.StoreWord(0x1008, 42)
	require.Equal(t, uintptr(42), b.LoadWord(0x1008))
	require.Equal(t, uintptr(42), format.ReadWord(b.Data(), 8), "word lands at base-relative offset")

	payload := b.Slice(0x1020, 16)
	require.Len(t, payload, 16)
	payload[0] = 0xAA
	require.Equal(t, byte(0xAA), b.Data()[0x20])
}

func TestBytesZeroBase(t *testing.T) {
	b := Alloc(0, 32)
	b.StoreWord(0, 32)
	b.StoreWord(format.WordSize, ^uintptr(0))
	require.Equal(t, uintptr(32), b.LoadWord(0))
	require.Equal(t, ^uintptr(0), b.LoadWord(format.WordSize))
}

func TestBytesOutOfRangePanics(t *testing.T) {
	b := Alloc(0x1000, 32)

	err := recoverFault(t, func() { b.LoadWord(0xff8) })
	require.ErrorIs(t, err, ErrOutOfRange)
	require.True(t, errors.IsAssertionFailure(err))

	err = recoverFault(t, func() { b.StoreWord(0x1000+32-format.WordSize+1, 1) })
	require.ErrorIs(t, err, ErrOutOfRange)

	err = recoverFault(t, func() { b.Slice(0x1010, 32) })
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestNewBytesRejectsWrappingBase(t *testing.T) {
	err := recoverFault(t, func() { NewBytes(^uintptr(0)-4, make([]byte, 16)) })
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestRawUsesRealAddresses(t *testing.T) {
	data := make([]byte, 64)
	r := NewRaw(data)
	require.NotZero(t, r.Base())
	require.Equal(t, uintptr(64), r.Len())
	require.Zero(t, r.Base()%format.WordSize, "slice base should be word aligned")

	r.StoreWord(r.Base()+format.WordSize, 0x1234)
	require.Equal(t, uintptr(0x1234), r.LoadWord(r.Base()+format.WordSize))
	require.Equal(t, uintptr(0x1234), format.ReadWord(data, int(format.WordSize)),
		"raw stores should be visible through the slice")
}

func TestRawRejectsMisalignedAndOutOfRange(t *testing.T) {
	r := NewRaw(make([]byte, 32))

	err := recoverFault(t, func() { r.LoadWord(r.Base() + 1) })
	require.ErrorIs(t, err, ErrMisaligned)

	err = recoverFault(t, func() { r.StoreWord(r.Base()+32, 1) })
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestRawEmpty(t *testing.T) {
	r := NewRaw(nil)
	require.Zero(t, r.Base())
	require.Zero(t, r.Len())
}

func TestNeedsAlignedWords(t *testing.T) {
	require.True(t, NeedsAlignedWords(NewRaw(make([]byte, 64))))
	require.False(t, NeedsAlignedWords(Alloc(0, 64)))

	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()
	require.False(t, NeedsAlignedWords(m))
}
