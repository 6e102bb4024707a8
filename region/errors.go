package region

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfRange indicates a word access outside the region.
	ErrOutOfRange = errors.New("region: access out of range")

	// ErrMisaligned indicates a word access that is not word aligned where the
	// region requires it.
	ErrMisaligned = errors.New("region: misaligned word access")

	// ErrEmpty indicates an attempt to map a zero-length region.
	ErrEmpty = errors.New("region: empty region")

	// ErrClosed indicates use of a mapped region after Close.
	ErrClosed = errors.New("region: closed")
)

// fault panics with an assertion failure wrapping cause. Out-of-range header
// access means the allocator's contract was broken; there is no way to carry on.
func fault(cause error, format string, args ...any) {
	panic(errors.WithAssertionFailure(errors.Wrapf(cause, format, args...)))
}
