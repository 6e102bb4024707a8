package heap

import "github.com/cockroachdb/errors"

var (
	// ErrNoFit indicates that no free region can hold the request.
	ErrNoFit = errors.New("heap: no free region large enough")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("heap: alignment must be a power of two")

	// ErrZeroSize indicates a request for zero bytes.
	ErrZeroSize = errors.New("heap: size must be non-zero")
)
