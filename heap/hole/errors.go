package hole

import "github.com/cockroachdb/errors"

var (
	// ErrContract is wrapped by every panic raised for a broken caller contract.
	ErrContract = errors.New("hole: contract violation")

	// ErrCorrupt is wrapped by Validate errors.
	ErrCorrupt = errors.New("hole: corrupt chain")
)

// violation panics with an assertion failure wrapping ErrContract.
func violation(format string, args ...any) {
	panic(errors.WithAssertionFailure(errors.Wrapf(ErrContract, format, args...)))
}

func corrupt(format string, args ...any) error {
	return errors.Wrapf(ErrCorrupt, format, args...)
}
