package strindex

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is the root of every construction-time input error.
	ErrInvalidInput = errors.New("strindex: invalid input")

	ErrEmptySequence      = errors.Wrap(ErrInvalidInput, "empty sequence")
	ErrInvalidSymbol      = errors.Wrap(ErrInvalidInput, "symbol outside alphabet")
	ErrInvalidBorders     = errors.Wrap(ErrInvalidInput, "malformed border array")
	ErrInvalidZ           = errors.Wrap(ErrInvalidInput, "malformed z array")
	ErrInvalidSuffixArray = errors.Wrap(ErrInvalidInput, "malformed suffix array")
	ErrInvalidAlphabet    = errors.Wrap(ErrInvalidInput, "alphabet does not fit in a byte")

	// ErrUnsatisfiable reports that a query has no answer. It is an
	// ordinary outcome, not a fault.
	ErrUnsatisfiable = errors.New("strindex: no solution")
)

func outOfRange(op string, i, n int) {
	panic(errors.Errorf("strindex: %s: index %d out of range [0,%d)", op, i, n))
}
