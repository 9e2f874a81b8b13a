package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned for a window of fewer than one sample.
	ErrInvalidLength = errors.New("window: invalid length")

	// ErrInvalidBeta is returned for a negative Kaiser beta.
	ErrInvalidBeta = errors.New("window: invalid kaiser beta")

	// ErrLengthMismatch is returned when samples and coefficients differ in length.
	ErrLengthMismatch = errors.New("window: length mismatch")

	// ErrZeroGain is returned when coefficients are empty or sum to zero.
	ErrZeroGain = errors.New("window: zero coherent gain")

	// ErrUnknownType is returned by ParseType for an unrecognised name.
	ErrUnknownType = errors.New("window: unknown type")
)

func checkSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}
	return nil
}
