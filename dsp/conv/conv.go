package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// DirectThreshold is the longest kernel [Convolve] evaluates in the time domain.
const DirectThreshold = 64

// Mode specifies the output window of a convolution.
type Mode int

const (
	// ModeFull returns all len(a)+len(b)-1 output samples.
	ModeFull Mode = iota

	// ModeSame returns len(a) samples centred on the full result.
	ModeSame

	// ModeValid returns only the samples where both inputs fully overlap.
	ModeValid
)

// Direct performs time-domain linear convolution of a and b and returns a
// new slice of length len(a)+len(b)-1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	out := make([]float64, len(a)+len(b)-1)
	DirectTo(out, a, b)
	return out, nil
}

// DirectTo writes the full convolution of a and b into dst, which must have
// length len(a)+len(b)-1. dst is cleared first.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	if m < 4 {
		for i, x := range a {
			for j, h := range b {
				dst[i+j] += x * h
			}
		}
		return
	}

	// Scale-and-accumulate keeps the inner loop on the vector kernels.
	scaled := make([]float64, m)
	for i, x := range a {
		vecmath.ScaleBlock(scaled, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], scaled)
	}
}

// Convolve performs linear convolution, choosing direct evaluation for
// kernels up to DirectThreshold taps and FFT overlap-add above it.
// The argument order does not matter; the shorter input is used as kernel.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= DirectThreshold {
		return Direct(a, b)
	}
	return OverlapAddConvolve(a, b)
}

// ConvolveMode performs convolution and trims the result to mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, len(a), len(b), mode), nil
}

func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
