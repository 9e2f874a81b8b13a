package fir

import (
	"fmt"

	"github.com/cwbudde/algo-bandpass/dsp/conv"
	"github.com/cwbudde/algo-bandpass/dsp/core"
)

// Lfilter applies h causally to x and returns len(x) samples,
//
//	y[n] = sum_k h[k] * x[n-k]
//
// Samples before x[0] are taken to equal x[0], i.e. the filter starts in
// the steady state of a constant input. A constant signal therefore passes
// at DC gain without a start-up transient.
func Lfilter(h Coefficients, x []float64) ([]float64, error) {
	if len(h) == 0 {
		return nil, fmt.Errorf("%w: no taps", ErrInvalidSpec)
	}
	if len(x) == 0 {
		return nil, core.ErrEmptySignal
	}

	m := len(h)
	ext := make([]float64, m-1+len(x))
	for i := range m - 1 {
		ext[i] = x[0]
	}
	copy(ext[m-1:], x)

	full, err := conv.Convolve(ext, h)
	if err != nil {
		return nil, fmt.Errorf("fir: causal pass: %w", err)
	}

	out := make([]float64, len(x))
	copy(out, full[m-1:])
	return out, nil
}
