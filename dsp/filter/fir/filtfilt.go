package fir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrSignalTooShort is returned when the input cannot hold the edge padding.
	ErrSignalTooShort = errors.New("fir: signal too short")

	// ErrInvalidPadLen is returned for a pad length below MinPadLen.
	ErrInvalidPadLen = errors.New("fir: invalid pad length")

	// ErrInvalidPadMode is returned for an unknown PadMode.
	ErrInvalidPadMode = errors.New("fir: invalid pad mode")
)

// PadMode selects how FiltFilt extends the signal at both ends.
type PadMode int

const (
	// PadOdd reflects the signal through its end points: 2*x[0] - x[p..1].
	PadOdd PadMode = iota

	// PadEven mirrors the signal about its end points: x[p..1].
	PadEven

	// PadConstant repeats the end samples.
	PadConstant
)

func (m PadMode) String() string {
	switch m {
	case PadOdd:
		return "odd"
	case PadEven:
		return "even"
	case PadConstant:
		return "constant"
	default:
		return fmt.Sprintf("PadMode(%d)", int(m))
	}
}

type filtFiltConfig struct {
	padLen  int
	padMode PadMode
}

// FiltFiltOption configures FiltFilt.
type FiltFiltOption func(*filtFiltConfig)

// WithPadLen overrides the default pad length of 3*len(h). Lengths below
// MinPadLen are rejected by FiltFilt.
func WithPadLen(n int) FiltFiltOption {
	return func(cfg *filtFiltConfig) {
		cfg.padLen = n
	}
}

// WithPadMode selects the edge extension. The default is PadOdd.
func WithPadMode(mode PadMode) FiltFiltOption {
	return func(cfg *filtFiltConfig) {
		cfg.padMode = mode
	}
}

// DefaultPadLen returns the pad length FiltFilt uses for h when none is given.
func DefaultPadLen(h Coefficients) int {
	return 3 * len(h)
}

// MinPadLen returns the shortest edge extension FiltFilt accepts for h,
// 3*order/2 samples.
func MinPadLen(h Coefficients) int {
	return 3 * (len(h) - 1) / 2
}

// MinSignalLen returns the shortest input FiltFilt accepts for h, regardless
// of padding.
func MinSignalLen(h Coefficients) int {
	return 3 * len(h) / 2
}

// FiltFilt applies h forward and then backward over x, giving zero phase
// shift and a squared magnitude response. The output has the length and
// sample rate of x.
//
// Both ends are extended by the pad length before filtering and trimmed
// afterwards. Each causal pass starts from the steady state of its first
// sample, which together with odd padding keeps edge transients small.
func FiltFilt(h Coefficients, x core.Signal, opts ...FiltFiltOption) (core.Signal, error) {
	if err := x.Validate(); err != nil {
		return core.Signal{}, err
	}
	if len(h) == 0 {
		return core.Signal{}, fmt.Errorf("%w: no taps", ErrInvalidSpec)
	}

	cfg := filtFiltConfig{padLen: DefaultPadLen(h), padMode: PadOdd}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.padLen < MinPadLen(h) {
		return core.Signal{}, fmt.Errorf("%w: %d, need at least %d for %d taps",
			ErrInvalidPadLen, cfg.padLen, MinPadLen(h), len(h))
	}
	switch cfg.padMode {
	case PadOdd, PadEven, PadConstant:
	default:
		return core.Signal{}, fmt.Errorf("%w: %v", ErrInvalidPadMode, cfg.padMode)
	}
	padLen := cfg.padLen

	n := x.Len()
	if n < MinSignalLen(h) {
		return core.Signal{}, fmt.Errorf("%w: %d samples, need at least %d for %d taps",
			ErrSignalTooShort, n, MinSignalLen(h), len(h))
	}
	if n <= padLen {
		return core.Signal{}, fmt.Errorf("%w: %d samples, need more than pad length %d",
			ErrSignalTooShort, n, padLen)
	}

	ext, err := extend(x.Samples, padLen, cfg.padMode)
	if err != nil {
		return core.Signal{}, err
	}

	y, err := Lfilter(h, ext)
	if err != nil {
		return core.Signal{}, err
	}
	floats.Reverse(y)

	y, err = Lfilter(h, y)
	if err != nil {
		return core.Signal{}, err
	}
	floats.Reverse(y)

	out := make([]float64, n)
	copy(out, y[padLen:padLen+n])
	return x.WithSamples(out), nil
}

// extend returns x with p samples added at each end. p must be < len(x).
func extend(x []float64, p int, mode PadMode) ([]float64, error) {
	n := len(x)
	out := make([]float64, n+2*p)
	copy(out[p:], x)
	if p == 0 {
		return out, nil
	}

	first, last := x[0], x[n-1]
	for i := range p {
		// left[i] pairs with x[p-i], right[i] with x[n-2-i]
		l, r := x[p-i], x[n-2-i]
		switch mode {
		case PadOdd:
			out[i] = 2*first - l
			out[p+n+i] = 2*last - r
		case PadEven:
			out[i] = l
			out[p+n+i] = r
		case PadConstant:
			out[i] = first
			out[p+n+i] = last
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidPadMode, mode)
		}
	}
	return out, nil
}
