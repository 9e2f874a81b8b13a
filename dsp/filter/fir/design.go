package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"github.com/cwbudde/algo-bandpass/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidSpec is returned for a malformed filter specification.
var ErrInvalidSpec = errors.New("fir: invalid spec")

// Spec describes a bandpass FIR filter.
//
// The zero value of Window is the rectangular window; use [DefaultSpec] or
// set Window explicitly to get the Hamming default.
type Spec struct {
	LowCutoffHz  float64
	HighCutoffHz float64
	NumTaps      int
	Window       window.Type
	SampleRate   float64
}

// DefaultSpec returns a 3-30 Hz, 101-tap Hamming bandpass at sampleRate.
func DefaultSpec(sampleRate float64) Spec {
	return Spec{
		LowCutoffHz:  3,
		HighCutoffHz: 30,
		NumTaps:      101,
		Window:       window.Default,
		SampleRate:   sampleRate,
	}
}

// CenterHz returns the band centre (LowCutoffHz+HighCutoffHz)/2.
func (s Spec) CenterHz() float64 {
	return (s.LowCutoffHz + s.HighCutoffHz) / 2
}

// Validate reports whether s can be designed. Errors wrap ErrInvalidSpec.
func (s Spec) Validate() error {
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0, got %v", ErrInvalidSpec, s.SampleRate)
	}
	if s.NumTaps <= 0 || s.NumTaps%2 == 0 {
		return fmt.Errorf("%w: tap count must be odd and positive, got %d", ErrInvalidSpec, s.NumTaps)
	}
	nyquist := s.SampleRate / 2
	if !(s.LowCutoffHz > 0) || !(s.LowCutoffHz < s.HighCutoffHz) || !(s.HighCutoffHz < nyquist) {
		return fmt.Errorf("%w: cutoffs must satisfy 0 < %v < %v < %v",
			ErrInvalidSpec, s.LowCutoffHz, s.HighCutoffHz, nyquist)
	}
	if !s.Window.Valid() {
		return fmt.Errorf("%w: unknown window %d", ErrInvalidSpec, int(s.Window))
	}
	return nil
}

func (s Spec) String() string {
	return fmt.Sprintf("bandpass %g-%g Hz, %d taps, %s window, fs=%g Hz",
		s.LowCutoffHz, s.HighCutoffHz, s.NumTaps, s.Window, s.SampleRate)
}

// Design returns windowed-sinc bandpass coefficients for spec.
//
// The ideal response is the difference of two lowpass sincs,
//
//	h[n] = 2fh*sinc(2fh*m) - 2fl*sinc(2fl*m),  m = n - (N-1)/2
//
// with fl, fh in cycles per sample. It is tapered by the window and scaled
// so that |H| = 1 at the band centre. Equal specs give bit-identical taps.
func Design(spec Spec) (Coefficients, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := spec.NumTaps
	fl := spec.LowCutoffHz / spec.SampleRate
	fh := spec.HighCutoffHz / spec.SampleRate
	alpha := float64(n-1) / 2

	h := make([]float64, n)
	for i := 0; i <= n/2; i++ {
		m := float64(i) - alpha
		h[i] = 2*fh*sinc(2*fh*m) - 2*fl*sinc(2*fl*m)
	}
	window.Apply(spec.Window, h)

	// Mirror the first half so the taps are exactly symmetric.
	for i := 0; i < n/2; i++ {
		h[n-1-i] = h[i]
	}

	// For symmetric taps the centre-frequency response is real after
	// removing the linear phase term.
	fc := spec.CenterHz() / spec.SampleRate
	c := make([]float64, n)
	for i := range c {
		c[i] = math.Cos(2 * math.Pi * fc * (float64(i) - alpha))
	}
	gain := vecmath.DotProduct(h, c)
	if gain == 0 || math.IsNaN(gain) {
		return nil, fmt.Errorf("%w: zero gain at band centre %v Hz", ErrInvalidSpec, spec.CenterHz())
	}
	vecmath.ScaleBlockInPlace(h, 1/gain)

	return Coefficients(h), nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// Coefficients are FIR filter taps, h[0] first.
type Coefficients []float64

// Len returns the number of taps.
func (h Coefficients) Len() int { return len(h) }

// Order returns the filter order, Len()-1.
func (h Coefficients) Order() int { return len(h) - 1 }

// Taps returns a copy of the taps.
func (h Coefficients) Taps() []float64 {
	return append([]float64(nil), h...)
}

// GroupDelay returns the delay of a linear-phase filter in samples.
func (h Coefficients) GroupDelay() float64 {
	if len(h) == 0 {
		return 0
	}
	return float64(len(h)-1) / 2
}

// IsSymmetric reports whether h[i] and h[N-1-i] agree within tol.
func (h Coefficients) IsSymmetric(tol float64) bool {
	for i, j := 0, len(h)-1; i < j; i, j = i+1, j-1 {
		if math.Abs(h[i]-h[j]) > tol {
			return false
		}
	}
	return true
}

// Response computes the complex frequency response
//
//	H(f) = sum_k h[k] * exp(-j*2*pi*f*k/fs)
func (h Coefficients) Response(freqHz, sampleRate float64) complex128 {
	if len(h) == 0 || sampleRate <= 0 {
		return 0
	}
	w := 2 * math.Pi * freqHz / sampleRate
	re := make([]float64, len(h))
	im := make([]float64, len(h))
	for k := range h {
		s, c := math.Sincos(w * float64(k))
		re[k] = c
		im[k] = -s
	}
	return complex(vecmath.DotProduct(h, re), vecmath.DotProduct(h, im))
}

// Gain returns |H(f)|.
func (h Coefficients) Gain(freqHz, sampleRate float64) float64 {
	return cmplx.Abs(h.Response(freqHz, sampleRate))
}

// MagnitudeDB returns 20*log10|H(f)|, floored at core.MinDB.
func (h Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.AmplitudeToDB(h.Gain(freqHz, sampleRate))
}
