package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptySignal is returned when an operation receives a signal without samples.
var ErrEmptySignal = errors.New("core: empty signal")

// Signal is a uniformly sampled real-valued time series.
//
// A Signal is treated as an immutable value: functions in this module never
// modify Samples in place and always return freshly allocated results.
type Signal struct {
	Samples    []float64
	SampleRate float64
}

// NewSignal copies samples into a validated Signal.
func NewSignal(samples []float64, sampleRate float64) (Signal, error) {
	s := Signal{
		Samples:    append([]float64(nil), samples...),
		SampleRate: sampleRate,
	}
	if err := s.Validate(); err != nil {
		return Signal{}, err
	}
	return s, nil
}

// Validate checks the Signal invariants: at least one sample and a positive,
// finite sample rate.
func (s Signal) Validate() error {
	if len(s.Samples) == 0 {
		return ErrEmptySignal
	}
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("core: sample rate must be > 0: %v", s.SampleRate)
	}
	return nil
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Nyquist returns half the sample rate in Hz.
func (s Signal) Nyquist() float64 { return s.SampleRate / 2 }

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRate
}

// Times returns the sample instants t_k = k / SampleRate.
func (s Signal) Times() []float64 {
	return SampleTimes(len(s.Samples), s.SampleRate)
}

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	return Signal{
		Samples:    append([]float64(nil), s.Samples...),
		SampleRate: s.SampleRate,
	}
}

// WithSamples returns a Signal sharing the sample rate of s but carrying samples.
// The slice is not copied; callers hand over ownership.
func (s Signal) WithSamples(samples []float64) Signal {
	return Signal{Samples: samples, SampleRate: s.SampleRate}
}

// SampleTimes returns n sample instants spaced 1/sampleRate apart, starting at 0.
func SampleTimes(n int, sampleRate float64) []float64 {
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	out := make([]float64, n)
	for k := range out {
		out[k] = float64(k) / sampleRate
	}
	return out
}
