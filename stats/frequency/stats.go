// Package frequency computes shape descriptors of a magnitude spectrum.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-bandpass/dsp/spectrum"
)

// ErrInvalidBand is returned for an empty or inverted frequency band.
var ErrInvalidBand = errors.New("frequency: invalid band")

// DefaultRolloff is the energy fraction used by Calculate for RolloffHz.
const DefaultRolloff = 0.85

// Stats holds spectral shape descriptors. Frequencies are in Hz.
type Stats struct {
	Bins     int
	PeakHz   float64
	Peak     float64
	Energy   float64 // sum of squared magnitudes
	Centroid float64
	Spread   float64
	Flatness float64 // geometric over arithmetic mean, 0..1
	Rolloff  float64 // DefaultRolloff of the energy lies below
	// Bandwidth is the -3 dB width around the peak.
	Bandwidth float64
}

// Calculate computes all descriptors of s.
func Calculate(s spectrum.Spectrum) Stats {
	st := Stats{Bins: s.Len()}
	if st.Bins == 0 {
		return st
	}
	st.PeakHz, st.Peak = s.Max()
	st.Energy = floats.Dot(s.Magnitude, s.Magnitude)
	st.Centroid = Centroid(s)
	st.Spread = spread(s)
	st.Flatness = Flatness(s)
	st.Rolloff = Rolloff(s, DefaultRolloff)
	st.Bandwidth = Bandwidth(s)
	return st
}

// Centroid returns the magnitude-weighted mean frequency, or 0 for a silent
// spectrum.
func Centroid(s spectrum.Spectrum) float64 {
	if s.Len() == 0 || floats.Sum(s.Magnitude) == 0 {
		return 0
	}
	return stat.Mean(s.FrequencyHz, s.Magnitude)
}

func spread(s spectrum.Spectrum) float64 {
	if s.Len() == 0 || floats.Sum(s.Magnitude) == 0 {
		return 0
	}
	return math.Sqrt(stat.PopVariance(s.FrequencyHz, s.Magnitude))
}

// Flatness returns the geometric over the arithmetic mean of the magnitudes.
// A single zero bin makes it 0.
func Flatness(s spectrum.Spectrum) float64 {
	if s.Len() == 0 {
		return 0
	}
	mean := stat.Mean(s.Magnitude, nil)
	if mean == 0 || floats.Min(s.Magnitude) <= 0 {
		return 0
	}
	return stat.GeometricMean(s.Magnitude, nil) / mean
}

// Rolloff returns the lowest bin frequency below which the fraction of the
// total energy lies.
func Rolloff(s spectrum.Spectrum, fraction float64) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	total := floats.Dot(s.Magnitude, s.Magnitude)
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	var cum float64
	for i, m := range s.Magnitude {
		cum += m * m
		if cum >= threshold {
			return s.FrequencyHz[i]
		}
	}
	return s.FrequencyHz[n-1]
}

// Bandwidth returns the -3 dB width around the largest bin. The crossings
// are linearly interpolated between bins and clamp to the spectrum ends.
func Bandwidth(s spectrum.Spectrum) float64 {
	n := s.Len()
	if n < 2 {
		return 0
	}
	peakBin := floats.MaxIdx(s.Magnitude)
	peak := s.Magnitude[peakBin]
	if peak == 0 {
		return 0
	}
	threshold := peak / math.Sqrt2

	lower := s.FrequencyHz[0]
	for i := peakBin; i >= 1; i-- {
		if s.Magnitude[i-1] <= threshold && s.Magnitude[i] > threshold {
			lower = crossing(s, i-1, i, threshold)
			break
		}
	}
	upper := s.FrequencyHz[n-1]
	for i := peakBin; i < n-1; i++ {
		if s.Magnitude[i+1] <= threshold && s.Magnitude[i] > threshold {
			upper = crossing(s, i, i+1, threshold)
			break
		}
	}
	return max(upper-lower, 0)
}

func crossing(s spectrum.Spectrum, a, b int, threshold float64) float64 {
	fa, fb := s.FrequencyHz[a], s.FrequencyHz[b]
	ma, mb := s.Magnitude[a], s.Magnitude[b]
	if ma == mb {
		return (fa + fb) / 2
	}
	t := (threshold - ma) / (mb - ma)
	return fa + t*(fb-fa)
}

// BandEnergyFraction returns the share of the spectrum energy in bins with
// loHz <= f <= hiHz. A silent spectrum yields 0.
func BandEnergyFraction(s spectrum.Spectrum, loHz, hiHz float64) (float64, error) {
	if !(loHz < hiHz) {
		return 0, fmt.Errorf("%w: [%v, %v] Hz", ErrInvalidBand, loHz, hiHz)
	}
	var in, total float64
	for i, f := range s.FrequencyHz {
		e := s.Magnitude[i] * s.Magnitude[i]
		total += e
		if f >= loHz && f <= hiHz {
			in += e
		}
	}
	if total == 0 {
		return 0, nil
	}
	return in / total, nil
}
