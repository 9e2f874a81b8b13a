package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/spectral"
	dspwindow "github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidSegment is returned by Welch for an odd or non-positive segment length.
var ErrInvalidSegment = errors.New("spectrum: invalid segment length")

// Spectrum is a one-sided spectrum over strictly positive frequencies.
// FrequencyHz is strictly increasing and has the length of Magnitude.
type Spectrum struct {
	FrequencyHz []float64
	Magnitude   []float64
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Magnitude) }

// Max returns the largest magnitude and its frequency.
func (s Spectrum) Max() (freqHz, magnitude float64) {
	if len(s.Magnitude) == 0 {
		return 0, 0
	}
	i := floats.MaxIdx(s.Magnitude)
	return s.FrequencyHz[i], s.Magnitude[i]
}

// PeakNear returns the largest bin within freqHz +/- halfWidthHz.
// ok is false when no bin falls inside the window.
func (s Spectrum) PeakNear(freqHz, halfWidthHz float64) (peakHz, magnitude float64, ok bool) {
	for i, f := range s.FrequencyHz {
		if f < freqHz-halfWidthHz || f > freqHz+halfWidthHz {
			continue
		}
		if !ok || s.Magnitude[i] > magnitude {
			peakHz, magnitude, ok = f, s.Magnitude[i], true
		}
	}
	return peakHz, magnitude, ok
}

// MagnitudeAt linearly interpolates the magnitude at freqHz. Frequencies
// outside the covered range clamp to the end bins.
func (s Spectrum) MagnitudeAt(freqHz float64) float64 {
	if len(s.Magnitude) == 0 {
		return 0
	}
	return interpolateAt(s.FrequencyHz, s.Magnitude, freqHz)
}

// MagnitudeSpectrum returns the single-sided amplitude spectrum of x,
//
//	|X[k]| * 2/N  at  k*fs/N,  k = 1..floor(N/2)
//
// A sinusoid of amplitude A centred on bin k reads as A. DC is excluded.
// For even N the last bin is Nyquist; it has no mirror image and is scaled
// by 1/N instead.
func MagnitudeSpectrum(x core.Signal) (Spectrum, error) {
	if err := x.Validate(); err != nil {
		return Spectrum{}, err
	}

	n := x.Len()
	bins := n / 2
	if bins == 0 {
		return Spectrum{}, fmt.Errorf("%w: %d sample has no positive-frequency bin", core.ErrEmptySignal, n)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x.Samples)

	mag := Magnitude(coeffs[1 : bins+1])
	vecmath.ScaleBlockInPlace(mag, 2/float64(n))
	if n%2 == 0 {
		mag[bins-1] /= 2
	}

	freq := make([]float64, bins)
	for k := range freq {
		freq[k] = fft.Freq(k+1) * x.SampleRate
	}

	return Spectrum{FrequencyHz: freq, Magnitude: mag}, nil
}

// Welch estimates the power spectral density of x by averaging Hann-windowed
// periodograms of segment samples with 50% overlap. The DC bin is dropped so
// the result covers the same positive frequencies as MagnitudeSpectrum.
// Magnitude holds density in units^2/Hz.
func Welch(x core.Signal, segment int) (Spectrum, error) {
	if err := x.Validate(); err != nil {
		return Spectrum{}, err
	}
	if segment <= 0 || segment%2 != 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidSegment, segment)
	}
	if segment > x.Len() {
		return Spectrum{}, fmt.Errorf("%w: %d exceeds signal length %d", ErrInvalidSegment, segment, x.Len())
	}

	pxx, freqs := spectral.Pwelch(x.Samples, x.SampleRate, &spectral.PwelchOptions{
		NFFT:     segment,
		Noverlap: segment / 2,
		Window:   dspwindow.Hann,
	})
	if len(pxx) < 2 {
		return Spectrum{}, fmt.Errorf("spectrum: welch returned %d bins", len(pxx))
	}

	for i, p := range pxx {
		if math.IsNaN(p) {
			return Spectrum{}, fmt.Errorf("spectrum: welch produced NaN at bin %d", i)
		}
	}

	return Spectrum{
		FrequencyHz: append([]float64(nil), freqs[1:]...),
		Magnitude:   append([]float64(nil), pxx[1:]...),
	}, nil
}
