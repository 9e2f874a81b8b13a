package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidResponse is returned by FrequencyResponse for empty taps, a
// non-positive sample rate or fewer than two points.
var ErrInvalidResponse = errors.New("spectrum: invalid frequency response request")

// MinGainDB is the floor applied to FrequencyResponse gains.
const MinGainDB = core.MinDB

// Response is a filter magnitude response sampled on [0, Nyquist].
type Response struct {
	FrequencyHz []float64
	GainDB      []float64
}

// Len returns the number of frequency points.
func (r Response) Len() int { return len(r.GainDB) }

// GainAt linearly interpolates the gain in dB at freqHz.
func (r Response) GainAt(freqHz float64) float64 {
	if len(r.GainDB) == 0 {
		return MinGainDB
	}
	return interpolateAt(r.FrequencyHz, r.GainDB, freqHz)
}

// FrequencyResponse evaluates 20*log10|H(f)| of the FIR taps h at numPoints
// frequencies spaced evenly from 0 to sampleRate/2 inclusive. Gains below
// MinGainDB, including exact nulls, are clamped to MinGainDB.
//
// The response is read from a zero-padded FFT of length 2*(numPoints-1),
// extended by whole multiples when h is longer than that.
func FrequencyResponse(h []float64, sampleRate float64, numPoints int) (Response, error) {
	if len(h) == 0 {
		return Response{}, fmt.Errorf("%w: no taps", ErrInvalidResponse)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Response{}, fmt.Errorf("%w: sample rate %v", ErrInvalidResponse, sampleRate)
	}
	if numPoints < 2 {
		return Response{}, fmt.Errorf("%w: %d points, need at least 2", ErrInvalidResponse, numPoints)
	}

	base := 2 * (numPoints - 1)
	stride := (len(h) + base - 1) / base
	padded := make([]float64, base*stride)
	copy(padded, h)

	bins := Magnitude(fft.FFTReal(padded)[:base*stride/2+1])

	out := Response{
		FrequencyHz: make([]float64, numPoints),
		GainDB:      make([]float64, numPoints),
	}
	floats.Span(out.FrequencyHz, 0, sampleRate/2)
	for i := range out.GainDB {
		out.GainDB[i] = core.AmplitudeToDB(bins[i*stride])
	}
	return out, nil
}
