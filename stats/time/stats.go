// Package time summarizes the level and shape of a sampled signal.
package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-bandpass/dsp/core"
)

// Stats holds time-domain signal statistics. Decibel fields are floored at
// core.MinDB.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max |x|
	PeakdB        float64
	CrestFactor   float64 // peak / RMS
	CrestFactorDB float64
	Energy        float64 // sum of squares
	ZeroCrossings int
	Variance      float64 // population variance
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
}

// Calculate computes all statistics of signal. An empty signal yields zero
// levels.
func Calculate(signal []float64) Stats {
	s := Stats{
		Length:        len(signal),
		RMSdB:         core.MinDB,
		PeakdB:        core.MinDB,
		CrestFactorDB: core.MinDB,
	}
	if len(signal) == 0 {
		return s
	}

	s.DC, s.Variance = stat.PopMeanVariance(signal, nil)
	s.Energy = floats.Dot(signal, signal)
	s.RMS = math.Sqrt(s.Energy / float64(len(signal)))
	s.Peak = vecmath.MaxAbs(signal)
	s.CrestFactor = CrestFactor(signal)
	s.ZeroCrossings = ZeroCrossings(signal)
	if s.Variance > 0 {
		s.Skewness = stat.Moment(3, signal, nil) / (s.Variance * math.Sqrt(s.Variance))
		s.Kurtosis = stat.Moment(4, signal, nil)/(s.Variance*s.Variance) - 3
	}

	s.RMSdB = core.AmplitudeToDB(s.RMS)
	s.PeakdB = core.AmplitudeToDB(s.Peak)
	s.CrestFactorDB = core.AmplitudeToDB(s.CrestFactor)
	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// CrestFactor returns peak / RMS, or 0 for a silent signal.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}
	return vecmath.MaxAbs(signal) / r
}

// ZeroCrossings counts sign changes between consecutive samples. Samples
// that are exactly zero do not count.
func ZeroCrossings(signal []float64) int {
	var count int
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}
	return count
}
