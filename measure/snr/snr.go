// Package snr measures how much of a reference signal survives in an
// observation, before and after filtering.
package snr

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-bandpass/dsp/core"
)

var (
	// ErrEmptyInput is returned when a signal has no samples.
	ErrEmptyInput = errors.New("snr: empty input")

	// ErrLengthMismatch is returned when signals differ in length.
	ErrLengthMismatch = errors.New("snr: length mismatch")
)

// SNR returns 10*log10(var(clean) / var(observed - clean)) using population
// variances. An exact reconstruction yields +Inf; a constant clean signal
// against a noisy observation yields -Inf.
func SNR(clean, observed []float64) (float64, error) {
	if len(clean) == 0 || len(observed) == 0 {
		return 0, ErrEmptyInput
	}
	if len(clean) != len(observed) {
		return 0, fmt.Errorf("%w: clean %d, observed %d", ErrLengthMismatch, len(clean), len(observed))
	}

	residual := make([]float64, len(clean))
	floats.SubTo(residual, observed, clean)

	signalVar := stat.PopVariance(clean, nil)
	noiseVar := stat.PopVariance(residual, nil)
	if noiseVar == 0 {
		if signalVar == 0 {
			return math.NaN(), nil
		}
		return math.Inf(1), nil
	}
	return core.PowerRatioToDB(signalVar / noiseVar), nil
}

// Metrics compares a noisy observation and its filtered version against the
// clean reference.
type Metrics struct {
	BeforeDB      float64
	AfterDB       float64
	ImprovementDB float64
}

// Compare computes the SNR of noisy and filtered against clean.
func Compare(clean, noisy, filtered []float64) (Metrics, error) {
	before, err := SNR(clean, noisy)
	if err != nil {
		return Metrics{}, fmt.Errorf("snr before filtering: %w", err)
	}
	after, err := SNR(clean, filtered)
	if err != nil {
		return Metrics{}, fmt.Errorf("snr after filtering: %w", err)
	}
	return Metrics{
		BeforeDB:      before,
		AfterDB:       after,
		ImprovementDB: after - before,
	}, nil
}
