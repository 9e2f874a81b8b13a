package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-bandpass/dsp/core"
)

// ErrInvalidNoise is returned for a negative or non-finite noise level.
var ErrInvalidNoise = errors.New("signal: invalid noise level")

// Tone is one sinusoidal component.
type Tone struct {
	Amplitude   float64
	FrequencyHz float64
}

// Config describes a test signal: useful tones, interference tones and
// additive Gaussian noise, sampled for Duration seconds.
type Config struct {
	SampleRate   float64
	Duration     float64
	Tones        []Tone
	Interference []Tone
	NoiseStdDev  float64

	// Seed fixes the noise sequence. Nil selects DefaultSeed.
	Seed *uint64
}

// DefaultConfig returns the demonstration signal: 5, 15 and 25 Hz tones
// buried under 60 Hz hum, a 0.5 Hz drift and noise with sigma 0.3,
// 5 s at 200 Hz.
func DefaultConfig() Config {
	return Config{
		SampleRate: 200,
		Duration:   5,
		Tones: []Tone{
			{Amplitude: 1.5, FrequencyHz: 5},
			{Amplitude: 1.0, FrequencyHz: 15},
			{Amplitude: 0.8, FrequencyHz: 25},
		},
		Interference: []Tone{
			{Amplitude: 0.5, FrequencyHz: 60},
			{Amplitude: 0.3, FrequencyHz: 0.5},
		},
		NoiseStdDev: 0.3,
	}
}

// SampleCount returns floor(SampleRate*Duration).
func (c Config) SampleCount() int {
	n := math.Floor(c.SampleRate * c.Duration)
	if !(n > 0) || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// Synthesis holds the sample instants and the clean and noisy signals.
type Synthesis struct {
	Time  []float64
	Clean core.Signal
	Noisy core.Signal
}

// Synthesize builds the clean tone sum and its noisy observation.
//
//	clean[k] = sum A*sin(2*pi*f*t_k) over Tones
//	noisy[k] = clean[k] + sum over Interference + N(0, NoiseStdDev^2)
//
// The result depends only on cfg.
func Synthesize(cfg Config) (Synthesis, error) {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return Synthesis{}, fmt.Errorf("%w: sample rate %v", core.ErrEmptySignal, cfg.SampleRate)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return Synthesis{}, fmt.Errorf("%w: duration %v", core.ErrEmptySignal, cfg.Duration)
	}
	n := cfg.SampleCount()
	if n == 0 {
		return Synthesis{}, fmt.Errorf("%w: %v s at %v Hz yields no samples",
			core.ErrEmptySignal, cfg.Duration, cfg.SampleRate)
	}
	if cfg.NoiseStdDev < 0 || math.IsNaN(cfg.NoiseStdDev) || math.IsInf(cfg.NoiseStdDev, 0) {
		return Synthesis{}, fmt.Errorf("%w: %v", ErrInvalidNoise, cfg.NoiseStdDev)
	}

	seed := DefaultSeed
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	g := NewGenerator([]core.ProcessorOption{core.WithSampleRate(cfg.SampleRate)}, WithSeed(seed))

	clean, err := g.Tones(cfg.Tones, n)
	if err != nil {
		return Synthesis{}, err
	}
	interference, err := g.Tones(cfg.Interference, n)
	if err != nil {
		return Synthesis{}, err
	}
	noise, err := g.GaussianNoise(cfg.NoiseStdDev, n)
	if err != nil {
		return Synthesis{}, err
	}

	noisy := make([]float64, n)
	for k := range noisy {
		noisy[k] = clean[k] + interference[k] + noise[k]
	}

	return Synthesis{
		Time:  core.SampleTimes(n, cfg.SampleRate),
		Clean: core.Signal{Samples: clean, SampleRate: cfg.SampleRate},
		Noisy: core.Signal{Samples: noisy, SampleRate: cfg.SampleRate},
	}, nil
}
