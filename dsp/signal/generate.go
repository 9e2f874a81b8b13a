package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed seeds noise generation when no seed is configured.
const DefaultSeed uint64 = 42

// Generator creates deterministic signals from a shared configuration.
// Every noise call restarts from the seed, so repeated calls return the
// same sequence.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: DefaultSeed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Sine generates amplitude*sin(2*pi*freqHz*t_k) at t_k = k/SampleRate.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	g.addSine(out, freqHz, amplitude)
	return out, nil
}

// Tones sums one sine per tone.
func (g *Generator) Tones(tones []Tone, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for _, tone := range tones {
		g.addSine(out, tone.FrequencyHz, tone.Amplitude)
	}
	return out, nil
}

func (g *Generator) addSine(dst []float64, freqHz, amplitude float64) {
	w := 2 * math.Pi * freqHz
	for k := range dst {
		dst[k] += amplitude * math.Sin(w*float64(k)/g.cfg.SampleRate)
	}
}

// GaussianNoise generates i.i.d. N(0, stdDev^2) samples.
func (g *Generator) GaussianNoise(stdDev float64, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	if stdDev < 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNoise, stdDev)
	}
	out := make([]float64, samples)
	if stdDev == 0 {
		return out, nil
	}
	dist := distuv.Normal{Mu: 0, Sigma: stdDev, Src: g.source()}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.check(samples); err != nil {
		return nil, err
	}
	if amplitude < 0 || math.IsNaN(amplitude) {
		return nil, fmt.Errorf("%w: amplitude %v", ErrInvalidNoise, amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(g.source())
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

func (g *Generator) source() rand.Source {
	return rand.NewPCG(g.seed, g.seed)
}

func (g *Generator) check(samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %d samples requested", core.ErrEmptySignal, samples)
	}
	if !(g.cfg.SampleRate > 0) {
		return fmt.Errorf("signal: sample rate must be > 0: %v", g.cfg.SampleRate)
	}
	return nil
}

// Normalize scales data to targetPeak and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %v", targetPeak)
	}
	if len(data) == 0 {
		return nil, core.ErrEmptySignal
	}

	out := make([]float64, len(data))
	peak := vecmath.MaxAbs(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}
	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}
