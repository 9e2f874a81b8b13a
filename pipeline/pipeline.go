// Package pipeline wires synthesis, filter design, zero-phase filtering and
// spectral analysis into one deterministic run.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"github.com/cwbudde/algo-bandpass/dsp/filter/fir"
	"github.com/cwbudde/algo-bandpass/dsp/signal"
	"github.com/cwbudde/algo-bandpass/dsp/spectrum"
	"github.com/cwbudde/algo-bandpass/measure/snr"
	"github.com/cwbudde/algo-bandpass/stats/frequency"
	timestats "github.com/cwbudde/algo-bandpass/stats/time"
)

// ErrRateMismatch is returned when the filter and signal sample rates differ.
var ErrRateMismatch = errors.New("pipeline: filter and signal sample rates differ")

const (
	// DefaultResponsePoints gives a 2048-point response FFT.
	DefaultResponsePoints = 1025

	// DefaultWelchSegment is the Welch segment length in samples.
	DefaultWelchSegment = 256
)

// Stage names reported to stage hooks.
const (
	StageSynthesize = "synthesize"
	StageDesign     = "design"
	StageFilter     = "filter"
	StageSpectrum   = "spectrum"
	StageResponse   = "response"
	StageWelch      = "welch"
	StageMetrics    = "metrics"
)

// Config is the complete input of a run.
type Config struct {
	Signal signal.Config
	Filter fir.Spec

	// PadMode selects the FiltFilt edge extension.
	PadMode fir.PadMode

	// ResponsePoints is the number of frequency response points on
	// [0, Nyquist]. Zero selects DefaultResponsePoints.
	ResponsePoints int

	// WelchSegment enables Welch PSD estimates of the noisy and filtered
	// signals. Zero disables them.
	WelchSegment int
}

// DefaultConfig returns the 200 Hz demonstration run with its 3-30 Hz filter.
func DefaultConfig() Config {
	sig := signal.DefaultConfig()
	return Config{
		Signal:         sig,
		Filter:         fir.DefaultSpec(sig.SampleRate),
		PadMode:        fir.PadOdd,
		ResponsePoints: DefaultResponsePoints,
		WelchSegment:   DefaultWelchSegment,
	}
}

// Result carries every array a renderer needs.
type Result struct {
	Config Config

	Time         []float64
	Clean        core.Signal
	Noisy        core.Signal
	Filtered     core.Signal
	Coefficients fir.Coefficients

	NoisySpectrum    spectrum.Spectrum
	FilteredSpectrum spectrum.Spectrum
	Response         spectrum.Response

	// NoisyPSD and FilteredPSD are empty when Welch estimates are disabled.
	NoisyPSD    spectrum.Spectrum
	FilteredPSD spectrum.Spectrum

	SNR snr.Metrics

	NoisyLevels    timestats.Stats
	FilteredLevels timestats.Stats
	NoisyShape     frequency.Stats
	FilteredShape  frequency.Stats

	// PassbandEnergy is the share of spectrum energy between the cutoffs.
	PassbandEnergy Passband
}

// Passband holds energy fractions inside the filter passband.
type Passband struct {
	Noisy    float64
	Filtered float64
}

// StageHook observes the duration of each completed stage.
type StageHook func(stage string, elapsed time.Duration)

type options struct {
	hook StageHook
}

// Option configures Run and RunBatch.
type Option func(*options)

// WithStageHook registers a hook called after every stage. Under RunBatch
// the hook is called from several goroutines.
func WithStageHook(hook StageHook) Option {
	return func(o *options) {
		o.hook = hook
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) stage(name string, start time.Time) {
	if o.hook != nil {
		o.hook(name, time.Since(start))
	}
}

// Run executes one pipeline instance. Its numeric output depends only on cfg.
func Run(cfg Config, opts ...Option) (Result, error) {
	o := applyOptions(opts)

	if cfg.Filter.SampleRate == 0 {
		cfg.Filter.SampleRate = cfg.Signal.SampleRate
	}
	if cfg.Filter.SampleRate != cfg.Signal.SampleRate {
		return Result{}, fmt.Errorf("%w: filter %v Hz, signal %v Hz",
			ErrRateMismatch, cfg.Filter.SampleRate, cfg.Signal.SampleRate)
	}
	if cfg.ResponsePoints == 0 {
		cfg.ResponsePoints = DefaultResponsePoints
	}

	res := Result{Config: cfg}

	start := time.Now()
	syn, err := signal.Synthesize(cfg.Signal)
	if err != nil {
		return Result{}, fmt.Errorf("synthesize: %w", err)
	}
	res.Time, res.Clean, res.Noisy = syn.Time, syn.Clean, syn.Noisy
	o.stage(StageSynthesize, start)

	start = time.Now()
	res.Coefficients, err = fir.Design(cfg.Filter)
	if err != nil {
		return Result{}, fmt.Errorf("design: %w", err)
	}
	o.stage(StageDesign, start)

	start = time.Now()
	res.Filtered, err = fir.FiltFilt(res.Coefficients, res.Noisy, fir.WithPadMode(cfg.PadMode))
	if err != nil {
		return Result{}, fmt.Errorf("filter: %w", err)
	}
	o.stage(StageFilter, start)

	start = time.Now()
	if res.NoisySpectrum, err = spectrum.MagnitudeSpectrum(res.Noisy); err != nil {
		return Result{}, fmt.Errorf("noisy spectrum: %w", err)
	}
	if res.FilteredSpectrum, err = spectrum.MagnitudeSpectrum(res.Filtered); err != nil {
		return Result{}, fmt.Errorf("filtered spectrum: %w", err)
	}
	o.stage(StageSpectrum, start)

	start = time.Now()
	res.Response, err = spectrum.FrequencyResponse(res.Coefficients, cfg.Filter.SampleRate, cfg.ResponsePoints)
	if err != nil {
		return Result{}, fmt.Errorf("frequency response: %w", err)
	}
	o.stage(StageResponse, start)

	if cfg.WelchSegment > 0 {
		start = time.Now()
		if res.NoisyPSD, err = spectrum.Welch(res.Noisy, cfg.WelchSegment); err != nil {
			return Result{}, fmt.Errorf("noisy psd: %w", err)
		}
		if res.FilteredPSD, err = spectrum.Welch(res.Filtered, cfg.WelchSegment); err != nil {
			return Result{}, fmt.Errorf("filtered psd: %w", err)
		}
		o.stage(StageWelch, start)
	}

	start = time.Now()
	res.SNR, err = snr.Compare(res.Clean.Samples, res.Noisy.Samples, res.Filtered.Samples)
	if err != nil {
		return Result{}, fmt.Errorf("metrics: %w", err)
	}
	res.NoisyLevels = timestats.Calculate(res.Noisy.Samples)
	res.FilteredLevels = timestats.Calculate(res.Filtered.Samples)
	res.NoisyShape = frequency.Calculate(res.NoisySpectrum)
	res.FilteredShape = frequency.Calculate(res.FilteredSpectrum)
	lo, hi := cfg.Filter.LowCutoffHz, cfg.Filter.HighCutoffHz
	if res.PassbandEnergy.Noisy, err = frequency.BandEnergyFraction(res.NoisySpectrum, lo, hi); err != nil {
		return Result{}, fmt.Errorf("metrics: %w", err)
	}
	if res.PassbandEnergy.Filtered, err = frequency.BandEnergyFraction(res.FilteredSpectrum, lo, hi); err != nil {
		return Result{}, fmt.Errorf("metrics: %w", err)
	}
	o.stage(StageMetrics, start)

	return res, nil
}
