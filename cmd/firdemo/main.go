// Command firdemo synthesizes a noisy multi-tone signal, cleans it with a
// zero-phase windowed-sinc bandpass filter and prints a text report.
//
// Usage:
//
//	firdemo [flags]
//
// Examples:
//
//	firdemo
//	firdemo -low 10 -high 20 -taps 201 -window blackman
//	firdemo -noise 0.5 -seed 7 -log-level debug
//	firdemo -runs 8 -workers 4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-bandpass/dsp/filter/fir"
	"github.com/cwbudde/algo-bandpass/dsp/signal"
	"github.com/cwbudde/algo-bandpass/dsp/window"
	"github.com/cwbudde/algo-bandpass/pipeline"
	"github.com/cwbudde/algo-bandpass/report"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// options are the parsed command-line flags.
type options struct {
	cfg      pipeline.Config
	runs     int
	workers  int
	logLevel logrus.Level
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := pipeline.DefaultConfig()

	fs := flag.NewFlagSet("firdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rate := fs.Float64("fs", def.Signal.SampleRate, "sample rate in Hz")
	duration := fs.Float64("duration", def.Signal.Duration, "signal length in seconds")
	low := fs.Float64("low", def.Filter.LowCutoffHz, "lower cutoff in Hz")
	high := fs.Float64("high", def.Filter.HighCutoffHz, "upper cutoff in Hz")
	taps := fs.Int("taps", def.Filter.NumTaps, "number of filter taps (odd)")
	win := fs.String("window", def.Filter.Window.String(), "window: rectangular, hann, hamming, blackman, blackman-harris, kaiser")
	noise := fs.Float64("noise", def.Signal.NoiseStdDev, "Gaussian noise standard deviation")
	seed := fs.Uint64("seed", signal.DefaultSeed, "noise seed")
	points := fs.Int("points", def.ResponsePoints, "frequency response points on [0, fs/2]")
	welch := fs.Int("welch", def.WelchSegment, "Welch segment length, 0 disables the PSD estimate")
	pad := fs.String("pad", def.PadMode.String(), "edge padding: odd, even, constant")
	runs := fs.Int("runs", 1, "number of runs with consecutive seeds")
	workers := fs.Int("workers", 0, "concurrent runs, 0 uses GOMAXPROCS")
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: firdemo [flags]\n\n")
		fmt.Fprintf(stderr, "Filters a synthetic noisy signal with a zero-phase FIR bandpass.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	wt, err := window.ParseType(*win)
	if err != nil {
		return options{}, err
	}
	pm, err := parsePadMode(*pad)
	if err != nil {
		return options{}, err
	}
	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		return options{}, err
	}
	if *runs < 1 {
		return options{}, fmt.Errorf("runs must be positive, got %d", *runs)
	}

	cfg := def
	cfg.Signal.SampleRate = *rate
	cfg.Signal.Duration = *duration
	cfg.Signal.NoiseStdDev = *noise
	cfg.Signal.Seed = seed
	cfg.Filter = fir.Spec{
		LowCutoffHz:  *low,
		HighCutoffHz: *high,
		NumTaps:      *taps,
		Window:       wt,
		SampleRate:   *rate,
	}
	cfg.PadMode = pm
	cfg.ResponsePoints = *points
	cfg.WelchSegment = *welch

	return options{cfg: cfg, runs: *runs, workers: *workers, logLevel: lvl}, nil
}

func parsePadMode(name string) (fir.PadMode, error) {
	for _, m := range []fir.PadMode{fir.PadOdd, fir.PadEven, fir.PadConstant} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown pad mode %q", name)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(opts.logLevel)

	log.WithFields(logrus.Fields{
		"fs":       opts.cfg.Signal.SampleRate,
		"duration": opts.cfg.Signal.Duration,
		"filter":   opts.cfg.Filter.String(),
		"noise":    opts.cfg.Signal.NoiseStdDev,
		"seed":     *opts.cfg.Signal.Seed,
		"runs":     opts.runs,
	}).Info("Starting bandpass demo")

	hook := pipeline.WithStageHook(func(stage string, elapsed time.Duration) {
		log.WithFields(logrus.Fields{
			"stage":   stage,
			"elapsed": elapsed,
		}).Debug("Stage finished")
	})

	start := time.Now()
	results, err := pipeline.RunBatch(ctx, seedSweep(opts.cfg, opts.runs), opts.workers, hook)
	if err != nil {
		log.WithFields(logrus.Fields{
			"error": err,
		}).Error("Pipeline failed")
		return 1
	}

	rep := report.NewText(stdout)
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := rep.Report(ctx, res); err != nil {
			log.WithFields(logrus.Fields{
				"error": err,
			}).Error("Report failed")
			return 1
		}
		log.WithFields(logrus.Fields{
			"seed":           *res.Config.Signal.Seed,
			"snr_before_db":  res.SNR.BeforeDB,
			"snr_after_db":   res.SNR.AfterDB,
			"improvement_db": res.SNR.ImprovementDB,
		}).Info("Run complete")
	}

	log.WithFields(logrus.Fields{
		"elapsed": time.Since(start),
	}).Info("Done")
	return 0
}

// seedSweep returns n copies of cfg with consecutive seeds.
func seedSweep(cfg pipeline.Config, n int) []pipeline.Config {
	base := *cfg.Signal.Seed
	cfgs := make([]pipeline.Config, n)
	for i := range cfgs {
		seed := base + uint64(i)
		cfgs[i] = cfg
		cfgs[i].Signal.Seed = &seed
	}
	return cfgs
}
