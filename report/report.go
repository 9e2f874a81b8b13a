// Package report renders pipeline results for humans.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-bandpass/dsp/core"
	"github.com/cwbudde/algo-bandpass/dsp/signal"
	"github.com/cwbudde/algo-bandpass/pipeline"
)

// ErrNoWriter is returned when a Text reporter has no destination.
var ErrNoWriter = errors.New("report: nil writer")

// DefaultPeakHalfWidthHz is the search half-width around each tone.
const DefaultPeakHalfWidthHz = 0.5

// Reporter consumes a finished run.
type Reporter interface {
	Report(ctx context.Context, res pipeline.Result) error
}

// Text writes an aligned plain-text summary.
type Text struct {
	W io.Writer

	// PeakHalfWidthHz bounds the peak search around each tone. Zero selects
	// DefaultPeakHalfWidthHz.
	PeakHalfWidthHz float64
}

var _ Reporter = (*Text)(nil)

// NewText returns a Text reporter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{W: w, PeakHalfWidthHz: DefaultPeakHalfWidthHz}
}

// Report writes the signal parameters, the filter, the spectral peaks at
// every tone, signal levels and the SNR figures.
func (r *Text) Report(ctx context.Context, res pipeline.Result) error {
	if r.W == nil {
		return ErrNoWriter
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	half := r.PeakHalfWidthHz
	if half <= 0 {
		half = DefaultPeakHalfWidthHz
	}

	tw := tabwriter.NewWriter(r.W, 0, 0, 2, ' ', 0)
	p := &printer{w: tw}

	sig := res.Config.Signal
	p.printf("Signal\n")
	p.printf("  sample rate\t%g Hz\n", sig.SampleRate)
	p.printf("  duration\t%g s\n", sig.Duration)
	p.printf("  samples\t%d\n", res.Noisy.Len())
	p.printf("  noise sigma\t%g\n", sig.NoiseStdDev)
	p.printf("  seed\t%d\n", seed(sig))

	p.printf("\nFilter\n")
	p.printf("  design\t%s\n", res.Config.Filter)
	p.printf("  group delay\t%g samples\n", res.Coefficients.GroupDelay())
	p.printf("  pad mode\t%s\n", res.Config.PadMode)

	p.printf("\nComponent\tFreq [Hz]\tNoisy\tFiltered\tChange [dB]\n")
	p.printf("---------\t---------\t-----\t--------\t-----------\n")
	for _, tone := range sig.Tones {
		r.peakRow(p, res, "tone", tone, half)
	}
	for _, tone := range sig.Interference {
		r.peakRow(p, res, "interference", tone, half)
	}

	p.printf("\nSignal\tRMS\tPeak\tCrest [dB]\tCentroid [Hz]\tPassband energy\n")
	p.printf("------\t---\t----\t----------\t-------------\t---------------\n")
	p.printf("noisy\t%.4f\t%.4f\t%.2f\t%.2f\t%.1f%%\n",
		res.NoisyLevels.RMS, res.NoisyLevels.Peak, res.NoisyLevels.CrestFactorDB,
		res.NoisyShape.Centroid, 100*res.PassbandEnergy.Noisy)
	p.printf("filtered\t%.4f\t%.4f\t%.2f\t%.2f\t%.1f%%\n",
		res.FilteredLevels.RMS, res.FilteredLevels.Peak, res.FilteredLevels.CrestFactorDB,
		res.FilteredShape.Centroid, 100*res.PassbandEnergy.Filtered)

	p.printf("\nSNR\n")
	p.printf("  before\t%.2f dB\n", res.SNR.BeforeDB)
	p.printf("  after\t%.2f dB\n", res.SNR.AfterDB)
	p.printf("  improvement\t%.2f dB\n", res.SNR.ImprovementDB)

	if p.err != nil {
		return fmt.Errorf("report: write: %w", p.err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

func (r *Text) peakRow(p *printer, res pipeline.Result, kind string, tone signal.Tone, half float64) {
	_, before, okBefore := res.NoisySpectrum.PeakNear(tone.FrequencyHz, half)
	_, after, okAfter := res.FilteredSpectrum.PeakNear(tone.FrequencyHz, half)
	if !okBefore || !okAfter {
		p.printf("%s\t%g\t-\t-\t-\n", kind, tone.FrequencyHz)
		return
	}
	change := core.AmplitudeToDB(after) - core.AmplitudeToDB(before)
	p.printf("%s\t%g\t%.4f\t%.4f\t%+.2f\n", kind, tone.FrequencyHz, before, after, change)
}

func seed(c signal.Config) uint64 {
	if c.Seed == nil {
		return signal.DefaultSeed
	}
	return *c.Seed
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
