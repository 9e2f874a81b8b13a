package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewSignalCopies(t *testing.T) {
	in := []float64{1, 2, 3}
	s, err := NewSignal(in, 10)
	if err != nil {
		t.Fatalf("NewSignal() error = %v", err)
	}
	in[0] = 99
	if s.Samples[0] != 1 {
		t.Fatalf("NewSignal did not copy samples: %v", s.Samples)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if math.Abs(s.Duration()-0.3) > 1e-12 {
		t.Fatalf("Duration() = %v, want 0.3", s.Duration())
	}
	if s.Nyquist() != 5 {
		t.Fatalf("Nyquist() = %v, want 5", s.Nyquist())
	}
}

func TestNewSignalValidation(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		rate    float64
		empty   bool
	}{
		{name: "empty", samples: nil, rate: 10, empty: true},
		{name: "zero rate", samples: []float64{1}, rate: 0},
		{name: "negative rate", samples: []float64{1}, rate: -1},
		{name: "nan rate", samples: []float64{1}, rate: math.NaN()},
		{name: "inf rate", samples: []float64{1}, rate: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSignal(tt.samples, tt.rate)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrEmptySignal); got != tt.empty {
				t.Fatalf("errors.Is(ErrEmptySignal) = %v, want %v (err=%v)", got, tt.empty, err)
			}
		})
	}
}

func TestTimes(t *testing.T) {
	s := Signal{Samples: make([]float64, 4), SampleRate: 200}
	times := s.Times()
	want := []float64{0, 0.005, 0.01, 0.015}
	for i := range want {
		if math.Abs(times[i]-want[i]) > 1e-15 {
			t.Fatalf("Times()[%d] = %v, want %v", i, times[i], want[i])
		}
	}
	if SampleTimes(0, 200) != nil || SampleTimes(3, 0) != nil {
		t.Fatal("SampleTimes should return nil for invalid arguments")
	}
}

func TestClone(t *testing.T) {
	s := Signal{Samples: []float64{1, 2}, SampleRate: 8}
	c := s.Clone()
	c.Samples[0] = 5
	if s.Samples[0] != 1 {
		t.Fatal("Clone shares backing array")
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}

	cfg = ApplyProcessorOptions(WithSampleRate(0), nil)
	if cfg != DefaultProcessorConfig() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestAmplitudeToDB(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 1, want: 0},
		{in: 10, want: 20},
		{in: 0, want: MinDB},
		{in: -1, want: MinDB},
		{in: math.NaN(), want: MinDB},
		{in: 1e-200, want: MinDB},
	}
	for _, tt := range tests {
		if got := AmplitudeToDB(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AmplitudeToDB(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPowerRatioToDB(t *testing.T) {
	if got := PowerRatioToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("PowerRatioToDB(100) = %v, want 20", got)
	}
	if !math.IsInf(PowerRatioToDB(0), -1) {
		t.Fatal("PowerRatioToDB(0) should be -Inf")
	}
	if !math.IsNaN(PowerRatioToDB(-1)) {
		t.Fatal("PowerRatioToDB(-1) should be NaN")
	}
}
