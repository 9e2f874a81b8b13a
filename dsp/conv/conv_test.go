package conv

import (
	"errors"
	"math"
	"testing"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
		{
			name:     "vector path",
			a:        []float64{1, -1},
			b:        []float64{1, 2, 3, 4, 5},
			expected: []float64{1, 1, 1, 1, 1, -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, expected %d", len(result), len(tt.expected))
			}

			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > 1e-10 {
					t.Errorf("result[%d] = %v, expected %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct([]float64{}, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, []float64{})
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}

	_, err = Convolve(nil, []float64{1})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Convolve: expected ErrEmptyInput, got %v", err)
	}

	_, err = NewOverlapAdd(nil, 0)
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("NewOverlapAdd: expected ErrEmptyKernel, got %v", err)
	}
}

func TestOverlapAddMatchesDirect(t *testing.T) {
	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * float64(i) / 100)
	}

	kernel := make([]float64, 101)
	for i := range kernel {
		kernel[i] = math.Exp(-math.Abs(float64(i-50)) / 10)
	}

	want, err := Direct(signal, kernel)
	if err != nil {
		t.Fatalf("direct convolution failed: %v", err)
	}

	got, err := OverlapAddConvolve(signal, kernel)
	if err != nil {
		t.Fatalf("overlap-add convolution failed: %v", err)
	}

	if len(want) != len(got) {
		t.Fatalf("length mismatch: direct=%d, oa=%d", len(want), len(got))
	}

	for i := range want {
		if math.Abs(want[i]-got[i]) > 1e-9 {
			t.Fatalf("mismatch at index %d: direct=%v, oa=%v", i, want[i], got[i])
		}
	}
}

func TestConvolveAutoSelection(t *testing.T) {
	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = float64(i % 10)
	}

	for _, n := range []int{3, DirectThreshold, DirectThreshold + 1, 101} {
		kernel := make([]float64, n)
		for i := range kernel {
			kernel[i] = math.Exp(-float64(i) / 20)
		}

		got, err := Convolve(signal, kernel)
		if err != nil {
			t.Fatalf("n=%d: convolution failed: %v", n, err)
		}
		want, _ := Direct(signal, kernel)

		maxDiff := 0.0
		for i := range got {
			maxDiff = math.Max(maxDiff, math.Abs(got[i]-want[i]))
		}
		if maxDiff > 1e-8 {
			t.Errorf("n=%d: max difference %v exceeds tolerance", n, maxDiff)
		}
	}
}

func TestConvolveMode(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 2, 3}

	full, _ := ConvolveMode(a, b, ModeFull)
	if len(full) != len(a)+len(b)-1 {
		t.Errorf("full mode length: got %d, expected %d", len(full), len(a)+len(b)-1)
	}

	same, _ := ConvolveMode(a, b, ModeSame)
	if len(same) != len(a) {
		t.Errorf("same mode length: got %d, expected %d", len(same), len(a))
	}
	if math.Abs(same[0]-4) > 1e-12 {
		t.Errorf("same[0] = %v, want 4", same[0])
	}

	valid, _ := ConvolveMode(a, b, ModeValid)
	if len(valid) != len(a)-len(b)+1 {
		t.Errorf("valid mode length: got %d, expected %d", len(valid), len(a)-len(b)+1)
	}
	if math.Abs(valid[0]-10) > 1e-12 {
		t.Errorf("valid[0] = %v, want 10", valid[0])
	}
}

func TestOverlapAddProcessTo(t *testing.T) {
	kernel := []float64{0.5, 0.25, 0.125, 0.0625}
	oa, err := NewOverlapAdd(kernel, 8)
	if err != nil {
		t.Fatal(err)
	}
	if oa.BlockSize() != 8 || oa.FFTSize() != 16 || oa.KernelLen() != 4 {
		t.Fatalf("unexpected geometry: block=%d fft=%d kernel=%d", oa.BlockSize(), oa.FFTSize(), oa.KernelLen())
	}

	input := make([]float64, 37)
	for i := range input {
		input[i] = float64(i%5) - 2
	}

	out := make([]float64, len(input)+len(kernel)-1)
	for i := range out {
		out[i] = 99
	}
	if err := oa.ProcessTo(out, input); err != nil {
		t.Fatal(err)
	}

	want, _ := Direct(input, kernel)
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-10 {
			t.Fatalf("index %d: got %v, want %v", i, out[i], want[i])
		}
	}

	if err := oa.ProcessTo(make([]float64, 3), input); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestConvolveCommutative(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5}

	ab, _ := Convolve(a, b)
	ba, _ := Convolve(b, a)

	if len(ab) != len(ba) {
		t.Fatalf("lengths differ: %d vs %d", len(ab), len(ba))
	}

	for i := range ab {
		if math.Abs(ab[i]-ba[i]) > 1e-10 {
			t.Errorf("convolution not commutative at %d: %v vs %v", i, ab[i], ba[i])
		}
	}
}

func TestConvolveDoesNotModifyInputs(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{1, -1, 1, -1, 1}
	aCopy := append([]float64(nil), a...)
	bCopy := append([]float64(nil), b...)

	if _, err := Convolve(a, b); err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != aCopy[i] {
			t.Fatal("input a modified")
		}
	}
	for i := range b {
		if b[i] != bCopy[i] {
			t.Fatal("input b modified")
		}
	}
}
