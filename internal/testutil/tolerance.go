package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSymmetric fails t unless data[i] and data[len-1-i] agree within eps.
func RequireSymmetric(t *testing.T, data []float64, eps float64) {
	t.Helper()
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		if math.Abs(data[i]-data[j]) > eps {
			t.Fatalf("asymmetric at %d/%d: %v vs %v", i, j, data[i], data[j])
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}

// PeakToPeak returns max(data) - min(data), or 0 for empty input.
func PeakToPeak(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data) - floats.Min(data)
}

// Interior drops margin samples from both ends, where edge transients live.
func Interior(data []float64, margin int) []float64 {
	if 2*margin >= len(data) {
		return nil
	}
	return data[margin : len(data)-margin]
}

// RisingZeroCrossings returns the fractional sample positions where data
// crosses zero upwards, found by linear interpolation.
func RisingZeroCrossings(data []float64) []float64 {
	var out []float64
	for i := 1; i < len(data); i++ {
		a, b := data[i-1], data[i]
		if a < 0 && b >= 0 {
			out = append(out, float64(i-1)+a/(a-b))
		}
	}
	return out
}
