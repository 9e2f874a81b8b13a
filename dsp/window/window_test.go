package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris4Term,
		TypeKaiser,
	}

	for _, typ := range types {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if !almostEqual(v, w[len(w)-1-i], 1e-12) {
					t.Fatalf("symmetric window not symmetric at %d: %v vs %v", i, v, w[len(w)-1-i])
				}
			}

			if !almostEqual(w[32], 1, 1e-12) {
				t.Fatalf("centre coefficient = %v, want 1", w[32])
			}
		})
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestSingleSampleWindow(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeKaiser} {
		w := Generate(typ, 1)
		if len(w) != 1 || !almostEqual(w[0], 1, 1e-12) {
			t.Fatalf("type=%v single-sample window = %v, want [1]", typ, w)
		}
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)
	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}

	Apply(TypeHann, nil)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"hamming", TypeHamming},
		{" Hamming ", TypeHamming},
		{"hanning", TypeHann},
		{"boxcar", TypeRectangular},
		{"Blackman-Harris", TypeBlackmanHarris4Term},
		{"kaiser", TypeKaiser},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Fatalf("ParseType(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, err := ParseType(got.String()); err != nil || back != got {
			t.Fatalf("String() round trip failed for %v: %v %v", got, back, err)
		}
	}

	_, err := ParseType("parzen")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if Type(99).Valid() {
		t.Fatal("Type(99) should be invalid")
	}
	if !TypeHamming.Valid() {
		t.Fatal("TypeHamming should be valid")
	}
}

func TestENBW(t *testing.T) {
	if m := Info(TypeHann); m.Name != "Hann" || !almostEqual(m.ENBW, 1.5, 0.01) {
		t.Fatalf("hann metadata = %#v", m)
	}

	enbw, err := EquivalentNoiseBandwidth(Generate(TypeHann, 2048))
	if err != nil {
		t.Fatalf("EquivalentNoiseBandwidth error: %v", err)
	}
	if !almostEqual(enbw, 1.5, 0.01) {
		t.Fatalf("hann ENBW=%v, want ~1.5", enbw)
	}

	enbw, err = EquivalentNoiseBandwidth(Generate(TypeHamming, 5))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(enbw, 1.5904017857142856, 1e-12) {
		t.Fatalf("hamming(5) ENBW=%v", enbw)
	}
}

func TestApplyCoefficients(t *testing.T) {
	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(out[2], 1.5, 1e-12) {
		t.Fatalf("out[2]=%v", out[2])
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	bh4Expected := []float64{
		0.00006, 0.03339172347815117, 0.332833504298565,
		0.8893697722232837, 0.8893697722232838, 0.3328335042985652,
		0.0333917234781512, 0.00006,
	}
	kaiserExpected := []float64{
		0.002338830512733327, 0.10919581096049485, 0.48711868430391303, 0.9261577377427728,
		0.9261577377427728, 0.48711868430391303, 0.10919581096049485, 0.002338830512733327,
	}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	checkGolden(t, Generate(TypeBlackmanHarris4Term, 8), bh4Expected, 1e-10)
	checkGolden(t, Generate(TypeKaiser, 8, WithAlpha(8)), kaiserExpected, 1e-12)

	w, err := Hamming(8)
	if err != nil {
		t.Fatal(err)
	}
	checkGolden(t, w, hammingExpected, 1e-10)

	k, err := Kaiser(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	checkGolden(t, k, kaiserExpected, 1e-12)
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}
	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"hamming zero size", func() error { _, err := Hamming(0); return err }, ErrInvalidLength},
		{"kaiser zero size", func() error { _, err := Kaiser(0, 8); return err }, ErrInvalidLength},
		{"kaiser negative beta", func() error { _, err := Kaiser(16, -1); return err }, ErrInvalidBeta},
		{"enbw empty", func() error { _, err := EquivalentNoiseBandwidth(nil); return err }, ErrZeroGain},
		{"enbw zero sum", func() error { _, err := EquivalentNoiseBandwidth([]float64{0, 0, 0}); return err }, ErrZeroGain},
		{"apply mismatch", func() error { _, err := ApplyCoefficients([]float64{1, 2}, []float64{1}); return err }, ErrLengthMismatch},
	}
	for _, tt := range tests {
		if err := tt.call(); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
