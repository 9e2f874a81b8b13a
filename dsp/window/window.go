// Package window generates tapering windows used to truncate ideal FIR
// impulse responses and to frame signals before spectral analysis.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeKaiser
)

// Default is the window used for FIR design when none is specified.
const Default = TypeHamming

// Metadata holds static spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64 // equivalent noise bandwidth in bins
	HighestSidelobe float64 // dB relative to the main lobe
	CoherentGain    float64
}

var metadataByType = map[Type]Metadata{
	TypeRectangular:         {Name: "Rectangular", ENBW: 1.0, HighestSidelobe: -13.3, CoherentGain: 1.0},
	TypeHann:                {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
	TypeHamming:             {Name: "Hamming", ENBW: 1.36, HighestSidelobe: -42.7, CoherentGain: 0.54},
	TypeBlackman:            {Name: "Blackman", ENBW: 1.73, HighestSidelobe: -58.1, CoherentGain: 0.42},
	TypeBlackmanHarris4Term: {Name: "Blackman-Harris", ENBW: 2.0, HighestSidelobe: -92.0, CoherentGain: 0.36},
	TypeKaiser:              {Name: "Kaiser", ENBW: 1.8, HighestSidelobe: -69.0, CoherentGain: 0.4},
}

var (
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
)

// defaultKaiserBeta matches a ~60 dB stopband design.
const defaultKaiserBeta = 5.653

// String returns the lower-case name accepted by ParseType.
func (t Type) String() string {
	for name, typ := range namesByType {
		if typ == t {
			return name
		}
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	_, ok := metadataByType[t]
	return ok
}

var namesByType = map[string]Type{
	"rectangular":     TypeRectangular,
	"hann":            TypeHann,
	"hamming":         TypeHamming,
	"blackman":        TypeBlackman,
	"blackman-harris": TypeBlackmanHarris4Term,
	"kaiser":          TypeKaiser,
}

// ParseType resolves a window name such as "hamming" or "Blackman-Harris".
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "boxcar", "rect":
		key = "rectangular"
	case "hanning":
		key = "hann"
	}
	if t, ok := namesByType[key]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: defaultKaiserBeta}
}

// WithAlpha sets the Kaiser beta. Negative values are ignored.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic selects the periodic (DFT-even) form instead of the symmetric
// form FIR design requires.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
// Unknown types fall back to the rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}
	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	return metadataByType[t]
}

// Hamming returns symmetric Hamming window coefficients
// w[n] = 0.54 - 0.46*cos(2*pi*n/(size-1)).
func Hamming(size int, opts ...Option) ([]float64, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return Generate(TypeHamming, size, opts...), nil
}

// Kaiser returns Kaiser window coefficients for the given beta.
func Kaiser(size int, beta float64, opts ...Option) ([]float64, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if beta < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBeta, beta)
	}
	return Generate(TypeKaiser, size, append(opts, WithAlpha(beta))...), nil
}

// ApplyCoefficients multiplies samples with coeffs and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, fmt.Errorf("%w: %d samples, %d coefficients", ErrLengthMismatch, len(samples), len(coeffs))
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, fmt.Errorf("%w: no coefficients", ErrZeroGain)
	}

	sum := vecmath.Sum(coeffs)
	if sum == 0 {
		return 0, ErrZeroGain
	}
	return float64(len(coeffs)) * vecmath.DotProduct(coeffs, coeffs) / (sum * sum), nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris4Term:
		return cosineFromCoeffs(x, blackmanHarris4Coeffs)
	case TypeKaiser:
		return kaiserAt(x, cfg.alpha)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}

// samplePosition maps index n to [0,1]; the symmetric form reaches 1 at n = size-1.
func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}
	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))
	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 evaluates the modified Bessel function of the first kind, order 0,
// by its power series. It converges quickly for the beta range used by FIR design.
func besselI0(x float64) float64 {
	half := x / 2
	sum, term := 1.0, 1.0
	for k := 1; k < 300; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}
