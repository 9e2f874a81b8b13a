package core

import "math"

const defaultEpsilon = 1e-12

// MinDB is the floor applied by the flooring dB conversions. A numerically
// zero magnitude maps here instead of -Inf.
const MinDB = -300.0

// NearlyEqual reports whether a and b are equal within eps, using a relative
// comparison once the values are larger than one.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// AmplitudeToDB converts a linear amplitude to dB (20*log10 convention),
// flooring the result at MinDB. Zero, negative and NaN inputs return MinDB.
func AmplitudeToDB(linear float64) float64 {
	if !(linear > 0) {
		return MinDB
	}
	db := 20 * math.Log10(linear)
	if db < MinDB {
		return MinDB
	}
	return db
}

// PowerRatioToDB converts a power ratio to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func PowerRatioToDB(ratio float64) float64 {
	if ratio < 0 {
		return math.NaN()
	}
	if ratio == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(ratio)
}
