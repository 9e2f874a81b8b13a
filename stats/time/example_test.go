package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-bandpass/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("RMS=%.3f crest=%.2f dB zero crossings=%d\n", s.RMS, s.CrestFactorDB, s.ZeroCrossings)
	// Output:
	// RMS=1.000 crest=0.00 dB zero crossings=3
}
