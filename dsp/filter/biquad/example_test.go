package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-harmonizer/dsp/filter/biquad"
)

func ExampleLowpass() {
	c := biquad.Lowpass(1000, 48000)

	fmt.Printf("corner=%.2f dB stable=%v\n", c.MagnitudeDB(1000, 48000), c.Stable())

	// Output:
	// corner=-3.01 dB stable=true
}

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		var x float32
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.4f\n", i, s.ProcessSample(x))
	}

	// Output:
	// y[0] = 0.2500
	// y[1] = 0.5500
	// y[2] = 0.3500
	// y[3] = 0.0480
}
