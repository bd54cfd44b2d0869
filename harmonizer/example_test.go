package harmonizer_test

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cwbudde/algo-harmonizer/harmonizer"
	"github.com/sirupsen/logrus"
)

func ExampleFormatValue() {
	fmt.Println(harmonizer.FormatValue(harmonizer.ParamGain, 1))
	fmt.Println(harmonizer.FormatValue(harmonizer.ParamFrequency, 500))
	fmt.Println(harmonizer.FormatValue(harmonizer.ParamFrequency, 2500))
	fmt.Println(harmonizer.FormatValue(harmonizer.ParamDryWet, 0.5))
	// Output:
	// 1.00x
	// 500 Hz
	// 2.5 kHz
	// 50%
}

func ExampleProcessor_SaveState() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	src, _ := harmonizer.New(harmonizer.WithLogger(logger))
	src.SetParam(harmonizer.ParamFrequency, 4000)

	var state bytes.Buffer
	_ = src.SaveState(&state)

	dst, _ := harmonizer.New(harmonizer.WithLogger(logger))
	if err := dst.LoadState(&state); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(harmonizer.FormatValue(harmonizer.ParamFrequency, dst.ParamValue(harmonizer.ParamFrequency)))
	// Output:
	// 4.0 kHz
}
