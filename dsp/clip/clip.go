// Package clip holds the output safety stage: dry/wet mixing and a soft
// tanh saturator that bounds overshoot.
package clip

import "github.com/cwbudde/algo-approx"

const (
	// Threshold is the magnitude above which SoftClip saturates.
	Threshold = 0.95

	// Drive scales the signal into tanh; the output magnitude stays below
	// 1/Drive.
	Drive = 0.7

	// maxTanhArg bounds the exponent; tanh(9) rounds to 1 in float32.
	maxTanhArg = 9
)

// SoftClip passes x unchanged while |x| <= Threshold and otherwise returns
// tanh(Drive*x)/Drive.
func SoftClip(x float32) float32 {
	if x <= Threshold && x >= -Threshold {
		return x
	}

	return tanh(x*Drive) / Drive
}

// SoftClipBlock applies SoftClip to buf in place.
func SoftClipBlock(buf []float32) {
	for i, x := range buf {
		buf[i] = SoftClip(x)
	}
}

// Mix blends dry and wet: mix 0 is fully dry, 1 fully wet.
func Mix(dry, wet, mix float32) float32 {
	return dry*(1-mix) + wet*mix
}

// tanh evaluates 1 - 2/(e^(2x)+1) with the fast exponential.
func tanh(x float32) float32 {
	if x > maxTanhArg {
		x = maxTanhArg
	} else if x < -maxTanhArg {
		x = -maxTanhArg
	}

	return 1 - 2/(approx.FastExp(2*x)+1)
}
