package core

import "math"

// ratioFloor keeps RatioToSemitones finite for zero or negative ratios.
const ratioFloor = 1e-10

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp32 is the float32 variant of [Clamp] for the sample path.
func Clamp32(value, min, max float32) float32 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals32 converts tiny denormal-like values to exact zero. Go has
// no portable flush-to-zero switch, so recursive state is flushed
// explicitly.
func FlushDenormals32(x float32) float32 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SemitonesToRatio converts an equal-tempered interval to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Exp2(semitones / 12)
}

// RatioToSemitones converts a frequency ratio to an equal-tempered interval.
// Ratios at or below 1e-10 are floored so the result stays finite.
func RatioToSemitones(ratio float64) float64 {
	return 12 * math.Log2(math.Max(ratio, ratioFloor))
}

// MsToSamples converts a duration in milliseconds to a whole sample count,
// truncating toward zero.
func MsToSamples(ms, sampleRate float64) int {
	return int(ms * sampleRate / 1000)
}

// SamplesToMs converts a sample count to milliseconds.
func SamplesToMs(samples int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(samples) * 1000 / sampleRate
}

// IsFinitePositive reports whether x is a finite value greater than zero.
func IsFinitePositive(x float64) bool {
	return x > 0 && !math.IsNaN(x) && !math.IsInf(x, 0)
}
