// Package testutil holds float32 signal generators and assertions shared by
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave. The phase is
// computed in float64 and rounded per sample.
func DeterministicSine(freqHz, sampleRate float64, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * float32(math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float32, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float32()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Burst is silence with a constant-amplitude sine burst of burstLen samples
// starting at start.
func Burst(freqHz, sampleRate float64, amplitude float32, length, start, burstLen int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := start; i < start+burstLen && i < length; i++ {
		if i < 0 {
			continue
		}
		out[i] = amplitude * float32(math.Sin(step*float64(i-start)))
	}
	return out
}
