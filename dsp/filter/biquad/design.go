package biquad

import "math"

const (
	// ButterworthQ is the fixed quality factor of the lowpass (1/sqrt(2)).
	ButterworthQ = 1 / math.Sqrt2

	// MaxOmega caps the normalized angular cutoff just below Nyquist.
	MaxOmega = 0.99 * math.Pi

	minCutoffHz = 1e-3
)

// Lowpass designs a Butterworth-Q lowpass at cutoffHz.
func Lowpass(cutoffHz, sampleRate float64) Coefficients {
	return LowpassQ(cutoffHz, ButterworthQ, sampleRate)
}

// LowpassQ designs an RBJ bilinear-transform lowpass at cutoffHz with quality
// factor q. The angular frequency is clamped to MaxOmega so the design stays
// stable for any cutoff. A non-positive sample rate yields a passthrough.
func LowpassQ(cutoffHz, q, sampleRate float64) Coefficients {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Coefficients{B0: 1}
	}

	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = ButterworthQ
	}

	if cutoffHz < minCutoffHz || math.IsNaN(cutoffHz) {
		cutoffHz = minCutoffHz
	}

	omega := 2 * math.Pi * cutoffHz / sampleRate
	if omega > MaxOmega {
		omega = MaxOmega
	}

	cw := math.Cos(omega)
	sw := math.Sin(omega)
	alpha := sw / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
