package window

import "math"

// HannAt evaluates the Hann envelope at phase in [0, 1]. It is 0 at both
// ends, 1 at the centre and 0 outside the range.
func HannAt(phase float32) float32 {
	if phase < 0 || phase > 1 {
		return 0
	}

	return float32(0.5 * (1 - math.Cos(2*math.Pi*float64(phase))))
}
