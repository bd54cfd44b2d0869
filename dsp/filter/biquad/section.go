package biquad

import "github.com/cwbudde/algo-harmonizer/dsp/core"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	return c.A2 < 1 && c.A2 > -1 && c.A1 < 1+c.A2 && c.A1 > -(1+c.A2)
}

// Section is a single biquad with float32 coefficients and two-tap input and
// output history.
type Section struct {
	b0, b1, b2 float32
	a1, a2     float32

	x1, x2 float32
	y1, y2 float32
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	s := &Section{}
	s.SetCoefficients(c)
	return s
}

// SetCoefficients replaces the coefficients and keeps the delay taps.
func (s *Section) SetCoefficients(c Coefficients) {
	s.b0 = float32(c.B0)
	s.b1 = float32(c.B1)
	s.b2 = float32(c.B2)
	s.a1 = float32(c.A1)
	s.a2 = float32(c.A2)
}

// Coefficients returns the coefficients as stored (rounded to float32).
func (s *Section) Coefficients() Coefficients {
	return Coefficients{
		B0: float64(s.b0),
		B1: float64(s.b1),
		B2: float64(s.b2),
		A1: float64(s.a1),
		A2: float64(s.a2),
	}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float32) float32 {
	y := s.b0*x + s.b1*s.x1 + s.b2*s.x2 - s.a1*s.y1 - s.a2*s.y2

	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = core.FlushDenormals32(y)

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float32) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the delay taps to zero.
func (s *Section) Reset() {
	s.x1, s.x2 = 0, 0
	s.y1, s.y2 = 0, 0
}

// State returns the current delay taps [x1, x2, y1, y2].
func (s *Section) State() [4]float32 {
	return [4]float32{s.x1, s.x2, s.y1, s.y2}
}

// SetState restores previously saved delay taps.
func (s *Section) SetState(state [4]float32) {
	s.x1, s.x2 = state[0], state[1]
	s.y1, s.y2 = state[2], state[3]
}
