package biquad

// Stereo is a pair of sections driven by one cutoff. Both sections always
// carry identical coefficients; only their delay taps differ.
type Stereo struct {
	left  Section
	right Section

	coeffs     Coefficients
	cutoffHz   float64
	sampleRate float64
}

// NewStereo returns a pair designed at cutoffHz with zero state.
func NewStereo(cutoffHz, sampleRate float64) *Stereo {
	s := &Stereo{}
	s.Recompute(cutoffHz, sampleRate)
	return s
}

// Recompute designs the lowpass for cutoffHz and mirrors it to both
// channels. Delay taps are kept.
func (s *Stereo) Recompute(cutoffHz, sampleRate float64) {
	s.coeffs = Lowpass(cutoffHz, sampleRate)
	s.cutoffHz = cutoffHz
	s.sampleRate = sampleRate

	s.left.SetCoefficients(s.coeffs)
	s.right.SetCoefficients(s.coeffs)
}

// Coefficients returns the double-precision design shared by both channels.
func (s *Stereo) Coefficients() Coefficients { return s.coeffs }

// CutoffHz returns the cutoff of the last Recompute.
func (s *Stereo) CutoffHz() float64 { return s.cutoffHz }

// Channel returns the section for channel ch: channel 0 is left, every other
// index maps to right.
func (s *Stereo) Channel(ch int) *Section {
	if ch == 0 {
		return &s.left
	}
	return &s.right
}

// Reset zeroes the delay taps of both channels.
func (s *Stereo) Reset() {
	s.left.Reset()
	s.right.Reset()
}
