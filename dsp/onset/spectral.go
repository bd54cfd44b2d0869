package onset

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-harmonizer/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const minSpectralFrameSize = 64

// SpectralAnalyzer measures magnitude flux between consecutive frames:
// the sum of positive per-bin magnitude increases of a Hann-windowed FFT,
// normalized by the frame size.
//
// All buffers are allocated at construction; Flux does not allocate.
type SpectralAnalyzer struct {
	frameSize int

	plan *algofft.Plan[complex128]

	windowCoeffs []float64
	scratch      []float64
	spectrum     []complex128

	re, im    []float64
	magnitude []float64
	previous  []float64
	primed    bool
}

// NewSpectralAnalyzer creates an analyzer for frames of frameSize samples.
// frameSize must be a power of two and at least 64.
func NewSpectralAnalyzer(frameSize int) (*SpectralAnalyzer, error) {
	if frameSize < minSpectralFrameSize || !isPowerOf2(frameSize) {
		return nil, fmt.Errorf("onset spectral frame size must be power-of-two and >= %d: %d",
			minSpectralFrameSize, frameSize)
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return nil, fmt.Errorf("onset: failed to create FFT plan: %w", err)
	}

	bins := frameSize/2 + 1

	return &SpectralAnalyzer{
		frameSize:    frameSize,
		plan:         plan,
		windowCoeffs: window.Hann(frameSize, window.WithPeriodic()),
		scratch:      make([]float64, frameSize),
		spectrum:     make([]complex128, frameSize),
		re:           make([]float64, bins),
		im:           make([]float64, bins),
		magnitude:    make([]float64, bins),
		previous:     make([]float64, bins),
	}, nil
}

// FrameSize returns the analysis frame length.
func (s *SpectralAnalyzer) FrameSize() int { return s.frameSize }

// Flux analyzes frame and returns its magnitude flux against the previous
// call. The first frame after construction or Reset returns 0. Frames
// shorter than FrameSize are zero padded.
func (s *SpectralAnalyzer) Flux(frame []float32) (float32, error) {
	for i := range s.scratch {
		if i < len(frame) {
			s.scratch[i] = float64(frame[i])
		} else {
			s.scratch[i] = 0
		}
	}

	if err := window.ApplyCoefficientsInPlace(s.scratch, s.windowCoeffs); err != nil {
		return 0, err
	}

	for i, x := range s.scratch {
		s.spectrum[i] = complex(x, 0)
	}

	if err := s.plan.Forward(s.spectrum, s.spectrum); err != nil {
		return 0, fmt.Errorf("onset: forward FFT failed: %w", err)
	}

	for k := range s.re {
		s.re[k] = real(s.spectrum[k])
		s.im[k] = imag(s.spectrum[k])
	}

	vecmath.Magnitude(s.magnitude, s.re, s.im)

	flux := 0.0
	if s.primed {
		for k, m := range s.magnitude {
			if d := m - s.previous[k]; d > 0 {
				flux += d
			}
		}
	}

	copy(s.previous, s.magnitude)
	s.primed = true

	return float32(flux / float64(s.frameSize)), nil
}

// Reset forgets the previous frame.
func (s *SpectralAnalyzer) Reset() {
	for i := range s.previous {
		s.previous[i] = 0
	}
	s.primed = false
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
