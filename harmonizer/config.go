package harmonizer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonizer/dsp/grain"
	"github.com/cwbudde/algo-harmonizer/dsp/harmony"
	"github.com/cwbudde/algo-harmonizer/dsp/onset"
)

// MaxChannels is the number of filter instances; blocks with more channels
// are rejected.
const MaxChannels = 2

// Config holds the settings of the granular harmony path. The path is idle
// unless HarmonyMix is greater than zero.
type Config struct {
	// HarmonyMix is the summed level of the grain voices in [0, 1].
	HarmonyMix float64
	// Mode selects the interval set started on each trigger.
	Mode harmony.Mode
	// Voices is the number of ratios requested from the mode, in [1, 8].
	Voices int
	// PoolSize is the number of grain voices.
	PoolSize int
	// BasePitch is the reference pitch in semitones for consonance filtering.
	BasePitch float64
	// GrainMs is the grain length in milliseconds.
	GrainMs float64
	// MinIntervalMs is the minimum spacing between triggers.
	MinIntervalMs float64
	// RingSeconds is the history kept for grain reads.
	RingSeconds float64
	// Onset configures transient detection on the input mid signal.
	Onset onset.Config
}

// DefaultConfig returns a latent granular path: major-triad harmonies of
// 80 ms grains from a 2 s history, with HarmonyMix 0.
func DefaultConfig() Config {
	return Config{
		HarmonyMix:    0,
		Mode:          harmony.ModeMajorTriad,
		Voices:        3,
		PoolSize:      16,
		BasePitch:     0,
		GrainMs:       80,
		MinIntervalMs: 50,
		RingSeconds:   2,
		Onset:         onset.DefaultConfig(),
	}
}

// Enabled reports whether the granular path contributes to the output.
func (c Config) Enabled() bool {
	return c.HarmonyMix > 0
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !(c.HarmonyMix >= 0 && c.HarmonyMix <= 1) {
		return fmt.Errorf("harmonizer harmony mix must be in [0, 1]: %v", c.HarmonyMix)
	}
	if c.Mode < harmony.ModeUnison || c.Mode > harmony.ModePentatonic {
		return fmt.Errorf("harmonizer mode is unknown: %v", c.Mode)
	}
	if c.Voices < 1 || c.Voices > harmony.MaxRatios {
		return fmt.Errorf("harmonizer voices must be in [1, %d]: %d", harmony.MaxRatios, c.Voices)
	}
	if c.PoolSize < 1 || c.PoolSize > grain.MaxVoices {
		return fmt.Errorf("harmonizer pool size must be in [1, %d]: %d", grain.MaxVoices, c.PoolSize)
	}
	if math.IsNaN(c.BasePitch) || math.IsInf(c.BasePitch, 0) {
		return fmt.Errorf("harmonizer base pitch must be finite: %v", c.BasePitch)
	}
	if !(c.GrainMs >= 5 && c.GrainMs <= 500) {
		return fmt.Errorf("harmonizer grain ms must be in [5, 500]: %v", c.GrainMs)
	}
	if !(c.MinIntervalMs >= 0) || math.IsInf(c.MinIntervalMs, 0) {
		return fmt.Errorf("harmonizer min interval ms must be >= 0: %v", c.MinIntervalMs)
	}
	if !(c.RingSeconds > 0 && c.RingSeconds <= 10) {
		return fmt.Errorf("harmonizer ring seconds must be in (0, 10]: %v", c.RingSeconds)
	}
	if c.RingSeconds*1000 <= c.GrainMs {
		return fmt.Errorf("harmonizer ring (%v s) must be longer than a grain (%v ms)", c.RingSeconds, c.GrainMs)
	}
	return c.Onset.Validate()
}
