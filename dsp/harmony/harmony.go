// Package harmony builds pitch-ratio sets for harmonic modes and filters
// them against a fixed consonance table.
package harmony

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
)

// MaxRatios is the capacity of a [RatioSet].
const MaxRatios = 8

// Mode selects how a ratio set is constructed.
type Mode int

const (
	ModeUnison Mode = iota
	ModeMajorTriad
	ModeMinorTriad
	ModeFifths
	ModeOctaves
	ModePentatonic
)

var modeNames = [...]string{
	ModeUnison:     "unison",
	ModeMajorTriad: "major",
	ModeMinorTriad: "minor",
	ModeFifths:     "fifths",
	ModeOctaves:    "octaves",
	ModePentatonic: "pentatonic",
}

// String returns the mode name used in presets and flags.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is the inverse of [Mode.String].
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeUnison, fmt.Errorf("harmony: unknown mode %q", s)
}

// Chord tones in semitones above the root.
var (
	majorTriad = [...]float64{0, 4, 7}
	minorTriad = [...]float64{0, 3, 7}
	pentatonic = [...]float64{0, 2, 4, 7, 9}
)

// RatioSet is an ordered set of up to [MaxRatios] frequency ratios held in
// a fixed array.
type RatioSet struct {
	ratios [MaxRatios]float32
	n      int
}

// Len returns the number of ratios.
func (s *RatioSet) Len() int { return s.n }

// At returns ratio i.
func (s *RatioSet) At(i int) float32 { return s.ratios[i] }

// Slice returns the ratios as a slice aliasing the set.
func (s *RatioSet) Slice() []float32 { return s.ratios[:s.n] }

// Append adds r and reports false when the set is full.
func (s *RatioSet) Append(r float32) bool {
	if s.n >= MaxRatios {
		return false
	}
	s.ratios[s.n] = r
	s.n++
	return true
}

// Reset empties the set.
func (s *RatioSet) Reset() { s.n = 0 }

// RatiosFor returns up to count ratios for mode. count is clamped to
// [1, MaxRatios]. Stacked modes produce exactly count ratios; chord modes
// produce at most their number of chord tones, root first. Unknown modes
// behave like unison.
func RatiosFor(mode Mode, count int) RatioSet {
	count = max(1, min(count, MaxRatios))

	var set RatioSet
	switch mode {
	case ModeMajorTriad:
		appendTones(&set, majorTriad[:], count)
	case ModeMinorTriad:
		appendTones(&set, minorTriad[:], count)
	case ModePentatonic:
		appendTones(&set, pentatonic[:], count)
	case ModeFifths:
		for i := 0; i < count; i++ {
			set.Append(float32(core.SemitonesToRatio(7 * float64(i))))
		}
	case ModeOctaves:
		for i := 0; i < count; i++ {
			set.Append(float32(core.SemitonesToRatio(12 * float64(i))))
		}
	default:
		for i := 0; i < count; i++ {
			set.Append(1)
		}
	}

	return set
}

func appendTones(set *RatioSet, semitones []float64, count int) {
	for i := 0; i < len(semitones) && i < count; i++ {
		set.Append(float32(core.SemitonesToRatio(semitones[i])))
	}
}

// IsConsonant reports whether an interval in semitones, reduced to one
// octave, falls within half a semitone of unison, a minor or major third,
// a fourth, a fifth, a major sixth, a major seventh or the octave.
// Window edges are exclusive.
func IsConsonant(semitones float32) bool {
	s := float32(math.Mod(math.Abs(float64(semitones)), 12))

	switch {
	case s < 0.5: // unison
		return true
	case s > 2.5 && s < 3.5: // minor third
		return true
	case s > 3.5 && s < 4.5: // major third
		return true
	case s > 4.5 && s < 5.5: // fourth
		return true
	case s > 6.5 && s < 7.5: // fifth
		return true
	case s > 8.5 && s < 9.5: // major sixth
		return true
	case s > 10.5 && s < 11.5: // major seventh
		return true
	case s > 11.5: // octave
		return true
	default:
		return false
	}
}

// FilterConsonant keeps the ratios whose interval above basePitch is
// consonant, preserving order. If none survive, it returns unison alone;
// the result is never empty.
func FilterConsonant(ratios RatioSet, basePitch float32) RatioSet {
	var out RatioSet
	for _, r := range ratios.Slice() {
		semis := basePitch + float32(core.RatioToSemitones(float64(r)))
		if IsConsonant(semis) {
			out.Append(r)
		}
	}

	if out.Len() == 0 {
		out.Append(1)
	}

	return out
}
