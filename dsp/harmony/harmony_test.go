package harmony

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
)

func semis(r float32) float64 {
	return core.RatioToSemitones(float64(r))
}

func TestModeStringRoundTrip(t *testing.T) {
	for m := ModeUnison; m <= ModePentatonic; m++ {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}

	if _, err := ParseMode("lydian"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if Mode(42).String() != "Mode(42)" {
		t.Fatalf("String() = %q", Mode(42).String())
	}
}

func TestRatiosFor(t *testing.T) {
	tests := []struct {
		mode  Mode
		count int
		want  []float64 // semitones
	}{
		{ModeUnison, 3, []float64{0, 0, 0}},
		{ModeMajorTriad, 3, []float64{0, 4, 7}},
		{ModeMajorTriad, 8, []float64{0, 4, 7}},
		{ModeMajorTriad, 2, []float64{0, 4}},
		{ModeMinorTriad, 3, []float64{0, 3, 7}},
		{ModeFifths, 4, []float64{0, 7, 14, 21}},
		{ModeOctaves, 3, []float64{0, 12, 24}},
		{ModePentatonic, 5, []float64{0, 2, 4, 7, 9}},
		{ModePentatonic, 0, []float64{0}},
		{Mode(99), 2, []float64{0, 0}},
	}
	for _, tt := range tests {
		set := RatiosFor(tt.mode, tt.count)
		if set.Len() != len(tt.want) {
			t.Fatalf("%v/%d: Len() = %d, want %d", tt.mode, tt.count, set.Len(), len(tt.want))
		}
		for i, w := range tt.want {
			if got := semis(set.At(i)); math.Abs(got-w) > 1e-4 {
				t.Fatalf("%v/%d: ratio %d = %v semitones, want %v", tt.mode, tt.count, i, got, w)
			}
		}
	}
}

func TestRatiosForClampsCount(t *testing.T) {
	set := RatiosFor(ModeOctaves, 100)
	if set.Len() != MaxRatios {
		t.Fatalf("Len() = %d, want %d", set.Len(), MaxRatios)
	}
	if set.At(0) != 1 {
		t.Fatalf("first ratio = %v, want 1", set.At(0))
	}
}

func TestIsConsonant(t *testing.T) {
	tests := []struct {
		semitones float32
		want      bool
	}{
		{0, true},
		{0.4, true},
		{1, false},
		{2, false},
		{3, true},
		{4, true},
		{5, true},
		{6, false}, // tritone
		{7, true},
		{8, false},
		{9, true},
		{10, false},
		{11, true},
		{12, true},
		{-7, true},
		{-6, false},
		{19, true}, // octave + fifth
		{18, false},
		{2.5, false}, // window edges are exclusive
		{3.5, false},
		{float32(math.NaN()), false},
		{float32(math.Inf(1)), false},
	}
	for _, tt := range tests {
		if got := IsConsonant(tt.semitones); got != tt.want {
			t.Fatalf("IsConsonant(%v) = %v, want %v", tt.semitones, got, tt.want)
		}
	}
}

func TestFilterConsonantDropsTritone(t *testing.T) {
	var in RatioSet
	in.Append(1)
	in.Append(float32(core.SemitonesToRatio(6)))

	out := FilterConsonant(in, 0)
	if out.Len() != 1 || out.At(0) != 1 {
		t.Fatalf("FilterConsonant() = %v, want [1]", out.Slice())
	}
}

func TestFilterConsonantRelativeToBase(t *testing.T) {
	set := RatiosFor(ModeMajorTriad, 3)

	// Over a base of one semitone the root becomes a minor second and the
	// third an interval of five semitones.
	out := FilterConsonant(set, 1)
	if out.Len() != 1 || math.Abs(semis(out.At(0))-4) > 1e-4 {
		t.Fatalf("FilterConsonant(base=1) = %v", out.Slice())
	}

	// Stacked fifths: 14 semitones reduces to a major second and is dropped.
	fifths := FilterConsonant(RatiosFor(ModeFifths, 4), 0)
	want := []float64{0, 7, 21}
	if fifths.Len() != len(want) {
		t.Fatalf("fifths Len() = %d, want %d", fifths.Len(), len(want))
	}
	for i, w := range want {
		if math.Abs(semis(fifths.At(i))-w) > 1e-4 {
			t.Fatalf("fifths[%d] = %v semitones, want %v", i, semis(fifths.At(i)), w)
		}
	}
}

func TestFilterConsonantNeverEmpty(t *testing.T) {
	var in RatioSet
	in.Append(float32(core.SemitonesToRatio(1)))
	in.Append(float32(core.SemitonesToRatio(6)))

	for _, base := range []float32{0, 0.9, 5, -1} {
		out := FilterConsonant(in, base)
		if out.Len() == 0 {
			t.Fatalf("base %v: empty result", base)
		}
	}

	out := FilterConsonant(RatioSet{}, 0)
	if out.Len() != 1 || out.At(0) != 1 {
		t.Fatalf("empty input: got %v, want [1]", out.Slice())
	}
}

func TestRatioSetAppendCapacity(t *testing.T) {
	var s RatioSet
	for i := 0; i < MaxRatios; i++ {
		if !s.Append(1) {
			t.Fatalf("Append %d rejected", i)
		}
	}
	if s.Append(1) {
		t.Fatal("Append beyond capacity accepted")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Len() after Reset = %d", s.Len())
	}
}

func BenchmarkFilterConsonant(b *testing.B) {
	set := RatiosFor(ModeFifths, MaxRatios)
	for i := 0; i < b.N; i++ {
		_ = FilterConsonant(set, 2)
	}
}
