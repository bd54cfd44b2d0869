package smooth

import (
	"math"
	"testing"
)

func newConfiguredBank(t *testing.T, sampleRate float64, raw ...float64) *Bank {
	t.Helper()

	b, err := NewBank(len(raw))
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	if err := b.Configure(sampleRate, raw); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	return b
}

func TestNewBankValidation(t *testing.T) {
	for _, n := range []int{0, -1, MaxValues + 1} {
		if _, err := NewBank(n); err == nil {
			t.Fatalf("NewBank(%d) expected error", n)
		}
	}
}

func TestConfigureRejectsInvalidSampleRate(t *testing.T) {
	b, err := NewBank(1)
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := b.Configure(sr, []float64{1}); err == nil {
			t.Fatalf("Configure(%v) expected error", sr)
		}
	}
}

func TestConfigureCoefficient(t *testing.T) {
	b := newConfiguredBank(t, 48000, 1)

	want := 1.0 / 240.0
	if math.Abs(b.Coefficient()-want) > 1e-15 {
		t.Fatalf("Coefficient() = %v, want %v", b.Coefficient(), want)
	}

	// A very low rate would overshoot; the coefficient is capped at 1.
	low := newConfiguredBank(t, 100, 1)
	if low.Coefficient() != 1 {
		t.Fatalf("Coefficient() at 100 Hz = %v, want 1", low.Coefficient())
	}
}

func TestConfigureResetsValues(t *testing.T) {
	b := newConfiguredBank(t, 48000, 1, 1000, 0.5)
	b.Trigger([]float64{2, 20000, 1})
	b.Advance(16)

	if err := b.Configure(44100, []float64{0.25, 500, 0}); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	if b.AnyActive() {
		t.Fatal("AnyActive() = true after Configure")
	}

	for i, want := range []float64{0.25, 500, 0} {
		v := b.Value(i)
		if v.Current() != want || v.Target() != want || v.Active() {
			t.Fatalf("value %d = {%v %v %v}, want settled at %v", i, v.Current(), v.Target(), v.Active(), want)
		}
	}
}

func TestTriggerIgnoresTinyChanges(t *testing.T) {
	b := newConfiguredBank(t, 48000, 1)

	if b.Trigger([]float64{1 + TriggerEpsilon/2}) {
		t.Fatal("Trigger() started a ramp for a sub-epsilon change")
	}

	if b.AnyActive() {
		t.Fatal("AnyActive() = true after sub-epsilon change")
	}

	if !b.Trigger([]float64{1.5}) {
		t.Fatal("Trigger() did not start a ramp")
	}

	if !b.AnyActive() || !b.Value(0).Active() {
		t.Fatal("ramp not active after Trigger")
	}
}

func TestAdvanceConvergesToFixedPoint(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
	}{
		{name: "gain up", start: 0, end: 2},
		{name: "gain down", start: 2, end: 0},
		{name: "cutoff up", start: 20, end: 20000},
		{name: "cutoff down", start: 20000, end: 20},
		{name: "mix", start: 0.5, end: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfiguredBank(t, 48000, tt.start)
			b.Trigger([]float64{tt.end})

			prevDist := math.Abs(tt.end - tt.start)
			for block := 0; block < 2000 && b.AnyActive(); block++ {
				b.Advance(64)

				dist := math.Abs(tt.end - b.Current(0))
				if dist > prevDist {
					t.Fatalf("block %d: distance grew from %v to %v", block, prevDist, dist)
				}
				prevDist = dist
			}

			if b.AnyActive() {
				t.Fatalf("ramp still active, current = %v", b.Current(0))
			}

			if b.Current(0) != tt.end {
				t.Fatalf("Current() = %v, want %v", b.Current(0), tt.end)
			}

			b.Advance(512)
			if b.Current(0) != tt.end {
				t.Fatalf("Current() moved after settling: %v", b.Current(0))
			}
		})
	}
}

func TestAdvanceBlockSizeInvariant(t *testing.T) {
	for _, n := range []int{1, 7, 64, 240, 1000, 5000} {
		whole := newConfiguredBank(t, 48000, 0.1, 100)
		split := newConfiguredBank(t, 48000, 0.1, 100)

		whole.Trigger([]float64{1.9, 15000})
		split.Trigger([]float64{1.9, 15000})

		whole.Advance(n)
		for i := 0; i < n; i++ {
			split.Advance(1)
		}

		for i := 0; i < 2; i++ {
			if whole.Current(i) != split.Current(i) {
				t.Fatalf("n=%d value %d: whole=%v split=%v", n, i, whole.Current(i), split.Current(i))
			}
		}
	}
}

func TestAdvanceIsPerSample(t *testing.T) {
	b := newConfiguredBank(t, 48000, 0)
	b.Trigger([]float64{1})
	b.Advance(240)

	// One time constant of per-sample integration lands near 1 - 1/e.
	want := 1 - math.Pow(1-1.0/240, 240)
	if math.Abs(b.Current(0)-want) > 1e-12 {
		t.Fatalf("Current() = %v, want %v", b.Current(0), want)
	}
}

func TestAdvanceNoOpWhenIdle(t *testing.T) {
	b := newConfiguredBank(t, 48000, 0.7)
	b.Advance(1024)

	if b.Current(0) != 0.7 {
		t.Fatalf("Current() = %v, want 0.7", b.Current(0))
	}

	b.Advance(0)
	b.Advance(-4)
}

func TestWatchedValueDirty(t *testing.T) {
	b := newConfiguredBank(t, 48000, 1, 1000, 0.5)
	b.Watch(1)

	if !b.Dirty() {
		t.Fatal("Dirty() = false right after Watch")
	}

	if got := b.Commit(); got != 1000 {
		t.Fatalf("Commit() = %v, want 1000", got)
	}

	if b.Dirty() {
		t.Fatal("Dirty() = true after Commit")
	}

	// Moving another value does not dirty the watched one.
	b.Trigger([]float64{2, 1000, 0.5})
	b.Advance(64)
	if b.Dirty() {
		t.Fatal("Dirty() = true after unwatched change")
	}

	b.Trigger([]float64{2, 4000, 0.5})
	b.Advance(64)
	if !b.Dirty() {
		t.Fatal("Dirty() = false after watched change")
	}

	b.Commit()
	b.Snap([]float64{1, 1000, 0.5})
	if !b.Dirty() {
		t.Fatal("Dirty() = false after Snap")
	}

	b.Watch(-1)
	if b.Dirty() {
		t.Fatal("Dirty() = true with no watched value")
	}
}

func BenchmarkBankAdvance(b *testing.B) {
	bank, err := NewBank(3)
	if err != nil {
		b.Fatal(err)
	}

	if err := bank.Configure(48000, []float64{1, 1000, 0.5}); err != nil {
		b.Fatal(err)
	}

	targets := [2][]float64{{0.5, 200, 0.2}, {1.5, 8000, 0.8}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bank.Trigger(targets[i&1])
		bank.Advance(256)
	}
}
