package smooth

import (
	"fmt"
	"math"
)

const (
	// DefaultTimeMs is the smoothing time constant in milliseconds.
	DefaultTimeMs = 5.0

	// TriggerEpsilon is the minimum change of a raw value that restarts a ramp.
	TriggerEpsilon = 1e-4

	// SettleThreshold is the residual below which a ramp snaps to its target.
	SettleThreshold = 1e-3

	// MaxValues is the capacity of a Bank.
	MaxValues = 8
)

// Value is a single smoothed parameter. The zero value is settled at 0.
//
// State is float64; a float32 ramp toward 20 kHz stalls above SettleThreshold.
type Value struct {
	current float64
	target  float64
	active  bool
}

// Current returns the smoothed value.
func (v *Value) Current() float64 { return v.current }

// Target returns the value the ramp is heading to.
func (v *Value) Target() float64 { return v.target }

// Active reports whether the ramp is still moving.
func (v *Value) Active() bool { return v.active }

// Reset places current and target at x and stops the ramp.
func (v *Value) Reset(x float64) {
	v.current = x
	v.target = x
	v.active = false
}

// setTarget restarts the ramp when x differs from the target by more than
// TriggerEpsilon.
func (v *Value) setTarget(x float64) bool {
	if math.Abs(x-v.target) <= TriggerEpsilon {
		return false
	}

	v.target = x
	v.active = true

	return true
}

// advance integrates frames samples and reports whether the ramp is still
// active afterwards.
func (v *Value) advance(frames int, coeff float64) bool {
	if !v.active {
		return false
	}

	current, target := v.current, v.target
	for i := 0; i < frames; i++ {
		current += (target - current) * coeff
	}

	if math.Abs(current-target) < SettleThreshold {
		v.Reset(target)
		return false
	}

	v.current = current

	return true
}

// Bank is a fixed set of smoothed values sharing one time constant.
//
// Bank is real-time safe (no allocations after construction) and not
// thread-safe.
type Bank struct {
	values [MaxValues]Value
	n      int

	coeff     float64
	anyActive bool

	watched     int
	lastWatched float64
	dirty       bool
}

// NewBank returns a bank of n settled values. No value is watched.
func NewBank(n int) (*Bank, error) {
	if n <= 0 || n > MaxValues {
		return nil, fmt.Errorf("smooth bank size must be in [1, %d]: %d", MaxValues, n)
	}

	return &Bank{n: n, watched: -1, coeff: 1}, nil
}

// Len returns the number of values in the bank.
func (b *Bank) Len() int { return b.n }

// Coefficient returns the per-sample approach coefficient.
func (b *Bank) Coefficient() float64 { return b.coeff }

// Configure derives the per-sample coefficient for a DefaultTimeMs time
// constant at sampleRate and resets every value to raw with smoothing off.
// Missing entries of raw keep their current value.
func (b *Bank) Configure(sampleRate float64, raw []float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("smooth sample rate must be > 0: %f", sampleRate)
	}

	timeSamples := DefaultTimeMs / 1000 * sampleRate

	coeff := 1 / timeSamples
	if coeff > 1 {
		coeff = 1
	}

	b.coeff = coeff
	b.Snap(raw)

	return nil
}

// Snap jumps every value to raw without ramping and marks the watched value
// dirty.
func (b *Bank) Snap(raw []float64) {
	for i := 0; i < b.n && i < len(raw); i++ {
		b.values[i].Reset(raw[i])
	}

	for i := len(raw); i < b.n; i++ {
		b.values[i].active = false
		b.values[i].target = b.values[i].current
	}

	b.anyActive = false
	b.dirty = b.watched >= 0
}

// Trigger compares each raw value with its target and restarts the ramps that
// moved by more than TriggerEpsilon. It reports whether any ramp started.
func (b *Bank) Trigger(raw []float64) bool {
	started := false

	for i := 0; i < b.n && i < len(raw); i++ {
		if b.values[i].setTarget(raw[i]) {
			started = true
		}
	}

	if started {
		b.anyActive = true
	}

	return started
}

// Advance integrates every active ramp over frames samples. It is meant to be
// called at most once per processing block and is a no-op when nothing is
// moving.
func (b *Bank) Advance(frames int) {
	if !b.anyActive || frames <= 0 {
		return
	}

	stillActive := false

	for i := 0; i < b.n; i++ {
		if b.values[i].advance(frames, b.coeff) {
			stillActive = true
		}
	}

	b.anyActive = stillActive

	if b.watched >= 0 {
		delta := b.values[b.watched].current - b.lastWatched
		if math.Abs(delta) > SettleThreshold {
			b.dirty = true
		}
	}
}

// AnyActive reports whether at least one ramp is moving.
func (b *Bank) AnyActive() bool { return b.anyActive }

// Value returns a pointer to value i for inspection.
func (b *Bank) Value(i int) *Value { return &b.values[i] }

// Current returns the smoothed value i.
func (b *Bank) Current(i int) float64 { return b.values[i].current }

// Target returns the target of value i.
func (b *Bank) Target(i int) float64 { return b.values[i].target }

// Watch selects value i for change tracking. A negative index disables it.
func (b *Bank) Watch(i int) {
	if i >= b.n {
		i = -1
	}

	b.watched = i
	b.dirty = i >= 0
}

// Dirty reports whether the watched value moved by more than
// SettleThreshold since the last Commit.
func (b *Bank) Dirty() bool { return b.dirty }

// MarkDirty forces the next Dirty call to report true.
func (b *Bank) MarkDirty() {
	if b.watched >= 0 {
		b.dirty = true
	}
}

// Commit records the watched value as consumed and returns it.
func (b *Bank) Commit() float64 {
	if b.watched < 0 {
		return 0
	}

	b.lastWatched = b.values[b.watched].current
	b.dirty = false

	return b.lastWatched
}
