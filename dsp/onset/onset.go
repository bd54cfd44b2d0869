package onset

import "math"

// MinPreviousEnergy is the previous-frame energy below which Detect refuses
// to fire, since the energy ratio is meaningless near silence.
const MinPreviousEnergy = 1e-6

// Energy returns the mean squared amplitude of frame. An empty frame has
// zero energy.
func Energy(frame []float32) float32 {
	if len(frame) == 0 {
		return 0
	}

	var sum float32
	for _, x := range frame {
		sum += x * x
	}

	return sum / float32(len(frame))
}

// SpectralFlux sums the positive sample-wise increases from previous to
// current. Only the common length of both frames is compared.
func SpectralFlux(current, previous []float32) float32 {
	n := min(len(current), len(previous))

	var flux float32
	for i := 0; i < n; i++ {
		if d := current[i] - previous[i]; d > 0 {
			flux += d
		}
	}

	return flux
}

// Detect reports an onset when currentEnergy exceeds energyThreshold and
// the ratio to previousEnergy exceeds ratioThreshold. It never fires when
// previousEnergy is below [MinPreviousEnergy].
func Detect(currentEnergy, previousEnergy, energyThreshold, ratioThreshold float32) bool {
	if !(previousEnergy >= MinPreviousEnergy) {
		return false
	}

	return currentEnergy > energyThreshold && currentEnergy/previousEnergy > ratioThreshold
}

// TriggerGate limits how often triggers are accepted. The zero value
// accepts the first request at any time.
type TriggerGate struct {
	last  float64
	armed bool
}

// ShouldTrigger reports whether at least minInterval has elapsed since the
// last accepted trigger and, if so, records now as the last trigger time.
func (g *TriggerGate) ShouldTrigger(now, minInterval float64) bool {
	if g.armed && now-g.last < minInterval {
		return false
	}

	g.last = now
	g.armed = true

	return true
}

// LastTrigger returns the time of the last accepted trigger, or -Inf if
// none has been accepted since the last Reset.
func (g *TriggerGate) LastTrigger() float64 {
	if !g.armed {
		return math.Inf(-1)
	}
	return g.last
}

// Reset forgets the last trigger.
func (g *TriggerGate) Reset() {
	*g = TriggerGate{}
}
