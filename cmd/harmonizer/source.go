package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// burstPeriod and burstLength shape the "burst" signal: a tone that switches
// on for 120 ms every 500 ms over a faint noise floor.
const (
	burstPeriod = 0.5
	burstLength = 0.12
	floorLevel  = 0.005
	toneLevel   = 0.5
)

type sourceKind int

const (
	sourceSine sourceKind = iota
	sourceNoise
	sourceBurst
)

// source generates a mono test signal sample by sample.
type source struct {
	kind       sourceKind
	freq       float64
	sampleRate float64
	step       float64
	phase      float64
	n          int
	rng        *rand.Rand
}

func newSource(name string, freq, sampleRate float64) (*source, error) {
	var kind sourceKind
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine":
		kind = sourceSine
	case "noise":
		kind = sourceNoise
	case "burst":
		kind = sourceBurst
	default:
		return nil, fmt.Errorf("unknown signal %q (want sine, noise or burst)", name)
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return nil, fmt.Errorf("tone frequency must be in (0, %g): %g", sampleRate/2, freq)
	}

	return &source{
		kind:       kind,
		freq:       freq,
		sampleRate: sampleRate,
		step:       2 * math.Pi * freq / sampleRate,
		rng:        rand.New(rand.NewSource(1)),
	}, nil
}

func (s *source) next() float32 {
	tone := math.Sin(s.phase)
	s.phase += s.step
	if s.phase >= 2*math.Pi {
		s.phase -= 2 * math.Pi
	}

	t := float64(s.n) / s.sampleRate
	s.n++

	switch s.kind {
	case sourceSine:
		return float32(toneLevel * tone)
	case sourceNoise:
		return float32(toneLevel * (2*s.rng.Float64() - 1))
	default:
		x := floorLevel * (2*s.rng.Float64() - 1)
		if math.Mod(t, burstPeriod) < burstLength {
			x += toneLevel * tone
		}
		return float32(x)
	}
}
