// Package grain manages a fixed pool of pitch-shifting grain voices that
// read windowed slices from a shared ring buffer.
//
// The pool never allocates after construction and never blocks: when every
// voice is busy, Allocate steals the voice closest to completion.
package grain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonizer/dsp/ring"
	"github.com/cwbudde/algo-harmonizer/dsp/window"
)

// MaxVoices is the largest pool capacity.
const MaxVoices = 64

// Handle indexes a voice within its pool.
type Handle int

// Voice is one grain in flight. bufferOffset anchors how many samples
// behind the write cursor the grain starts; playbackPos advances by
// pitchRatio per rendered sample on top of it.
type Voice struct {
	active        bool
	bufferOffset  float32
	playbackPos   float32
	pitchRatio    float32
	lengthSamples int
	currentSample int
	amplitude     float32
}

// Active reports whether the voice is playing.
func (v Voice) Active() bool { return v.active }

// BufferOffset returns the start offset in samples behind the write cursor.
func (v Voice) BufferOffset() float32 { return v.bufferOffset }

// PlaybackPos returns the position relative to BufferOffset.
func (v Voice) PlaybackPos() float32 { return v.playbackPos }

// PitchRatio returns the playback rate.
func (v Voice) PitchRatio() float32 { return v.pitchRatio }

// LengthSamples returns the grain length.
func (v Voice) LengthSamples() int { return v.lengthSamples }

// CurrentSample returns the number of samples rendered so far.
func (v Voice) CurrentSample() int { return v.currentSample }

// Amplitude returns the output gain.
func (v Voice) Amplitude() float32 { return v.amplitude }

// Pool is a fixed-capacity set of voices.
type Pool struct {
	voices [MaxVoices]Voice
	n      int
}

// NewPool returns a pool with capacity voices, all inactive.
func NewPool(capacity int) (*Pool, error) {
	if capacity <= 0 || capacity > MaxVoices {
		return nil, fmt.Errorf("grain pool capacity must be in [1, %d]: %d", MaxVoices, capacity)
	}

	p := &Pool{n: capacity}
	p.Reset()

	return p, nil
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int { return p.n }

// Voice returns a copy of voice h.
func (p *Pool) Voice(h Handle) Voice { return p.voices[h] }

// Active returns the number of playing voices.
func (p *Pool) Active() int {
	n := 0
	for i := 0; i < p.n; i++ {
		if p.voices[i].active {
			n++
		}
	}
	return n
}

// Allocate returns the first inactive voice. When all voices are active it
// returns the one with the largest current sample; ties go to the lowest
// handle.
func (p *Pool) Allocate() Handle {
	for i := 0; i < p.n; i++ {
		if !p.voices[i].active {
			return Handle(i)
		}
	}

	oldest := 0
	for i := 1; i < p.n; i++ {
		if p.voices[i].currentSample > p.voices[oldest].currentSample {
			oldest = i
		}
	}

	return Handle(oldest)
}

// Start arms voice h. Playback restarts at bufferOffset. A non-positive
// length leaves the voice inactive; a non-finite pitch ratio plays at 1.
func (p *Pool) Start(h Handle, bufferOffset, pitchRatio float32, lengthSamples int, amplitude float32) {
	if math.IsNaN(float64(pitchRatio)) || math.IsInf(float64(pitchRatio), 0) {
		pitchRatio = 1
	}

	p.voices[h] = Voice{
		active:        lengthSamples > 0,
		bufferOffset:  bufferOffset,
		pitchRatio:    pitchRatio,
		lengthSamples: lengthSamples,
		amplitude:     amplitude,
	}
}

// Stop deactivates voice h.
func (p *Pool) Stop(h Handle) {
	p.voices[h].active = false
}

// Render produces the next sample of voice h read from buf relative to
// writePos, or 0 if the voice is idle. A voice that has reached its length
// is deactivated.
func (p *Pool) Render(h Handle, buf *ring.Buffer, writePos int) float32 {
	v := &p.voices[h]
	if !v.active {
		return 0
	}

	if v.currentSample >= v.lengthSamples {
		v.active = false
		return 0
	}

	ago := v.bufferOffset + v.playbackPos
	if limit := float32(buf.Len() - 1); ago > limit {
		ago = limit
	}

	sample := buf.ReadRelative(writePos, ago)
	env := window.HannAt(float32(v.currentSample) / float32(v.lengthSamples))

	v.playbackPos += v.pitchRatio
	v.currentSample++

	return sample * env * v.amplitude
}

// Reset deactivates every voice and restores defaults.
func (p *Pool) Reset() {
	for i := range p.voices {
		p.voices[i] = Voice{pitchRatio: 1, amplitude: 1}
	}
}
