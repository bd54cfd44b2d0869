// Package ring provides a fixed-capacity circular sample store with
// fractional and relative reads for grain playback.
package ring

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
)

// wrapLimit is the number of capacities Read unwinds by repeated
// addition or subtraction before falling back to a modulo reduction.
const wrapLimit = 4

// Buffer is a circular sample store. The write cursor advances by exactly
// one per Write and wraps at Len.
type Buffer struct {
	data     []float32
	writePos int
}

// New returns a buffer holding size samples.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ring size must be > 0: %d", size)
	}
	return &Buffer{data: make([]float32, size)}, nil
}

// Len returns the capacity in samples.
func (b *Buffer) Len() int {
	return len(b.data)
}

// WritePos returns the index the next Write will store to.
func (b *Buffer) WritePos() int {
	return b.writePos
}

// Write stores one sample and advances the cursor.
func (b *Buffer) Write(sample float32) {
	b.data[b.writePos] = sample
	b.writePos++
	if b.writePos >= len(b.data) {
		b.writePos = 0
	}
}

// Read returns the linearly interpolated sample at an absolute position.
// Positions outside [0, Len) are wrapped by repeated addition or
// subtraction of the capacity; positions more than a few capacities away
// are reduced modulo Len first. A non-finite position reads 0.
func (b *Buffer) Read(pos float32) float32 {
	if math.IsNaN(float64(pos)) || math.IsInf(float64(pos), 0) {
		return 0
	}

	size := float32(len(b.data))
	if pos < -wrapLimit*size || pos >= wrapLimit*size {
		pos = float32(math.Mod(float64(pos), float64(len(b.data))))
	}
	for pos < 0 {
		pos += size
	}
	for pos >= size {
		pos -= size
	}

	i0 := int(pos)
	if i0 >= len(b.data) {
		// pos rounded up to size in float32.
		i0 = len(b.data) - 1
	}
	frac := pos - float32(i0)

	i1 := i0 + 1
	if i1 >= len(b.data) {
		i1 = 0
	}

	if frac == 0 {
		return b.data[i0]
	}
	return b.data[i0] + frac*(b.data[i1]-b.data[i0])
}

// ReadRelative reads the sample samplesAgo positions behind writePos.
// samplesAgo is clamped to [0, Len-1], so an out-of-range request
// returns the oldest stored sample instead of wrapping.
func (b *Buffer) ReadRelative(writePos int, samplesAgo float32) float32 {
	if math.IsNaN(float64(samplesAgo)) {
		samplesAgo = 0
	}
	samplesAgo = core.Clamp32(samplesAgo, 0, float32(len(b.data)-1))
	return b.Read(float32(writePos) - samplesAgo)
}

// Reset rewinds the cursor. Stored samples are left in place and are
// overwritten as new input arrives.
func (b *Buffer) Reset() {
	b.writePos = 0
}
