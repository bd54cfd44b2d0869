package core

// EnsureLen32 returns a slice with the requested length, reusing buf capacity
// if possible.
func EnsureLen32(buf []float32, n int) []float32 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float32, n)
}

// Zero32 sets all values in buf to 0.
func Zero32(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// Deinterleave splits frames of interleaved samples into per-channel slices.
// It copies at most min(frames, len(dst[ch])) frames per channel and returns
// the number of frames copied.
func Deinterleave(dst [][]float32, src []float32, channels, frames int) int {
	if channels <= 0 || len(dst) < channels {
		return 0
	}

	if avail := len(src) / channels; frames > avail {
		frames = avail
	}

	for ch := 0; ch < channels; ch++ {
		if len(dst[ch]) < frames {
			frames = len(dst[ch])
		}
	}

	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			dst[ch][i] = src[base+ch]
		}
	}

	return frames
}

// Interleave is the inverse of [Deinterleave].
func Interleave(dst []float32, src [][]float32, channels, frames int) int {
	if channels <= 0 || len(src) < channels {
		return 0
	}

	if avail := len(dst) / channels; frames > avail {
		frames = avail
	}

	for ch := 0; ch < channels; ch++ {
		if len(src[ch]) < frames {
			frames = len(src[ch])
		}
	}

	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			dst[base+ch] = src[ch][i]
		}
	}

	return frames
}
