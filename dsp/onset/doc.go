// Package onset flags transients in a sample stream.
//
// The detector compares the mean-square energy of consecutive fixed-size
// frames and fires when a frame is both loud in absolute terms and
// markedly louder than its predecessor. Frame-to-frame flux can be taken
// in the time domain or from FFT magnitudes via [SpectralAnalyzer].
//
// A [TriggerGate] enforces a minimum spacing between accepted triggers.
package onset
