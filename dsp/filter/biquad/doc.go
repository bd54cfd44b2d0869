// Package biquad provides the second-order IIR lowpass used by the processing
// core.
//
// Coefficients are designed in double precision ([Lowpass]) and stored in a
// [Section] as float32 for the per-sample path. A [Stereo] pair keeps two
// sections coefficient-identical so a single mono cutoff drives both
// channels while each channel keeps its own delay taps.
package biquad
