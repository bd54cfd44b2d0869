// Package harmonizer is the real-time processing core of the effect.
//
// A [Processor] owns every piece of DSP state for one processing session:
// smoothed gain, cutoff and dry/wet parameters, a stereo biquad lowpass,
// the optional granular harmony path and the output safety stage. The host
// shell drives it with parameter events, per-block sample buffers and
// state snapshots.
//
// Threading model:
//
//   - Process, ProcessBuffer, SetParam, ApplyEvents and Reset run on the
//     audio thread. They never allocate, block or log.
//   - New, Activate and the granular configuration run while the stream is
//     stopped.
//   - SaveState, LoadState, ParamValue and Stats may be called from any
//     goroutine. Loaded values are picked up by the next Process call.
package harmonizer
