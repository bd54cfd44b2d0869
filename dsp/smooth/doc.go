// Package smooth provides per-sample parameter smoothing for real-time
// processors.
//
// A [Bank] owns a fixed set of [Value] ramps that approach host-set targets
// with a first-order exponential curve. The approach is integrated once per
// sample, so the resulting trajectory does not depend on how a stream is cut
// into blocks. A bank can watch one value and flag when it has moved far
// enough that derived state (filter coefficients) should be recomputed.
package smooth
