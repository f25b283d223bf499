package correlate

import "depthsync/internal/track"

// Interpolate estimates the depth in millimetres at ts assuming a constant
// rate of change between prev and next. Identical timestamps yield next's
// depth.
func Interpolate(prev, next track.Sample, ts float64) float64 {
	timeRange := float64(next.Timestamp - prev.Timestamp)
	if timeRange == 0 {
		return float64(next.DepthMM)
	}
	offset := float64(next.Timestamp) - ts
	nextDepth := float64(next.DepthMM)
	prevDepth := float64(prev.DepthMM)
	return nextDepth - ((nextDepth-prevDepth)/timeRange)*offset
}
