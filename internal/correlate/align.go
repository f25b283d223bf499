package correlate

import (
	"math"
	"sort"

	"depthsync/internal/photo"
	"depthsync/internal/track"
)

// DefaultTolerance is the default maximum gap, in seconds, between a photo
// and the next track sample.
const DefaultTolerance = 10.0

// Reason explains the outcome of aligning one photo.
type Reason int

const (
	ReasonMatched Reason = iota
	// ReasonNoTrack means there were no samples at all.
	ReasonNoTrack
	// ReasonBeforeTrack means the bracket would need a sample before the
	// first one (the cursor is still at index 0).
	ReasonBeforeTrack
	// ReasonOutOfTolerance means the next sample is too far away in time.
	ReasonOutOfTolerance
	// ReasonTrackExhausted means the photo is after the last sample.
	ReasonTrackExhausted
)

func (r Reason) String() string {
	switch r {
	case ReasonMatched:
		return "matched"
	case ReasonNoTrack:
		return "no track"
	case ReasonBeforeTrack:
		return "before track"
	case ReasonOutOfTolerance:
		return "out of tolerance"
	case ReasonTrackExhausted:
		return "after track"
	default:
		return "unknown"
	}
}

// Result is the alignment outcome for one photo.
type Result struct {
	Photo   photo.Record
	Matched bool
	Reason  Reason
	// Prev and Next bracket the photo. Prev is zero when Cursor is 0.
	Prev track.Sample
	Next track.Sample
	// Cursor is the index of Next in the track, or -1 without a track.
	Cursor int
	// Gap is Next.Timestamp minus the photo timestamp, in seconds.
	Gap          float64
	DepthMM      float64
	TemperatureC float64
}

// alignState is the accumulator threaded through the photo loop. The cursor
// only ever moves forward.
type alignState struct {
	cursor int
}

// step advances the cursor for p and evaluates the resulting bracket.
// samples must be sorted and p must not be earlier than any photo previously
// passed to this state.
func (s alignState) step(samples []track.Sample, p photo.Record, tolerance float64) (alignState, Result) {
	if len(samples) == 0 {
		return s, Result{Photo: p, Reason: ReasonNoTrack, Cursor: -1}
	}
	k := s.cursor
	for k < len(samples)-1 && float64(samples[k].Timestamp) < p.Timestamp {
		k++
	}
	s.cursor = k
	return s, evaluate(samples, k, p, tolerance)
}

// Align merges sorted samples with sorted photos, producing one Result per
// photo in photo order. The cursor is shared across the whole pass.
func Align(samples []track.Sample, photos []photo.Record, tolerance float64) []Result {
	results := make([]Result, 0, len(photos))
	var state alignState
	for _, p := range photos {
		var res Result
		state, res = state.step(samples, p, tolerance)
		results = append(results, res)
	}
	return results
}

// Locate aligns a single photo by binary search. It does not depend on photo
// order and agrees with Align for sorted input.
func Locate(samples []track.Sample, p photo.Record, tolerance float64) Result {
	if len(samples) == 0 {
		return Result{Photo: p, Reason: ReasonNoTrack, Cursor: -1}
	}
	k := sort.Search(len(samples), func(i int) bool {
		return float64(samples[i].Timestamp) >= p.Timestamp
	})
	if k == len(samples) {
		k = len(samples) - 1
	}
	return evaluate(samples, k, p, tolerance)
}

func evaluate(samples []track.Sample, k int, p photo.Record, tolerance float64) Result {
	next := samples[k]
	res := Result{
		Photo:  p,
		Next:   next,
		Cursor: k,
		Gap:    float64(next.Timestamp) - p.Timestamp,
	}
	if k == 0 {
		res.Reason = ReasonBeforeTrack
		return res
	}
	res.Prev = samples[k-1]
	// Only the gap to the next sample counts, however far away prev is.
	if math.Abs(res.Gap) > tolerance {
		res.Reason = ReasonOutOfTolerance
		return res
	}
	if res.Gap < 0 {
		res.Reason = ReasonTrackExhausted
		return res
	}
	res.Matched = true
	res.Reason = ReasonMatched
	res.DepthMM = Interpolate(res.Prev, next, p.Timestamp)
	res.TemperatureC = next.TemperatureC
	return res
}
