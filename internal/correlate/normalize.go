package correlate

import (
	"cmp"
	"slices"

	"depthsync/internal/photo"
	"depthsync/internal/track"
)

// Normalized holds both inputs sorted by timestamp.
type Normalized struct {
	Samples []track.Sample
	Photos  []photo.Record
	// Dropped lists photos whose timestamp cannot be ordered.
	Dropped []photo.Record
}

// Normalize returns stably sorted copies of samples and photos. Neither input
// slice is modified. Duplicate timestamps are kept in their original order.
func Normalize(samples []track.Sample, photos []photo.Record) Normalized {
	out := Normalized{
		Samples: slices.Clone(samples),
		Photos:  make([]photo.Record, 0, len(photos)),
	}
	for _, p := range photos {
		if !p.Comparable() {
			out.Dropped = append(out.Dropped, p)
			continue
		}
		out.Photos = append(out.Photos, p)
	}
	slices.SortStableFunc(out.Samples, func(a, b track.Sample) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	slices.SortStableFunc(out.Photos, func(a, b photo.Record) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return out
}
