package track

import (
	"errors"
	"time"
)

// ErrMalformedSample marks a record missing its timestamp, depth or temperature.
var ErrMalformedSample = errors.New("malformed track sample")

// Sample is one timestamped reading from a dive computer.
type Sample struct {
	// Timestamp is UTC epoch seconds.
	Timestamp int64
	// DepthMM is the raw depth in millimetres.
	DepthMM int64
	// TemperatureC is the water temperature in Celsius.
	TemperatureC float64
	// Source names the file the sample was read from.
	Source string
}

// Time returns the sample timestamp as a UTC time.
func (s Sample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// Rejected describes a record dropped while loading.
type Rejected struct {
	Source string
	Index  int
	Err    error
}

// LoadResult is the output of decoding one or more track files.
type LoadResult struct {
	Samples  []Sample
	Rejected []Rejected
	Files    []string
}

// Malformed returns how many records were dropped.
func (r LoadResult) Malformed() int {
	return len(r.Rejected)
}

func (r *LoadResult) append(other LoadResult) {
	r.Samples = append(r.Samples, other.Samples...)
	r.Rejected = append(r.Rejected, other.Rejected...)
	r.Files = append(r.Files, other.Files...)
}
