package photo

import (
	"errors"
	"math"
	"time"
)

// ErrUnresolvableTimestamp marks a photo whose capture time cannot be read
// from any configured tag.
var ErrUnresolvableTimestamp = errors.New("unresolvable capture timestamp")

// ErrUnreadable marks a file the metadata reader cannot open, usually
// because it is not an image at all.
var ErrUnreadable = errors.New("unreadable metadata")

// Record is a photo with its resolved capture time.
type Record struct {
	Path string
	// Timestamp is UTC epoch seconds with timezone and drift corrections
	// already applied. It may carry a sub-second fraction.
	Timestamp     float64
	OffsetApplied bool
}

// Time returns the timestamp as a UTC time.
func (r Record) Time() time.Time {
	sec, frac := math.Modf(r.Timestamp)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

// Comparable reports whether the timestamp can be ordered.
func (r Record) Comparable() bool {
	return !math.IsNaN(r.Timestamp) && !math.IsInf(r.Timestamp, 0)
}
