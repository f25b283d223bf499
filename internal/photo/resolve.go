package photo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExifDateLayout is the fixed EXIF DateTime format. EXIF stores no zone.
const ExifDateLayout = "2006:01:02 15:04:05"

// subSecondTags maps a timestamp tag to the tag holding its fractional seconds.
var subSecondTags = map[string]string{
	"Exif.Image.DateTime":          "Exif.Photo.SubSecTime",
	"Exif.Photo.DateTimeOriginal":  "Exif.Photo.SubSecTimeOriginal",
	"Exif.Photo.DateTimeDigitized": "Exif.Photo.SubSecTimeDigitized",
}

// MetadataReader returns the EXIF key/value pairs of a file.
type MetadataReader interface {
	ReadExif(ctx context.Context, path string) (map[string]string, error)
}

// Resolver turns photo files into Records.
type Resolver struct {
	Reader MetadataReader
	// Tags are consulted in order; the first parseable one wins.
	Tags []string
	// Location is the zone the camera clock was set to.
	Location *time.Location
	// Offset corrects camera clock drift and is added to every timestamp.
	Offset time.Duration
}

// Resolve reads the capture time for path.
func (r Resolver) Resolve(ctx context.Context, path string) (Record, error) {
	fields, err := r.Reader.ReadExif(ctx, path)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	captured, err := r.CaptureTime(fields)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	captured = captured.Add(r.Offset)
	return Record{
		Path:          path,
		Timestamp:     float64(captured.Unix()) + float64(captured.Nanosecond())/float64(time.Second),
		OffsetApplied: r.Offset != 0,
	}, nil
}

// CaptureTime extracts the capture time from EXIF fields without applying
// the drift offset.
func (r Resolver) CaptureTime(fields map[string]string) (time.Time, error) {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	var tried []string
	for _, tag := range r.Tags {
		raw, ok := fields[tag]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		parsed, err := time.ParseInLocation(ExifDateLayout, raw, loc)
		if err != nil {
			tried = append(tried, fmt.Sprintf("%s=%q", tag, raw))
			continue
		}
		if frac, ok := subSeconds(fields[subSecondTags[tag]]); ok {
			parsed = parsed.Add(frac)
		}
		return parsed, nil
	}
	if len(tried) > 0 {
		return time.Time{}, fmt.Errorf("%w: unparseable %s", ErrUnresolvableTimestamp, strings.Join(tried, ", "))
	}
	return time.Time{}, fmt.Errorf("%w: none of %s present", ErrUnresolvableTimestamp, strings.Join(r.Tags, ", "))
}

// subSeconds interprets an EXIF SubSecTime value: the digits are the
// fractional part, so "5" is 0.5s and "050" is 0.05s.
func subSeconds(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > 9 {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	for i := len(raw); i < 9; i++ {
		n *= 10
	}
	return time.Duration(n), true
}
