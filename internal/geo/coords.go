package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pair is a decimal-degree coordinate.
type Pair struct {
	Latitude  float64
	Longitude float64
}

// DMS is an unsigned degree/minute/second triple. Seconds are kept in
// hundredths because that is the precision written to EXIF.
type DMS struct {
	Degrees    int
	Minutes    int
	Hundredths int
}

// ParsePair parses "lat lon" (whitespace or comma separated). Each half is a
// signed decimal degree value, optionally suffixed with a hemisphere letter.
func ParsePair(value string) (Pair, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Pair{}, fmt.Errorf("coordinates %q: expected \"lat lon\"", strings.TrimSpace(value))
	}
	lat, err := parseComponent(fields[0], "N", "S")
	if err != nil {
		return Pair{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseComponent(fields[1], "E", "W")
	if err != nil {
		return Pair{}, fmt.Errorf("longitude: %w", err)
	}
	if lat < -90 || lat > 90 {
		return Pair{}, fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return Pair{}, fmt.Errorf("longitude %v out of range", lon)
	}
	return Pair{Latitude: lat, Longitude: lon}, nil
}

func parseComponent(raw, positive, negative string) (float64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "°")
	sign := 1.0
	upper := strings.ToUpper(raw)
	switch {
	case strings.HasSuffix(upper, positive):
		raw = raw[:len(raw)-1]
	case strings.HasSuffix(upper, negative):
		raw = raw[:len(raw)-1]
		sign = -1
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "°")
	if raw == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid decimal degrees %q", raw)
	}
	if sign < 0 && v < 0 {
		return 0, fmt.Errorf("%q has both a sign and a southern/western hemisphere", raw)
	}
	return sign * v, nil
}

// ToDMS converts the magnitude of a decimal degree value. A seconds value
// that rounds up to 60 carries into the minutes.
func ToDMS(value float64) DMS {
	value = math.Abs(value)
	degrees := math.Floor(value)
	minutesFloat := (value - degrees) * 60
	minutes := math.Floor(minutesFloat)
	hundredths := int(math.RoundToEven((minutesFloat - minutes) * 60 * 100))

	d := DMS{Degrees: int(degrees), Minutes: int(minutes), Hundredths: hundredths}
	if d.Hundredths >= 6000 {
		d.Hundredths -= 6000
		d.Minutes++
	}
	if d.Minutes >= 60 {
		d.Minutes -= 60
		d.Degrees++
	}
	return d
}

// Rational renders the triple the way EXIF GPS tags expect it: three
// space-separated rationals without commas.
func (d DMS) Rational() string {
	return fmt.Sprintf("%d/1 %d/1 %d/100", d.Degrees, d.Minutes, d.Hundredths)
}

// String renders a human readable form, e.g. 47°56'54.60".
func (d DMS) String() string {
	return fmt.Sprintf("%d°%d'%d.%02d\"", d.Degrees, d.Minutes, d.Hundredths/100, d.Hundredths%100)
}

// LatitudeRef returns "N" or "S".
func (p Pair) LatitudeRef() string {
	return hemisphere(p.Latitude, "N", "S")
}

// LongitudeRef returns "E" or "W".
func (p Pair) LongitudeRef() string {
	return hemisphere(p.Longitude, "E", "W")
}

func hemisphere(value float64, positive, negative string) string {
	if value < 0 || (value == 0 && math.Signbit(value)) {
		return negative
	}
	return positive
}

// String renders the pair in degrees/minutes/seconds with hemispheres.
func (p Pair) String() string {
	return fmt.Sprintf("%s %s, %s %s", ToDMS(p.Latitude), p.LatitudeRef(), ToDMS(p.Longitude), p.LongitudeRef())
}
