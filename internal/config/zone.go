package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseZone accepts a fixed UTC offset ("+02:00", "-0800", "Z") or an IANA
// zone name ("America/Los_Angeles").
func ParseZone(value string) (*time.Location, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "", "Z", "UTC", "utc":
		return time.UTC, nil
	}
	if value[0] == '+' || value[0] == '-' {
		return parseOffset(value)
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", value, err)
	}
	return loc, nil
}

func parseOffset(value string) (*time.Location, error) {
	sign := 1
	if value[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(value[1:], ":", "")
	if len(digits) == 2 {
		digits += "00"
	}
	if len(digits) != 4 {
		return nil, fmt.Errorf("invalid utc offset %q", value)
	}
	hours, err := strconv.Atoi(digits[:2])
	if err != nil {
		return nil, fmt.Errorf("invalid utc offset %q", value)
	}
	minutes, err := strconv.Atoi(digits[2:])
	if err != nil {
		return nil, fmt.Errorf("invalid utc offset %q", value)
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("utc offset %q out of range", value)
	}
	seconds := sign * (hours*3600 + minutes*60)
	return time.FixedZone(value, seconds), nil
}
