package correlate

import (
	"fmt"
	"math"
	"strings"
)

// Units selects the unit system written to photos.
type Units int

const (
	// Imperial writes feet and Fahrenheit. It is the default.
	Imperial Units = iota
	// Metric writes metres and Celsius, as the EXIF standard intends.
	Metric
)

const millimetresPerFoot = 304.8

// ParseUnits accepts "imperial" or "metric" in any case.
func ParseUnits(value string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "imperial":
		return Imperial, nil
	case "metric":
		return Metric, nil
	default:
		return Imperial, fmt.Errorf("unknown unit system %q", value)
	}
}

func (u Units) String() string {
	if u == Metric {
		return "metric"
	}
	return "imperial"
}

// DepthLabel returns the depth unit symbol.
func (u Units) DepthLabel() string {
	if u == Metric {
		return "m"
	}
	return "ft"
}

// TemperatureLabel returns the temperature unit symbol.
func (u Units) TemperatureLabel() string {
	if u == Metric {
		return "°C"
	}
	return "°F"
}

// DepthValue converts millimetres to whole feet or to metres with one decimal.
func DepthValue(mm float64, u Units) float64 {
	if u == Metric {
		return roundTo(DepthValueExact(mm, u), 1)
	}
	return roundTo(DepthValueExact(mm, u), 0)
}

// DepthValueExact converts millimetres to feet or metres without rounding.
func DepthValueExact(mm float64, u Units) float64 {
	if u == Metric {
		return mm / 1000
	}
	return mm / millimetresPerFoot
}

// TemperatureValue converts Celsius to whole Fahrenheit; metric passes the
// value through.
func TemperatureValue(celsius float64, u Units) float64 {
	if u == Metric {
		return celsius
	}
	return roundTo(celsius*9/5+32, 0)
}

// FormatDepth encodes a depth as an EXIF rational in the chosen units.
func FormatDepth(mm float64, u Units) string {
	if u == Metric {
		return Rational(DepthValue(mm, u), 1)
	}
	return Rational(DepthValue(mm, u), 0)
}

// FormatTemperature encodes a temperature as an EXIF rational in the chosen
// units. Fractional Celsius values keep one decimal.
func FormatTemperature(celsius float64, u Units) string {
	v := TemperatureValue(celsius, u)
	if v == math.Trunc(v) {
		return Rational(v, 0)
	}
	return Rational(v, 1)
}

// Rational renders value as "numerator/denominator" with a power-of-ten
// denominator holding the requested number of decimals.
func Rational(value float64, decimals int) string {
	den := int64(1)
	for range decimals {
		den *= 10
	}
	num := int64(math.RoundToEven(value * float64(den)))
	return fmt.Sprintf("%d/%d", num, den)
}

// roundTo rounds half to even, the same way the original tool did.
func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(value*scale) / scale
}
