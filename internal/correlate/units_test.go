package correlate

import (
	"math"
	"testing"
)

func TestParseUnits(t *testing.T) {
	for input, want := range map[string]Units{
		"":          Imperial,
		"imperial":  Imperial,
		" Metric ":  Metric,
		"METRIC":    Metric,
		"Imperial ": Imperial,
	} {
		got, err := ParseUnits(input)
		if err != nil {
			t.Fatalf("ParseUnits(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseUnits(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := ParseUnits("furlongs"); err == nil {
		t.Fatal("expected error for unknown units")
	}
}

func TestFormatDepth(t *testing.T) {
	tests := []struct {
		mm    float64
		units Units
		want  string
	}{
		{5400, Imperial, "18/1"},
		{0, Imperial, "0/1"},
		{1000, Imperial, "3/1"},
		{4572, Imperial, "15/1"},
		{5400, Metric, "54/10"},
		{12345, Metric, "123/10"},
		{30000, Metric, "300/10"},
	}
	for _, tc := range tests {
		if got := FormatDepth(tc.mm, tc.units); got != tc.want {
			t.Errorf("FormatDepth(%v, %s) = %q, want %q", tc.mm, tc.units, got, tc.want)
		}
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		celsius float64
		units   Units
		want    string
	}{
		{14, Imperial, "57/1"},
		{15, Imperial, "59/1"},
		{-2, Imperial, "28/1"},
		{14, Metric, "14/1"},
		{14.5, Metric, "145/10"},
		{-1, Metric, "-1/1"},
	}
	for _, tc := range tests {
		if got := FormatTemperature(tc.celsius, tc.units); got != tc.want {
			t.Errorf("FormatTemperature(%v, %s) = %q, want %q", tc.celsius, tc.units, got, tc.want)
		}
	}
}

func TestImperialDepthRoundTrip(t *testing.T) {
	for mm := 0.0; mm < 60_000; mm += 37 {
		feet := DepthValue(mm, Imperial)
		if back := feet * millimetresPerFoot; math.Abs(back-mm) > millimetresPerFoot/2+1e-9 {
			t.Fatalf("%v mm -> %v ft -> %v mm drifts more than half a foot", mm, feet, back)
		}
	}
}

func TestRational(t *testing.T) {
	if got := Rational(5.4, 1); got != "54/10" {
		t.Fatalf("Rational(5.4, 1) = %q", got)
	}
	if got := Rational(12.34, 2); got != "1234/100" {
		t.Fatalf("Rational(12.34, 2) = %q", got)
	}
	if got := Rational(7, 0); got != "7/1" {
		t.Fatalf("Rational(7, 0) = %q", got)
	}
}
