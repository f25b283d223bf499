package tags

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"depthsync/internal/geo"
)

func TestBulkSet(t *testing.T) {
	pair := geo.Pair{Latitude: 47.9485, Longitude: -122.3045}
	got := Bulk{
		Author:      "Jane Diver",
		Description: "Night dive",
		Comment:     " ",
		Subject:     "Octopus",
		Location:    "Mukilteo, WA",
		Coordinates: &pair,
	}.Set()

	want := Set{
		ImageUniqueID:    "Mukilteo, WA",
		ReelName:         "Mukilteo, WA",
		GPSLatitude:      "47/1 56/1 5460/100",
		GPSLatitudeRef:   "N",
		GPSLongitude:     "122/1 18/1 1620/100",
		GPSLongitudeRef:  "W",
		ImageDescription: "Night dive",
		Copyright:        "Jane Diver",
		XPAuthor:         "Jane Diver",
		XPSubject:        "Octopus",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bulk set mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyBulkSet(t *testing.T) {
	if got := (Bulk{}).Set(); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestSetHelpersDoNotAlias(t *testing.T) {
	base := Set{Copyright: "a"}
	merged := base.Merge(Set{WaterDepth: "18/1"})
	merged[Copyright] = "changed"

	if base[Copyright] != "a" {
		t.Fatalf("Merge aliased the receiver: %v", base)
	}
	clone := merged.Clone()
	delete(clone, WaterDepth)
	if _, ok := merged[WaterDepth]; !ok {
		t.Fatal("Clone aliased the receiver")
	}
	if diff := cmp.Diff([]string{Copyright, WaterDepth}, merged.Keys()); diff != "" {
		t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
	}
	var nilSet Set
	if c := nilSet.Clone(); c == nil || len(c) != 0 {
		t.Fatalf("expected empty non-nil clone, got %#v", c)
	}
}

func TestType(t *testing.T) {
	tests := map[string]string{
		WaterDepth:          "SRational",
		GPSAltitude:         "Rational",
		GPSAltitudeRef:      "Byte",
		Copyright:           "Ascii",
		XPAuthor:            "Byte",
		XPComment:           "Byte",
		"Exif.Image.Artist": "",
	}
	for key, want := range tests {
		if got := Type(key); got != want {
			t.Errorf("Type(%s) = %q, want %q", key, got, want)
		}
	}
	if !WindowsXP(XPSubject) || WindowsXP(Copyright) {
		t.Fatal("WindowsXP misclassified keys")
	}
}
