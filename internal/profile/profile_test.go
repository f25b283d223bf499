package profile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"depthsync/internal/correlate"
	"depthsync/internal/photo"
	"depthsync/internal/tags"
	"depthsync/internal/track"
)

func diveTrack() []track.Sample {
	var samples []track.Sample
	for i := range 60 {
		depth := int64(i * 300)
		if i > 30 {
			depth = int64((60 - i) * 300)
		}
		samples = append(samples, track.Sample{Timestamp: int64(1000 + 10*i), DepthMM: depth, TemperatureC: 18})
	}
	return samples
}

func TestRenderPNG(t *testing.T) {
	samples := diveTrack()
	photos := []photo.Record{{Path: "/dive/a.jpg", Timestamp: 1105}, {Path: "/dive/b.jpg", Timestamp: 5000}}
	updates := correlate.Plan(samples, photos, correlate.DefaultSettings(), tags.Set{})
	markers := MarkersFromUpdates(updates)
	if len(markers) != 1 || markers[0].Label != "a.jpg" {
		t.Fatalf("markers = %+v", markers)
	}

	path := filepath.Join(t.TempDir(), "charts", "profile.png")
	if err := Render(path, samples, markers, Options{Units: correlate.Metric}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("expected PNG output, got % x", data[:min(8, len(data))])
	}
}

func TestRenderWithoutSamples(t *testing.T) {
	err := Render(filepath.Join(t.TempDir(), "p.png"), nil, nil, Options{})
	if !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}
