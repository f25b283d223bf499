// Package profile renders a dive profile chart: depth over elapsed time, with
// the photos that matched the track drawn as markers.
package profile

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"depthsync/internal/correlate"
	"depthsync/internal/track"
)

// ErrNoSamples is returned when there is no track to draw.
var ErrNoSamples = errors.New("profile: no track samples")

// Marker is a photo position on the profile.
type Marker struct {
	Timestamp float64
	DepthMM   float64
	Label     string
}

// Options controls chart rendering.
type Options struct {
	Title  string
	Units  correlate.Units
	Width  vg.Length
	Height vg.Length
}

var (
	profileColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	markerColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// MarkersFromUpdates returns a marker for every matched update.
func MarkersFromUpdates(updates []correlate.Update) []Marker {
	markers := make([]Marker, 0, len(updates))
	for _, u := range updates {
		if !u.Matched {
			continue
		}
		markers = append(markers, Marker{
			Timestamp: u.Photo.Timestamp,
			DepthMM:   u.DepthMM,
			Label:     filepath.Base(u.Photo.Path),
		})
	}
	return markers
}

// Render draws samples and markers and saves the chart to path. The image
// format follows the file extension (png, svg, pdf). samples must be sorted.
func Render(path string, samples []track.Sample, markers []Marker, opts Options) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if opts.Width <= 0 {
		opts.Width = 10 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 5 * vg.Inch
	}
	start := float64(samples[0].Timestamp)

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Dive profile"
	}
	p.X.Label.Text = "Elapsed (min)"
	p.Y.Label.Text = fmt.Sprintf("Depth (%s)", opts.Units.DepthLabel())
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, plotter.XY{
			X: (float64(s.Timestamp) - start) / 60,
			Y: -correlate.DepthValueExact(float64(s.DepthMM), opts.Units),
		})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("profile line: %w", err)
	}
	line.Color = profileColor
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("depth", line)

	if len(markers) > 0 {
		mpts := make(plotter.XYs, 0, len(markers))
		for _, m := range markers {
			mpts = append(mpts, plotter.XY{
				X: (m.Timestamp - start) / 60,
				Y: -correlate.DepthValueExact(m.DepthMM, opts.Units),
			})
		}
		scatter, err := plotter.NewScatter(mpts)
		if err != nil {
			return fmt.Errorf("profile markers: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = markerColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("photos (%d)", len(markers)), scatter)
	}

	p.Legend.Top = false
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = 10

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart directory: %w", err)
		}
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("save profile chart: %w", err)
	}
	return nil
}
