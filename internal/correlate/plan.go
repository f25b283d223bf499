package correlate

import (
	"math"

	"depthsync/internal/photo"
	"depthsync/internal/tags"
	"depthsync/internal/track"
)

// Settings parameterizes a correlation pass.
type Settings struct {
	// Tolerance is the largest accepted gap in seconds.
	Tolerance float64
	Units     Units
}

// DefaultSettings returns a 10 second tolerance with imperial units.
func DefaultSettings() Settings {
	return Settings{Tolerance: DefaultTolerance, Units: Imperial}
}

// Update is the planned metadata for one photo.
type Update struct {
	Result
	// Tags is a fresh set owned by the receiver.
	Tags tags.Set
}

// foldState is threaded through the photo loop: the alignment cursor plus
// the sticky track fields from the last match.
type foldState struct {
	align  alignState
	sticky tags.Set
}

func (s foldState) step(samples []track.Sample, p photo.Record, settings Settings, bulk tags.Set) (foldState, Update) {
	var res Result
	s.align, res = s.align.step(samples, p, settings.Tolerance)
	if res.Matched {
		s.sticky = Encode(res, settings.Units)
	} else {
		s.sticky = nil
	}
	return s, Update{Result: res, Tags: bulk.Merge(s.sticky)}
}

// Plan aligns sorted photos against sorted samples and builds the tag set
// for every photo: the bulk fields plus, for matched photos, the encoded
// depth, temperature and altitude. Unmatched photos never inherit track
// fields from an earlier match.
func Plan(samples []track.Sample, photos []photo.Record, settings Settings, bulk tags.Set) []Update {
	updates := make([]Update, 0, len(photos))
	var state foldState
	for _, p := range photos {
		var u Update
		state, u = state.step(samples, p, settings, bulk)
		updates = append(updates, u)
	}
	return updates
}

// Encode renders the track fields of a matched result. Unmatched results
// encode to nil.
func Encode(res Result, u Units) tags.Set {
	if !res.Matched {
		return nil
	}
	// EXIF altitude is unsigned; the reference byte carries the direction.
	return tags.Set{
		tags.WaterDepth:     FormatDepth(res.DepthMM, u),
		tags.Temperature:    FormatTemperature(res.TemperatureC, u),
		tags.GPSAltitudeRef: tags.AltitudeBelowSeaLevel,
		tags.GPSAltitude:    FormatDepth(math.Abs(res.DepthMM), u),
	}
}
