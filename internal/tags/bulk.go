package tags

import (
	"strings"

	"depthsync/internal/geo"
)

// Bulk holds the fields applied to every photo regardless of track data.
type Bulk struct {
	Author      string
	Description string
	Comment     string
	Subject     string
	Location    string
	Coordinates *geo.Pair
}

// Set renders the bulk fields into EXIF keys. Empty fields are omitted.
func (b Bulk) Set() Set {
	out := Set{}
	if v := strings.TrimSpace(b.Location); v != "" {
		// ReelName is the semantically right home but most viewers only
		// display ImageUniqueID.
		out[ImageUniqueID] = v
		out[ReelName] = v
	}
	if b.Coordinates != nil {
		out[GPSLatitude] = geo.ToDMS(b.Coordinates.Latitude).Rational()
		out[GPSLatitudeRef] = b.Coordinates.LatitudeRef()
		out[GPSLongitude] = geo.ToDMS(b.Coordinates.Longitude).Rational()
		out[GPSLongitudeRef] = b.Coordinates.LongitudeRef()
	}
	if v := strings.TrimSpace(b.Description); v != "" {
		out[ImageDescription] = v
	}
	if v := strings.TrimSpace(b.Author); v != "" {
		out[Copyright] = v
		out[XPAuthor] = v
	}
	if v := strings.TrimSpace(b.Subject); v != "" {
		out[XPSubject] = v
	}
	if v := strings.TrimSpace(b.Comment); v != "" {
		out[XPComment] = v
	}
	return out
}
