package tags

import (
	"maps"
	"slices"
)

// EXIF keys written by depthsync, in exiv2 notation.
const (
	WaterDepth     = "Exif.Photo.WaterDepth"
	Temperature    = "Exif.Photo.Temperature"
	GPSAltitude    = "Exif.GPSInfo.GPSAltitude"
	GPSAltitudeRef = "Exif.GPSInfo.GPSAltitudeRef"

	ImageUniqueID    = "Exif.Photo.ImageUniqueID"
	ReelName         = "Exif.Image.ReelName"
	ImageDescription = "Exif.Image.ImageDescription"
	Copyright        = "Exif.Image.Copyright"
	XPAuthor         = "Exif.Image.XPAuthor"
	XPSubject        = "Exif.Image.XPSubject"
	XPComment        = "Exif.Image.XPComment"
	GPSLatitude      = "Exif.GPSInfo.GPSLatitude"
	GPSLatitudeRef   = "Exif.GPSInfo.GPSLatitudeRef"
	GPSLongitude     = "Exif.GPSInfo.GPSLongitude"
	GPSLongitudeRef  = "Exif.GPSInfo.GPSLongitudeRef"
)

// AltitudeBelowSeaLevel is the GPSAltitudeRef value for negative altitude.
const AltitudeBelowSeaLevel = "1"

// Set maps an EXIF key to its encoded string value.
type Set map[string]string

// Clone returns an independent copy. A nil set clones to an empty set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// Merge returns a new set containing s overlaid with other.
func (s Set) Merge(other Set) Set {
	out := s.Clone()
	maps.Copy(out, other)
	return out
}

// Keys returns the keys in sorted order.
func (s Set) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// WindowsXP reports whether key is one of the XP* tags, which hold UCS-2LE
// text as a byte array.
func WindowsXP(key string) bool {
	switch key {
	case XPAuthor, XPSubject, XPComment:
		return true
	default:
		return false
	}
}

// Type returns the exiv2 value type used when writing key, or "" to let
// exiv2 pick its default for the tag.
func Type(key string) string {
	switch key {
	case WaterDepth, Temperature:
		return "SRational"
	case GPSAltitude, GPSLatitude, GPSLongitude:
		return "Rational"
	case GPSAltitudeRef, XPAuthor, XPSubject, XPComment:
		return "Byte"
	case ImageUniqueID, ReelName, ImageDescription, Copyright, GPSLatitudeRef, GPSLongitudeRef:
		return "Ascii"
	default:
		return ""
	}
}
