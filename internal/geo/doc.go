// Package geo parses decimal GPS coordinates and renders them as the
// degree/minute/second rationals EXIF requires. EXIF cannot store signed
// coordinates, so the sign travels separately as a hemisphere reference.
package geo
