// Package photo discovers photo files and resolves their capture times.
//
// EXIF timestamps carry no zone, so the Resolver interprets them in the
// camera's configured zone and then applies the clock-drift offset before
// handing a Record to the correlator.
package photo
