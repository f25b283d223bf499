// Package tags names the EXIF fields depthsync writes and provides the Set
// type used to hand them to a metadata writer.
//
// Sets are treated as values: every helper returns a fresh map so a writer
// that rewrites values in place cannot leak changes into later photos.
package tags
