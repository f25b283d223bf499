// Package track loads dive-computer logs into timestamped depth and
// temperature samples.
//
// FIT activity files are decoded with github.com/muktihari/fit; CSV exports
// are accepted for computers that cannot produce FIT. Records missing any of
// the three fields are rejected rather than partially used, and the caller
// decides what to do with an empty track.
package track
