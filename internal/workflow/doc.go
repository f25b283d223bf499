// Package workflow runs one sync pass over a photo directory.
//
// Runner validates its options, takes the run lock, tags every log line
// with a fresh run ID, scans the directory, loads the track, resolves photo
// capture times, plans the per-photo tag sets with the correlate package and
// hands each set to the metadata writer. Per-photo failures are logged and
// counted in the report; only configuration errors, lock contention and an
// unreadable track file that was named explicitly abort the run.
package workflow
