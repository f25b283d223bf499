// Package logging assembles the structured slog loggers used across depthsync.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so every line of a sync run carries
// the run ID. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
