// Package config loads, normalizes, and validates depthsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DEPTHSYNC_TIMEZONE environment
// fallback. Command-line flags are applied on top of a loaded Config and then
// re-checked with Finalize so every run sees the same sanitized values.
package config
