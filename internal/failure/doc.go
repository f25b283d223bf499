// Package failure defines the marker errors shared by depthsync components.
//
// Components wrap low-level errors with one of the exported sentinels so the
// workflow can decide whether a failure is local to one photo or fatal to the
// whole run without string matching.
package failure
