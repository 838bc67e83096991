// Package services defines the shared error taxonomy used across the
// organizing engine and its callers.
//
// Errors are tagged with sentinel markers so the organizer can classify a
// per-file failure (unreadable, unsupported, filesystem) without string
// matching, and so the boundary layers can distinguish a fatal configuration
// error (run never started) from a run that completed with failures.
package services
