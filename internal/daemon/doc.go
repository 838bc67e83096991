// Package daemon ties the organize engine, the run-history store, and the
// HTTP API into a single lifecycle with flock-based locking to prevent
// multiple instances from reorganizing the same library concurrently.
package daemon
