// Package runs persists organize run history in SQLite. The engine itself is
// store-free; the daemon records each finished run here so status and history
// queries do not depend on an in-memory daemon lifetime.
package runs
