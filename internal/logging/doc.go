// Package logging constructs the slog loggers used throughout mediasort.
//
// Two output formats are supported: a human-oriented console format used for
// interactive daemon runs, and line-delimited JSON for log files and
// machine consumers. Helper constructors keep attribute keys consistent
// across components.
package logging
