package api

import (
	"mediasort/internal/organizer"
	"mediasort/internal/runs"
)

// FromStoredRun converts a persisted run to its API representation.
func FromStoredRun(run runs.Run) Run {
	dto := Run{
		ID:        run.ID,
		InputDir:  run.InputDir,
		OutputDir: run.OutputDir,
		Moved:     run.Moved,
		Copied:    run.Copied,
		Skipped:   run.Skipped,
		Renamed:   run.Renamed,
		Failed:    run.Failed,
		Total:     run.Total(),
	}
	if !run.StartedAt.IsZero() {
		dto.StartedAt = run.StartedAt.UTC().Format(dateTimeFormat)
	}
	if !run.FinishedAt.IsZero() {
		dto.FinishedAt = run.FinishedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromStoredRuns converts a slice of persisted runs into API DTOs.
func FromStoredRuns(stored []runs.Run) []Run {
	if len(stored) == 0 {
		return nil
	}
	out := make([]Run, 0, len(stored))
	for _, run := range stored {
		out = append(out, FromStoredRun(run))
	}
	return out
}

// FromStoredEntries converts persisted run entries into API DTOs.
func FromStoredEntries(entries []runs.Entry) []RunEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]RunEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, RunEntry{
			Source:          entry.Source,
			Destination:     entry.Destination,
			Outcome:         entry.Outcome,
			Reason:          entry.Reason,
			TimestampSource: entry.TimestampSource,
		})
	}
	return out
}

// StoredFromResult converts an engine run result into the store's record
// shape. The ID is left empty for the store to assign.
func StoredFromResult(result *organizer.RunResult) (runs.Run, []runs.Entry) {
	if result == nil {
		return runs.Run{}, nil
	}
	run := runs.Run{
		InputDir:   result.InputDir,
		OutputDir:  result.OutputDir,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Moved:      result.Counts.Moved,
		Copied:     result.Counts.Copied,
		Skipped:    result.Counts.Skipped,
		Renamed:    result.Counts.Renamed,
		Failed:     result.Counts.Failed,
	}
	entries := make([]runs.Entry, 0, len(result.Entries))
	for i, entry := range result.Entries {
		entries = append(entries, runs.Entry{
			Position:        i,
			Source:          entry.Source,
			Destination:     entry.Destination,
			Outcome:         string(entry.Outcome),
			Reason:          entry.Reason,
			TimestampSource: string(entry.TimestampSource),
		})
	}
	return run, entries
}

// FromDatabaseHealth converts store diagnostics into the API shape.
func FromDatabaseHealth(health runs.DatabaseHealth) DatabaseHealth {
	return DatabaseHealth{
		DBPath:           health.DBPath,
		DatabaseExists:   health.DatabaseExists,
		DatabaseReadable: health.DatabaseReadable,
		SchemaVersion:    health.SchemaVersion,
		TotalRuns:        health.TotalRuns,
		Error:            health.Error,
	}
}
