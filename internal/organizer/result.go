package organizer

import (
	"time"

	"mediasort/internal/media"
)

// Outcome describes what happened to one scanned file.
type Outcome string

const (
	OutcomeMoved   Outcome = "moved"
	OutcomeCopied  Outcome = "copied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeRenamed Outcome = "renamed"
	OutcomeFailed  Outcome = "failed"
)

// Entry records the disposition of a single file, in scan order.
type Entry struct {
	Source          string
	Destination     string
	Outcome         Outcome
	Reason          string
	TimestampSource media.TimestampSource
}

// Counts aggregates entry outcomes for a run.
type Counts struct {
	Moved   int
	Copied  int
	Skipped int
	Renamed int
	Failed  int
}

// Total is the number of files the run looked at.
func (c Counts) Total() int {
	return c.Moved + c.Copied + c.Skipped + c.Renamed + c.Failed
}

// RunResult is the complete account of one organize run.
type RunResult struct {
	InputDir   string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    []Entry
	Counts     Counts
}

func (r *RunResult) record(entry Entry) {
	r.Entries = append(r.Entries, entry)
	switch entry.Outcome {
	case OutcomeMoved:
		r.Counts.Moved++
	case OutcomeCopied:
		r.Counts.Copied++
	case OutcomeSkipped:
		r.Counts.Skipped++
	case OutcomeRenamed:
		r.Counts.Renamed++
	case OutcomeFailed:
		r.Counts.Failed++
	}
}
