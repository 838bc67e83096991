package runs

import "time"

// Run is one recorded organize run.
type Run struct {
	ID         string
	InputDir   string
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Copied     int
	Skipped    int
	Renamed    int
	Failed     int
}

// Total is the number of files the run looked at.
func (r Run) Total() int {
	return r.Moved + r.Copied + r.Skipped + r.Renamed + r.Failed
}

// Entry is one per-file disposition belonging to a run, ordered by Position.
type Entry struct {
	RunID           string
	Position        int
	Source          string
	Destination     string
	Outcome         string
	Reason          string
	TimestampSource string
}

// DatabaseHealth captures diagnostic information about the runs database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    int
	TotalRuns        int
	Error            string
}
