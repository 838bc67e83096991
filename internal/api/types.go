package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Run describes an organize run in a transport-friendly format.
type Run struct {
	ID         string `json:"id"`
	InputDir   string `json:"inputDir"`
	OutputDir  string `json:"outputDir"`
	StartedAt  string `json:"startedAt,omitempty"`
	FinishedAt string `json:"finishedAt,omitempty"`
	Moved      int    `json:"moved"`
	Copied     int    `json:"copied"`
	Skipped    int    `json:"skipped"`
	Renamed    int    `json:"renamed"`
	Failed     int    `json:"failed"`
	Total      int    `json:"total"`
}

// RunEntry describes one per-file disposition inside a run.
type RunEntry struct {
	Source          string `json:"source"`
	Destination     string `json:"destination,omitempty"`
	Outcome         string `json:"outcome"`
	Reason          string `json:"reason,omitempty"`
	TimestampSource string `json:"timestampSource,omitempty"`
}

// RunListResponse wraps a collection of runs for API responses.
type RunListResponse struct {
	Runs []Run `json:"runs"`
}

// RunDetailResponse pairs a run with its entries.
type RunDetailResponse struct {
	Run     Run        `json:"run"`
	Entries []RunEntry `json:"entries"`
}

// OrganizeResponse is returned by the organize trigger.
type OrganizeResponse struct {
	Message string `json:"message"`
	Run     Run    `json:"run"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	InputDir     string `json:"inputDir"`
	OutputDir    string `json:"outputDir"`
	RunsDBPath   string `json:"runsDbPath"`
	LockFilePath string `json:"lockFilePath"`
	Organizing   bool   `json:"organizing"`
	TotalRuns    int    `json:"totalRuns"`
	LastRun      *Run   `json:"lastRun,omitempty"`
}

// DatabaseHealth mirrors the runs store diagnostics.
type DatabaseHealth struct {
	DBPath           string `json:"dbPath"`
	DatabaseExists   bool   `json:"databaseExists"`
	DatabaseReadable bool   `json:"databaseReadable"`
	SchemaVersion    int    `json:"schemaVersion"`
	TotalRuns        int    `json:"totalRuns"`
	Error            string `json:"error,omitempty"`
}
