package ipc

import "mediasort/internal/api"

// Run mirrors the HTTP API run DTO for internal IPC callers.
type Run = api.Run

// RunEntry mirrors the HTTP API run entry DTO.
type RunEntry = api.RunEntry

// OrganizeRequest triggers an organize pass. Empty directories fall back to
// the daemon's configured paths.
type OrganizeRequest struct {
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
}

// OrganizeResponse reports the recorded run.
type OrganizeResponse struct {
	Message string `json:"message"`
	Run     Run    `json:"run"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid"`
	Organizing bool   `json:"organizing"`
	InputDir   string `json:"input_dir"`
	OutputDir  string `json:"output_dir"`
	RunsDBPath string `json:"runs_db_path"`
	LockPath   string `json:"lock_path"`
	TotalRuns  int    `json:"total_runs"`
	LastRun    *Run   `json:"last_run"`
}

// RunListRequest lists recorded runs, newest first. Limit of zero returns
// everything.
type RunListRequest struct {
	Limit int `json:"limit"`
}

// RunListResponse contains run history entries.
type RunListResponse struct {
	Runs []Run `json:"runs"`
}

// RunDescribeRequest fetches a single run by id.
type RunDescribeRequest struct {
	ID string `json:"id"`
}

// RunDescribeResponse contains a run with its per-file entries.
type RunDescribeResponse struct {
	Run     Run        `json:"run"`
	Entries []RunEntry `json:"entries"`
}

// RunClearRequest removes all recorded runs.
type RunClearRequest struct{}

// RunClearResponse reports the number of removed runs.
type RunClearResponse struct {
	Removed int `json:"removed"`
}

// DatabaseHealthRequest fetches detailed database diagnostics.
type DatabaseHealthRequest struct{}

// DatabaseHealthResponse reports database health information.
type DatabaseHealthResponse struct {
	DBPath           string `json:"db_path"`
	DatabaseExists   bool   `json:"database_exists"`
	DatabaseReadable bool   `json:"database_readable"`
	SchemaVersion    int    `json:"schema_version"`
	TotalRuns        int    `json:"total_runs"`
	Error            string `json:"error"`
}
