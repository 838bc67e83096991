package api_test

import (
	"testing"
	"time"

	"mediasort/internal/api"
	"mediasort/internal/organizer"
	"mediasort/internal/runs"
)

func TestFromStoredRun(t *testing.T) {
	started := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
	stored := runs.Run{
		ID:         "run-1",
		InputDir:   "/in",
		OutputDir:  "/out",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Moved:      3,
		Skipped:    1,
	}

	dto := api.FromStoredRun(stored)
	if dto.ID != "run-1" || dto.Moved != 3 || dto.Total != 4 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.StartedAt != "2024-05-17T14:30:00.000Z" {
		t.Fatalf("unexpected startedAt: %q", dto.StartedAt)
	}
}

func TestStoredFromResult(t *testing.T) {
	result := &organizer.RunResult{
		InputDir:  "/in",
		OutputDir: "/out",
		StartedAt: time.Now(),
		Entries: []organizer.Entry{
			{Source: "/in/a.jpg", Destination: "/out/image/2024/05/a.jpg", Outcome: organizer.OutcomeMoved, TimestampSource: "metadata"},
			{Source: "/in/b.txt", Outcome: organizer.OutcomeSkipped, Reason: "unsupported"},
		},
		Counts: organizer.Counts{Moved: 1, Skipped: 1},
	}

	run, entries := api.StoredFromResult(result)
	if run.Moved != 1 || run.Skipped != 1 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Position != 0 || entries[1].Position != 1 {
		t.Fatalf("expected sequential positions: %+v", entries)
	}
	if entries[1].Reason != "unsupported" {
		t.Fatalf("unexpected reason: %q", entries[1].Reason)
	}
}

func TestStoredFromResultNil(t *testing.T) {
	run, entries := api.StoredFromResult(nil)
	if run.Total() != 0 || entries != nil {
		t.Fatalf("expected empty conversion, got %+v / %+v", run, entries)
	}
}
