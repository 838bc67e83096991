package daemon

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediasort/internal/config"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
	"mediasort/internal/runs"
	"mediasort/internal/testsupport"
)

func newTestDaemon(t *testing.T, cfg *config.Config) *Daemon {
	t.Helper()
	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	d, err := New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	return d
}

func TestOrganizeRecordsRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "trip_20240517_143000.jpg"), []byte("jpeg"))
	d := newTestDaemon(t, cfg)

	run, err := d.Organize(context.Background(), organizer.Request{})
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected assigned run id")
	}
	if run.Moved != 1 || run.Total() != 1 {
		t.Fatalf("unexpected counts: %+v", run)
	}

	stored, entries, err := d.DescribeRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("describe run: %v", err)
	}
	if stored.Moved != 1 {
		t.Fatalf("unexpected stored run: %+v", stored)
	}
	if len(entries) != 1 || entries[0].Outcome != string(organizer.OutcomeMoved) {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestOrganizeConfigurationError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newTestDaemon(t, cfg)
	cfg.Paths.InputDir = filepath.Join(cfg.Paths.InputDir, "missing")

	if _, err := d.Organize(context.Background(), organizer.Request{}); err == nil {
		t.Fatal("expected error for missing input directory")
	}

	stored, err := d.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("run that never started must not be recorded, got %d", len(stored))
	}
}

func TestStartRejectsSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first := newTestDaemon(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("start first daemon: %v", err)
	}
	defer first.Stop()

	second := newTestDaemon(t, cfg)
	err := second.Start(ctx)
	if err == nil {
		second.Stop()
		t.Fatal("expected second start to fail while lock is held")
	}
	if !strings.Contains(err.Error(), "already running") {
		t.Fatalf("unexpected error: %v", err)
	}

	first.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("start after lock release: %v", err)
	}
	second.Stop()
}

func TestStatusReportsLastRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "clip_20230101_120000.mp4"), []byte("mp4"))
	d := newTestDaemon(t, cfg)

	status, err := d.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.LastRun != nil || status.TotalRuns != 0 {
		t.Fatalf("expected empty history, got %+v", status)
	}
	if status.PID <= 0 {
		t.Fatalf("expected pid, got %d", status.PID)
	}

	if _, err := d.Organize(context.Background(), organizer.Request{}); err != nil {
		t.Fatalf("organize: %v", err)
	}

	status, err = d.Status(context.Background())
	if err != nil {
		t.Fatalf("status after run: %v", err)
	}
	if status.TotalRuns != 1 || status.LastRun == nil {
		t.Fatalf("expected recorded run in status, got %+v", status)
	}
	if status.LastRun.Moved != 1 {
		t.Fatalf("unexpected last run: %+v", status.LastRun)
	}
}

func TestClearRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "pic_20240102_030405.jpg"), []byte("jpeg"))
	d := newTestDaemon(t, cfg)

	if _, err := d.Organize(context.Background(), organizer.Request{}); err != nil {
		t.Fatalf("organize: %v", err)
	}

	removed, err := d.ClearRuns(context.Background())
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 cleared run, got %d", removed)
	}

	stored, err := d.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected empty history, got %d", len(stored))
	}
}

func TestOrganizeSerializesTriggers(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for i := 0; i < 3; i++ {
		name := time.Date(2024, time.Month(i+1), 10, 9, 0, 0, 0, time.UTC).Format("snap_20060102_150405.jpg")
		testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, name), []byte("jpeg"))
	}
	d := newTestDaemon(t, cfg)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := d.Organize(context.Background(), organizer.Request{})
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("organize: %v", err)
		}
	}

	stored, err := d.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected both triggers recorded, got %d", len(stored))
	}
	total := 0
	for _, run := range stored {
		total += run.Moved
	}
	if total != 3 {
		t.Fatalf("expected 3 moved files across runs, got %d", total)
	}
}
