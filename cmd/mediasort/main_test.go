package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"mediasort/internal/daemon"
	"mediasort/internal/ipc"
	"mediasort/internal/logging"
	"mediasort/internal/runs"
	"mediasort/internal/testsupport"
)

func startDaemonWithSocket(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "trip_20240517_143000.jpg"), []byte("jpeg"))

	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	logger := logging.NewNop()
	d, err := daemon.New(cfg, store, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC-backed CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	time.Sleep(50 * time.Millisecond)
	return cfg.Paths.SocketPath
}

func TestOrganizeCommandJSON(t *testing.T) {
	socket := startDaemonWithSocket(t)

	out, err := runCommand(t, "--socket", socket, "organize", "--json")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}

	var resp ipc.OrganizeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if resp.Run.Moved != 1 || resp.Run.ID == "" {
		t.Fatalf("unexpected run: %+v", resp.Run)
	}
}

func TestRunsCommands(t *testing.T) {
	socket := startDaemonWithSocket(t)

	if _, err := runCommand(t, "--socket", socket, "organize"); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, err := runCommand(t, "--socket", socket, "runs", "list", "--json")
	if err != nil {
		t.Fatalf("runs list: %v", err)
	}
	var list ipc.RunListResponse
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode list %q: %v", out, err)
	}
	if len(list.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(list.Runs))
	}

	out, err = runCommand(t, "--socket", socket, "runs", "show", list.Runs[0].ID)
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	if !strings.Contains(out, "Moved") && !strings.Contains(out, "moved") {
		t.Fatalf("expected outcome in output, got %q", out)
	}

	out, err = runCommand(t, "--socket", socket, "runs", "health", "--json")
	if err != nil {
		t.Fatalf("runs health: %v", err)
	}
	var health ipc.DatabaseHealthResponse
	if err := json.Unmarshal([]byte(out), &health); err != nil {
		t.Fatalf("decode health %q: %v", out, err)
	}
	if !health.DatabaseReadable || health.TotalRuns != 1 {
		t.Fatalf("unexpected health: %+v", health)
	}

	out, err = runCommand(t, "--socket", socket, "runs", "clear")
	if err != nil {
		t.Fatalf("runs clear: %v", err)
	}
	if !strings.Contains(out, "Removed 1 runs") {
		t.Fatalf("unexpected clear output: %q", out)
	}
}

func TestStatusCommand(t *testing.T) {
	socket := startDaemonWithSocket(t)

	out, err := runCommand(t, "--socket", socket, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Daemon") || !strings.Contains(out, "Runs") {
		t.Fatalf("unexpected status output: %q", out)
	}
}

func TestWrapDialError(t *testing.T) {
	err := wrapDialError(syscall.ENOENT, "/tmp/missing.sock")
	if !strings.Contains(err.Error(), "mediasortd") {
		t.Fatalf("expected hint to start the daemon, got %v", err)
	}

	err = wrapDialError(syscall.ECONNREFUSED, "/tmp/stale.sock")
	if !strings.Contains(err.Error(), "refused") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatOutcomeLabel(t *testing.T) {
	cases := map[string]string{
		"moved":          "Moved",
		"name collision": "Name Collision",
		"":               "",
		"skipped":        "Skipped",
	}
	for input, want := range cases {
		if got := formatOutcomeLabel(input); got != want {
			t.Errorf("formatOutcomeLabel(%q) = %q, want %q", input, got, want)
		}
	}
}
