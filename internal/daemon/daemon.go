package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"mediasort/internal/api"
	"mediasort/internal/config"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
	"mediasort/internal/runs"
)

// Daemon coordinates organize runs and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *runs.Store
	engine *organizer.Organizer

	lockPath string
	lock     *flock.Flock

	api *apiServer

	running    atomic.Bool
	organizing atomic.Bool
	organizeMu sync.Mutex

	cancel context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Organizing   bool
	InputDir     string
	OutputDir    string
	RunsDBPath   string
	LockFilePath string
	TotalRuns    int
	LastRun      *runs.Run
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *runs.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, and logger")
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		engine:   organizer.New(cfg, logger),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	srv, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = srv
	return d, nil
}

// Start acquires the daemon lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another mediasort daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if d.api != nil {
		if err := d.api.start(runCtx); err != nil {
			_ = d.lock.Unlock()
			cancel()
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("mediasort daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.api != nil {
		d.api.stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("mediasort daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Organize runs one organize pass and records the result. Concurrent
// triggers are serialized; the second caller waits for the first to finish
// and then runs against the already-organized tree.
func (d *Daemon) Organize(ctx context.Context, req organizer.Request) (*runs.Run, error) {
	d.organizeMu.Lock()
	defer d.organizeMu.Unlock()

	d.organizing.Store(true)
	defer d.organizing.Store(false)

	d.warnOnLowSpace()

	result, err := d.engine.Run(ctx, req)
	if err != nil {
		if result != nil {
			// Cancelled mid-run: still record what happened.
			if _, recordErr := d.recordResult(result); recordErr != nil {
				d.logger.Warn("failed to record partial run", logging.Error(recordErr))
			}
		}
		return nil, err
	}

	return d.recordResult(result)
}

func (d *Daemon) recordResult(result *organizer.RunResult) (*runs.Run, error) {
	run, entries := api.StoredFromResult(result)
	stored, err := d.store.RecordRun(context.Background(), run, entries)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	d.logger.Info("run recorded",
		logging.String(logging.FieldRunID, stored.ID),
		logging.Int("total", stored.Total()))
	return stored, nil
}

// ListRuns returns recorded runs, newest first.
func (d *Daemon) ListRuns(ctx context.Context, limit int) ([]runs.Run, error) {
	return d.store.ListRuns(ctx, limit)
}

// DescribeRun fetches one run with its entries.
func (d *Daemon) DescribeRun(ctx context.Context, id string) (*runs.Run, []runs.Entry, error) {
	return d.store.GetRun(ctx, id)
}

// ClearRuns removes all recorded run history.
func (d *Daemon) ClearRuns(ctx context.Context) (int, error) {
	return d.store.Clear(ctx)
}

// DatabaseHealth returns detailed database diagnostics.
func (d *Daemon) DatabaseHealth(ctx context.Context) (runs.DatabaseHealth, error) {
	return d.store.CheckHealth(ctx)
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Organizing:   d.organizing.Load(),
		InputDir:     d.cfg.Paths.InputDir,
		OutputDir:    d.cfg.Paths.OutputDir,
		RunsDBPath:   d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
	}

	health, err := d.store.CheckHealth(ctx)
	if err == nil {
		status.TotalRuns = health.TotalRuns
	}
	recent, err := d.store.ListRuns(ctx, 1)
	if err != nil {
		return status, err
	}
	if len(recent) > 0 {
		status.LastRun = &recent[0]
	}
	return status, nil
}
