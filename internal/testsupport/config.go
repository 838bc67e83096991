// Package testsupport provides shared helpers for package tests: a config
// builder seeded with per-test temp directories and generators for small
// media fixtures with real embedded metadata.
package testsupport

import (
	"path/filepath"
	"testing"

	"mediasort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "incoming")
	cfgVal.Paths.OutputDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.SocketPath = filepath.Join(base, "mediasort.sock")
	cfgVal.Paths.APIBind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLayout overrides the organizer layout on the test config.
func WithLayout(layout string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.Layout = layout
	}
}

// WithCopyMode switches the test config to copy instead of move.
func WithCopyMode() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.CopyMode = true
	}
}

// WithOnDuplicate overrides the duplicate policy on the test config.
func WithOnDuplicate(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.OnDuplicate = policy
	}
}

// WithOnUnsupported overrides the unsupported-file policy on the test config.
func WithOnUnsupported(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.OnUnsupported = policy
	}
}

// WithRenameFiles enables timestamp-derived file naming on the test config.
func WithRenameFiles() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.RenameFiles = true
	}
}

// WithRecursive overrides recursive scanning on the test config.
func WithRecursive(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.Recursive = enabled
	}
}
