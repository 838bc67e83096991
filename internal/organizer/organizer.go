package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mediasort/internal/collision"
	"mediasort/internal/config"
	"mediasort/internal/fileutil"
	"mediasort/internal/fingerprint"
	"mediasort/internal/layout"
	"mediasort/internal/logging"
	"mediasort/internal/media"
	"mediasort/internal/services"
)

// Request describes one organize run. Empty fields fall back to the
// configured paths.
type Request struct {
	InputDir  string
	OutputDir string
}

// Organizer executes organize runs against the configured library.
type Organizer struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor *media.Extractor
}

// New builds an Organizer from the application config.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "organizer"),
		extractor: media.NewExtractor(logger),
	}
}

// Run scans the input directory and places every file into the library.
//
// Configuration problems abort before any file is touched and are the only
// errors returned alongside a nil result. Per-file problems are recorded as
// failed entries and the run completes. Cancellation returns the partial
// result together with the context error.
func (o *Organizer) Run(ctx context.Context, req Request) (*RunResult, error) {
	inputDir := strings.TrimSpace(req.InputDir)
	if inputDir == "" {
		inputDir = o.cfg.Paths.InputDir
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = o.cfg.Paths.OutputDir
	}

	strategy, err := layout.ParseStrategy(o.cfg.Organizer.Layout)
	if err != nil {
		return nil, err
	}
	if err := o.validateDirs(inputDir, outputDir); err != nil {
		return nil, err
	}

	resolver := layout.NewResolver(strategy, o.cfg.Organizer.RenameFiles)
	collider := collision.NewResolver(o.cfg.Organizer.OnDuplicate == "overwrite")

	files, err := o.scan(inputDir)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: time.Now(),
	}

	o.logger.Info("run started",
		logging.String("input_dir", inputDir),
		logging.String("output_dir", outputDir),
		logging.Int("files", len(files)),
		logging.String("layout", string(strategy)))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			result.FinishedAt = time.Now()
			return result, err
		}
		result.record(o.processFile(path, outputDir, resolver, collider))
	}

	result.FinishedAt = time.Now()
	o.logger.Info("run finished",
		logging.Int("moved", result.Counts.Moved),
		logging.Int("copied", result.Counts.Copied),
		logging.Int("skipped", result.Counts.Skipped),
		logging.Int("renamed", result.Counts.Renamed),
		logging.Int("failed", result.Counts.Failed),
		logging.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)))
	return result, nil
}

func (o *Organizer) validateDirs(inputDir, outputDir string) error {
	info, err := os.Stat(inputDir)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "organizer", "validate",
			fmt.Sprintf("input directory %s", inputDir), err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrConfiguration, "organizer", "validate",
			fmt.Sprintf("input path %s is not a directory", inputDir), nil)
	}
	if outputDir == inputDir {
		return services.Wrap(services.ErrConfiguration, "organizer", "validate",
			"input and output directories must differ", nil)
	}
	// An output root nested inside the input root would be rescanned on the
	// next run, turning every organized file into its own duplicate.
	if isWithin(inputDir, outputDir) {
		return services.Wrap(services.ErrConfiguration, "organizer", "validate",
			fmt.Sprintf("output directory %s is inside input directory %s", outputDir, inputDir), nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "organizer", "validate",
			fmt.Sprintf("output directory %s", outputDir), err)
	}
	return nil
}

// isWithin reports whether child resolves to a path under parent.
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// scan lists candidate files in lexicographic order. Hidden files are left
// alone; the input directory often carries .DS_Store style clutter that
// should never count against a run.
func (o *Organizer) scan(inputDir string) ([]string, error) {
	var files []string
	if o.cfg.Organizer.Recursive {
		err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, services.Wrap(services.ErrFilesystem, "organizer", "scan", inputDir, err)
		}
	} else {
		entries, err := os.ReadDir(inputDir)
		if err != nil {
			return nil, services.Wrap(services.ErrFilesystem, "organizer", "scan", inputDir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (o *Organizer) processFile(path, outputDir string, resolver *layout.Resolver, collider *collision.Resolver) Entry {
	entry := Entry{Source: path}

	attrs, err := o.extractor.Extract(path)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedType) {
			return o.handleUnsupported(entry, err)
		}
		entry.Outcome = OutcomeFailed
		entry.Reason = services.FailureReason(err)
		o.logFailure(path, err)
		return entry
	}
	entry.TimestampSource = attrs.Source

	dest := filepath.Join(outputDir, resolver.Resolve(filepath.Base(path), attrs))

	fp, err := fingerprint.Compute(path)
	if err != nil {
		entry.Outcome = OutcomeFailed
		entry.Reason = "unreadable"
		o.logFailure(path, err)
		return entry
	}

	decision, err := collider.Resolve(fp, dest)
	if err != nil {
		entry.Outcome = OutcomeFailed
		entry.Reason = services.FailureReason(err)
		o.logFailure(path, err)
		return entry
	}

	return o.applyDecision(entry, decision)
}

func (o *Organizer) handleUnsupported(entry Entry, cause error) Entry {
	entry.Reason = "unsupported"
	if o.cfg.Organizer.OnUnsupported == "fail" {
		entry.Outcome = OutcomeFailed
		o.logFailure(entry.Source, cause)
	} else {
		entry.Outcome = OutcomeSkipped
		o.logger.Debug("skipping unsupported file", logging.String(logging.FieldSource, entry.Source))
	}
	return entry
}

func (o *Organizer) applyDecision(entry Entry, decision collision.Decision) Entry {
	switch decision.Action {
	case collision.SkipDuplicate:
		entry.Destination = decision.Destination
		entry.Outcome = OutcomeSkipped
		entry.Reason = "duplicate"
		// When source and destination collapse to the same path the file is
		// the only copy; deleting it would not deduplicate, it would destroy.
		if o.cfg.Organizer.OnDuplicate == "delete" && entry.Source != decision.Destination {
			if err := os.Remove(entry.Source); err != nil {
				entry.Outcome = OutcomeFailed
				entry.Reason = "filesystem"
				o.logFailure(entry.Source, err)
				return entry
			}
			entry.Reason = "duplicate, source removed"
		}
		o.logger.Info("duplicate detected",
			logging.String(logging.FieldSource, entry.Source),
			logging.String(logging.FieldDest, decision.Destination))
		return entry

	case collision.Place, collision.RenameAndPlace, collision.Overwrite:
		entry.Destination = decision.Destination
		if err := o.transfer(entry.Source, decision.Destination); err != nil {
			entry.Outcome = OutcomeFailed
			entry.Reason = "filesystem"
			o.logFailure(entry.Source, err)
			return entry
		}
		switch {
		case decision.Action == collision.RenameAndPlace:
			entry.Outcome = OutcomeRenamed
			entry.Reason = "name collision"
		case o.cfg.Organizer.CopyMode:
			entry.Outcome = OutcomeCopied
		default:
			entry.Outcome = OutcomeMoved
		}
		if decision.Action == collision.Overwrite {
			entry.Reason = "overwrote duplicate"
		}
		o.logger.Info("placed file",
			logging.String(logging.FieldSource, entry.Source),
			logging.String(logging.FieldDest, entry.Destination),
			logging.String(logging.FieldOutcome, string(entry.Outcome)))
		return entry

	default:
		entry.Outcome = OutcomeFailed
		entry.Reason = "error"
		return entry
	}
}

func (o *Organizer) transfer(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if o.cfg.Organizer.CopyMode {
		return fileutil.CopyFileVerified(src, dest)
	}
	return fileutil.MoveFile(src, dest)
}

func (o *Organizer) logFailure(path string, err error) {
	o.logger.Warn("file failed",
		logging.String(logging.FieldSource, path),
		logging.Error(err))
}
