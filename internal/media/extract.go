package media

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediasort/internal/logging"
	"mediasort/internal/services"
)

// minCaptureYear is the validity threshold for extracted timestamps. Camera
// clocks that were never set produce dates in the 1970s or 1980; anything
// before this is treated as garbage and the next source is consulted.
const minCaptureYear = 2000

// validCaptureTime rejects timestamps outside the plausible capture window.
func validCaptureTime(ts time.Time, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	if ts.Year() < minCaptureYear {
		return false
	}
	return ts.Year() <= now.Year()+1
}

// Extractor classifies files and resolves their capture timestamps.
type Extractor struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExtractor returns an Extractor logging through the provided logger.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logging.NewComponentLogger(logger, "extractor"),
		now:    time.Now,
	}
}

// Extract determines the kind and capture timestamp for the file at path.
//
// The timestamp chain is: embedded metadata (EXIF or mvhd), date patterns in
// the base name, filesystem mtime. Each source is validated before use; a
// file whose whole chain fails still gets a usable AttributeSet with no
// timestamp. Unsupported extensions return ErrUnsupportedType, unreadable
// files ErrUnreadableFile.
func (e *Extractor) Extract(path string) (AttributeSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return AttributeSet{}, services.Wrap(services.ErrUnreadableFile, "extract", "stat", path, err)
	}

	kind := KindForPath(path)
	if kind == KindUnknown {
		return AttributeSet{Kind: KindUnknown}, services.Wrap(services.ErrUnsupportedType, "extract", "classify", path, nil)
	}

	attrs := AttributeSet{Kind: kind}
	now := e.now()

	if ts, ok := e.metadataCaptureTime(path, kind, now); ok {
		attrs.CapturedAt = ts
		attrs.Source = SourceMetadata
		return attrs, nil
	}

	if ts, ok := filenameCaptureTime(filepath.Base(path), now); ok {
		attrs.CapturedAt = ts
		attrs.Source = SourceFilename
		return attrs, nil
	}

	if ts := info.ModTime(); validCaptureTime(ts, now) {
		attrs.CapturedAt = ts
		attrs.Source = SourceModTime
		return attrs, nil
	}

	e.logger.Debug("no valid capture time",
		logging.String(logging.FieldSource, path),
		logging.String("kind", string(kind)))
	return attrs, nil
}

func (e *Extractor) metadataCaptureTime(path string, kind Kind, now time.Time) (time.Time, bool) {
	switch kind {
	case KindImage:
		return imageCaptureTime(path, now)
	case KindVideo:
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := mp4Extensions[ext]; ok {
			return videoCaptureTime(path, now)
		}
	}
	return time.Time{}, false
}
