package media_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediasort/internal/logging"
	"mediasort/internal/media"
	"mediasort/internal/services"
	"mediasort/internal/testsupport"
)

func TestExtractImageUsesEXIF(t *testing.T) {
	dir := t.TempDir()
	taken := time.Date(2023, 8, 14, 9, 45, 12, 0, time.Local)
	path := testsupport.WriteJPEGWithEXIF(t, filepath.Join(dir, "holiday.jpg"), taken)

	extractor := media.NewExtractor(logging.NewNop())
	attrs, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if attrs.Kind != media.KindImage {
		t.Fatalf("unexpected kind: %q", attrs.Kind)
	}
	if attrs.Source != media.SourceMetadata {
		t.Fatalf("expected metadata source, got %q", attrs.Source)
	}
	if !attrs.CapturedAt.Equal(taken) {
		t.Fatalf("got %v want %v", attrs.CapturedAt, taken)
	}
}

func TestExtractVideoUsesMvhdCreationTime(t *testing.T) {
	dir := t.TempDir()
	created := time.Date(2022, 11, 3, 18, 20, 5, 0, time.UTC)
	path := testsupport.WriteMP4WithCreationTime(t, filepath.Join(dir, "clip.mp4"), created)

	extractor := media.NewExtractor(logging.NewNop())
	attrs, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if attrs.Kind != media.KindVideo {
		t.Fatalf("unexpected kind: %q", attrs.Kind)
	}
	if attrs.Source != media.SourceMetadata {
		t.Fatalf("expected metadata source, got %q", attrs.Source)
	}
	if !attrs.CapturedAt.Equal(created) {
		t.Fatalf("got %v want %v", attrs.CapturedAt, created)
	}
}

func TestExtractFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, filepath.Join(dir, "IMG_20240517-143059.jpg"), []byte("no exif here"))

	extractor := media.NewExtractor(logging.NewNop())
	attrs, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if attrs.Source != media.SourceFilename {
		t.Fatalf("expected filename source, got %q", attrs.Source)
	}
	want := time.Date(2024, 5, 17, 14, 30, 59, 0, time.Local)
	if !attrs.CapturedAt.Equal(want) {
		t.Fatalf("got %v want %v", attrs.CapturedAt, want)
	}
}

func TestExtractFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, filepath.Join(dir, "holiday.jpg"), []byte("plain jpeg"))
	mtime := time.Date(2021, 2, 3, 4, 5, 6, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	extractor := media.NewExtractor(logging.NewNop())
	attrs, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if attrs.Source != media.SourceModTime {
		t.Fatalf("expected modtime source, got %q", attrs.Source)
	}
	if !attrs.CapturedAt.Equal(mtime) {
		t.Fatalf("got %v want %v", attrs.CapturedAt, mtime)
	}
}

func TestExtractRejectsInvalidModTime(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, filepath.Join(dir, "old.jpg"), []byte("data"))
	mtime := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	extractor := media.NewExtractor(logging.NewNop())
	attrs, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if attrs.HasTimestamp() {
		t.Fatalf("expected no timestamp, got %v from %q", attrs.CapturedAt, attrs.Source)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), []byte("text"))

	extractor := media.NewExtractor(logging.NewNop())
	attrs, err := extractor.Extract(path)
	if !errors.Is(err, services.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if attrs.Kind != media.KindUnknown {
		t.Fatalf("unexpected kind: %q", attrs.Kind)
	}
}

func TestExtractMissingFile(t *testing.T) {
	extractor := media.NewExtractor(logging.NewNop())
	_, err := extractor.Extract(filepath.Join(t.TempDir(), "missing.jpg"))
	if !errors.Is(err, services.ErrUnreadableFile) {
		t.Fatalf("expected ErrUnreadableFile, got %v", err)
	}
}
