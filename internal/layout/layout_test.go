package layout

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mediasort/internal/media"
	"mediasort/internal/services"
)

func imageAttrs(ts time.Time) media.AttributeSet {
	return media.AttributeSet{Kind: media.KindImage, CapturedAt: ts, Source: media.SourceMetadata}
}

func TestParseStrategy(t *testing.T) {
	for _, value := range []string{"by-type-and-date", "by-type-only", "flat-by-date", " By-Type-Only "} {
		if _, err := ParseStrategy(value); err != nil {
			t.Fatalf("ParseStrategy(%q) returned error: %v", value, err)
		}
	}
	_, err := ParseStrategy("by-camera")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestResolveByTypeAndDate(t *testing.T) {
	r := NewResolver(ByTypeAndDate, false)
	ts := time.Date(2024, 5, 17, 14, 30, 59, 0, time.UTC)

	got := r.Resolve("holiday.jpg", imageAttrs(ts))
	want := filepath.Join("image", "2024", "05", "holiday.jpg")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got = r.Resolve("clip.mp4", media.AttributeSet{Kind: media.KindVideo, CapturedAt: ts, Source: media.SourceMetadata})
	want = filepath.Join("video", "2024", "05", "clip.mp4")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveByTypeOnly(t *testing.T) {
	r := NewResolver(ByTypeOnly, false)
	got := r.Resolve("holiday.jpg", imageAttrs(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)))
	want := filepath.Join("image", "holiday.jpg")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveFlatByDate(t *testing.T) {
	r := NewResolver(FlatByDate, false)
	got := r.Resolve("holiday.jpg", imageAttrs(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)))
	want := filepath.Join("2024-05", "holiday.jpg")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveUnknownBucket(t *testing.T) {
	r := NewResolver(ByTypeAndDate, false)

	got := r.Resolve("mystery.bin", media.AttributeSet{Kind: media.KindUnknown})
	want := filepath.Join("unknown", "mystery.bin")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	// Known kind but no usable timestamp also lands in unknown.
	got = r.Resolve("undated.jpg", media.AttributeSet{Kind: media.KindImage})
	want = filepath.Join("unknown", "undated.jpg")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveRenameFiles(t *testing.T) {
	r := NewResolver(ByTypeAndDate, true)
	ts := time.Date(2024, 5, 17, 14, 30, 59, 0, time.UTC)

	got := r.Resolve("IMG_1234.JPG", imageAttrs(ts))
	want := filepath.Join("image", "2024", "05", "img_20240517_143059.jpg")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got = r.Resolve("clip.mp4", media.AttributeSet{Kind: media.KindVideo, CapturedAt: ts, Source: media.SourceMetadata})
	want = filepath.Join("video", "2024", "05", "vid_20240517_143059.mp4")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveRenameDropsMidnightTime(t *testing.T) {
	r := NewResolver(ByTypeAndDate, true)
	ts := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)

	got := r.Resolve("scan.jpg", imageAttrs(ts))
	want := filepath.Join("image", "2024", "05", "img_20240517.jpg")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
