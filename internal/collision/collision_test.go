package collision

import (
	"os"
	"path/filepath"
	"testing"

	"mediasort/internal/fingerprint"
)

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func fp(t *testing.T, path string) fingerprint.Fingerprint {
	t.Helper()
	got, err := fingerprint.Compute(path)
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestResolveFreeDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	write(t, src, []byte("image"))

	dec, err := NewResolver(false).Resolve(fp(t, src), filepath.Join(dir, "out", "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Action != Place {
		t.Fatalf("expected place, got %q", dec.Action)
	}
	if dec.Destination != filepath.Join(dir, "out", "a.jpg") {
		t.Fatalf("unexpected destination %q", dec.Destination)
	}
}

func TestResolveIdenticalContentSkips(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dest := filepath.Join(dir, "out", "a.jpg")
	write(t, src, []byte("same bytes"))
	write(t, dest, []byte("same bytes"))

	dec, err := NewResolver(false).Resolve(fp(t, src), dest)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Action != SkipDuplicate {
		t.Fatalf("expected skip-duplicate, got %q", dec.Action)
	}
}

func TestResolveIdenticalContentOverwritePolicy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dest := filepath.Join(dir, "out", "a.jpg")
	write(t, src, []byte("same bytes"))
	write(t, dest, []byte("same bytes"))

	dec, err := NewResolver(true).Resolve(fp(t, src), dest)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Action != Overwrite {
		t.Fatalf("expected overwrite, got %q", dec.Action)
	}
	if dec.Destination != dest {
		t.Fatalf("unexpected destination %q", dec.Destination)
	}
}

func TestResolveDifferentContentGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dest := filepath.Join(dir, "out", "a.jpg")
	write(t, src, []byte("new content"))
	write(t, dest, []byte("existing content"))

	dec, err := NewResolver(false).Resolve(fp(t, src), dest)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Action != RenameAndPlace {
		t.Fatalf("expected rename-and-place, got %q", dec.Action)
	}
	if dec.Destination != filepath.Join(dir, "out", "a_1.jpg") {
		t.Fatalf("unexpected destination %q", dec.Destination)
	}
}

func TestResolveSuffixLoopSkipsOccupiedCandidates(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	write(t, src, []byte("new content"))
	write(t, filepath.Join(dir, "out", "a.jpg"), []byte("first"))
	write(t, filepath.Join(dir, "out", "a_1.jpg"), []byte("second"))

	dec, err := NewResolver(false).Resolve(fp(t, src), filepath.Join(dir, "out", "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Action != RenameAndPlace {
		t.Fatalf("expected rename-and-place, got %q", dec.Action)
	}
	if dec.Destination != filepath.Join(dir, "out", "a_2.jpg") {
		t.Fatalf("unexpected destination %q", dec.Destination)
	}
}

func TestResolveFindsDuplicateUnderSuffixedName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	write(t, src, []byte("same bytes"))
	write(t, filepath.Join(dir, "out", "a.jpg"), []byte("different bytes"))
	write(t, filepath.Join(dir, "out", "a_1.jpg"), []byte("same bytes"))

	dec, err := NewResolver(false).Resolve(fp(t, src), filepath.Join(dir, "out", "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if dec.Action != SkipDuplicate {
		t.Fatalf("expected skip-duplicate, got %q", dec.Action)
	}
}
