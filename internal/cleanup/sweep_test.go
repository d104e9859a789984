package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAged(t *testing.T, dir, name string, size int, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	mod := time.Now().Add(-age)
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestSweep_RemovesStaleTempFiles(t *testing.T) {
	dir := t.TempDir()
	stale := writeAged(t, dir, ".desktop.png.tmp-111", 100, 2*time.Hour)
	fresh := writeAged(t, dir, ".mobile.png.tmp-222", 100, time.Minute)
	preview := writeAged(t, dir, "tablet.png", 100, 48*time.Hour)

	removed, bytes, err := Sweep(dir, StaleAfter)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if bytes != 100 {
		t.Errorf("bytes = %d, want 100", bytes)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale temp file should be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh temp file should be kept")
	}
	if _, err := os.Stat(preview); err != nil {
		t.Error("preview should never be removed")
	}
}

func TestSweep_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, ".old.tmp-dir")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeAged(t, sub, ".inner.png.tmp-1", 10, 3*time.Hour)

	removed, _, err := Sweep(dir, StaleAfter)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestSweep_MissingDir(t *testing.T) {
	removed, _, err := Sweep(filepath.Join(t.TempDir(), "missing"), StaleAfter)
	if err != nil {
		t.Errorf("Sweep(missing) error = %v, want nil", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestSweep_NotADirectory(t *testing.T) {
	file := writeAged(t, t.TempDir(), "plain", 1, 0)

	if _, _, err := Sweep(file, StaleAfter); err == nil {
		t.Error("expected error for a regular file")
	}
}
