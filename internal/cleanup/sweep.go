package cleanup

import (
	"os"
	"path/filepath"
	"time"

	"imgresize/internal/logging"
	"imgresize/internal/storage"
)

// StaleAfter is how old a leftover temp file must be before Sweep removes it.
const StaleAfter = time.Hour

// Sweep removes temp files older than maxAge that interrupted writes left in
// dir. Subdirectories are not entered.
func Sweep(dir string, maxAge time.Duration) (int, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		logging.Get("cleanup").Warnf("cleanup: read dir error: %v", err)
		return 0, 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	var removed int
	var bytes int64

	for _, entry := range entries {
		if entry.IsDir() || !storage.IsTempFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logging.Get("cleanup").Warnf("cleanup: failed to remove %s: %v", entry.Name(), err)
			continue
		}
		removed++
		bytes += info.Size()
	}

	if removed > 0 {
		logging.Get("cleanup").Infof("cleanup: removed %d stale temp files (%.2f MB)", removed, float64(bytes)/(1024*1024))
	}
	return removed, bytes, nil
}
