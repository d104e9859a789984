package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem is a destination directory for generated previews.
type Filesystem struct {
	baseDir string
}

func NewFilesystem(baseDir string) (*Filesystem, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create destination dir: %w", err)
	}
	return &Filesystem{baseDir: baseDir}, nil
}

func (fs *Filesystem) Dir() string {
	return fs.baseDir
}

// Path returns path for a preview: <dir>/<name><ext>
// e.g., imgresize/desktop.png
func (fs *Filesystem) Path(name, ext string) string {
	return filepath.Join(fs.baseDir, sanitizeName(name)+ext)
}

// CopyFile copies src byte for byte to <dir>/<name><ext>, replacing any
// existing file.
func (fs *Filesystem) CopyFile(src, name, ext string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	path := fs.Path(name, ext)
	err = WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("copy to %s: %w", path, err)
	}
	return path, nil
}

func (fs *Filesystem) GetDiskUsage() (int64, error) {
	var total int64
	err := filepath.Walk(fs.baseDir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

const tempMarker = ".tmp-"

// IsTempFile reports whether name is a temp file left by WriteFileAtomic.
func IsTempFile(name string) bool {
	return strings.HasPrefix(name, ".") && strings.Contains(name, tempMarker)
}

// WriteFileAtomic writes through a temp file in the target directory and
// renames it over path.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+tempMarker+"*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." || name == ".." {
		return "preview"
	}
	return name
}
