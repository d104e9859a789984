package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"imgresize/internal/config"
	"imgresize/internal/image"
	"imgresize/internal/logging"
	"imgresize/internal/preview"
	"imgresize/internal/storage"
)

const (
	ErrCodeMissingPath      = "missing_path"
	ErrCodeSourceUnreadable = "source_unreadable"
	ErrCodeDestUnavailable  = "dest_unavailable"
)

// DefaultOut is the destination used when --out is not given.
const DefaultOut = "./imgresize"

// Error is a configuration error raised before any preview is generated.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingPath:
		return "source image path not set"
	case ErrCodeSourceUnreadable:
		return fmt.Sprintf("source file %s is missing or unreadable: %v", e.Path, e.Err)
	case ErrCodeDestUnavailable:
		return fmt.Sprintf("can not create directory or directory is missing %s: %v", e.Path, e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code, or "" if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

type Flags struct {
	Path string
	Out  string
}

// Options is everything Generate needs.
type Options struct {
	Source preview.Source
	Sizes  preview.SizeTable
}

// Resolve turns flags into Options: it loads the size table from the project
// file, probes the source width and creates the destination directory.
func Resolve(cwd string, flags Flags, cfg *config.Config, codec image.Codec) (Options, error) {
	log := logging.Get("cli")

	sizes := loadSizes(resolvePath(cwd, cfg.ProjectFile))

	if flags.Path == "" {
		return Options{}, &Error{Code: ErrCodeMissingPath}
	}
	sourcePath := resolvePath(cwd, flags.Path)

	format, err := image.DetectFile(sourcePath)
	switch {
	case errors.Is(err, image.ErrInvalidFormat):
		log.Warnw("unrecognized image signature", "path", sourcePath)
	case err != nil:
		return Options{}, &Error{Code: ErrCodeSourceUnreadable, Path: sourcePath, Err: err}
	}

	width, err := codec.Width(sourcePath)
	if err != nil {
		return Options{}, &Error{Code: ErrCodeSourceUnreadable, Path: sourcePath, Err: err}
	}
	if width <= 0 {
		log.Warnw("metadata width is undefined", "path", sourcePath, "format", format)
	}

	out := flags.Out
	if out == "" {
		out = DefaultOut
	}
	destination := resolvePath(cwd, out)
	if _, err := storage.NewFilesystem(destination); err != nil {
		return Options{}, &Error{Code: ErrCodeDestUnavailable, Path: destination, Err: err}
	}

	return Options{
		Source: preview.Source{
			Path:    sourcePath,
			Width:   width,
			DestDir: destination,
			Ext:     preview.FileExtension(sourcePath),
		},
		Sizes: sizes,
	}, nil
}

// loadSizes never fails: any problem with the project file falls back to
// the default table.
func loadSizes(path string) preview.SizeTable {
	log := logging.Get("cli")

	sizes, err := config.LoadSizeTable(path)
	switch {
	case err == nil:
		return sizes
	case errors.Is(err, config.ErrNoSizeTable):
		log.Warnw(`property "imgresize" is missing on project file, used default sizes`, "file", path)
	case errors.Is(err, os.ErrNotExist):
		log.Warnw("project file is missing, used default sizes", "file", path)
	default:
		log.Warnw("project file is invalid, used default sizes", "file", path, "error", err)
	}
	return preview.DefaultSizes()
}

// resolvePath takes any path containing a colon (drive letter or URL-like)
// as given, cleans absolute paths and joins the rest to cwd.
func resolvePath(cwd, p string) string {
	if strings.Contains(p, ":") {
		return p
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}
