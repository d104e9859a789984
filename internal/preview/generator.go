package preview

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imgresize/internal/image"
	"imgresize/internal/logging"
	"imgresize/internal/storage"
)

// Source describes the image previews are generated from.
type Source struct {
	Path    string
	Width   int
	DestDir string
	Ext     string
}

// Image is an already stored upload.
type Image struct {
	Width       int
	Height      int
	Path        string
	Destination string
	Filename    string
}

// Request is a single resize.
type Request struct {
	Path  string
	Width int
	Dest  string
}

// Generator writes the previews of a source through a Codec.
type Generator struct {
	codec   image.Codec
	workers int
	log     *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers bounds how many previews are resized at once. The default of
// one resizes strictly in table order.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// NewGenerator returns a sequential generator unless WithWorkers says
// otherwise.
func NewGenerator(codec image.Codec, opts ...Option) *Generator {
	g := &Generator{
		codec:   codec,
		workers: 1,
		log:     logging.Get("preview"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate copies the source to full<ext> and writes one resized file per
// planned size. Every entry is attempted regardless of earlier failures;
// existing files are replaced.
func (g *Generator) Generate(src Source, sizes SizeTable) Report {
	plan := Plan(src.Width, sizes)

	fs, err := storage.NewFilesystem(src.DestDir)
	if err != nil {
		g.log.Errorw("destination unavailable", "dest", src.DestDir, "error", err)
		previews := make([]Outcome, len(plan))
		for i, s := range plan {
			previews[i] = Outcome{Name: s.Name, Width: s.Width, Err: err}
		}
		return Aggregate(Outcome{Name: Full, Err: err}, previews)
	}

	if src.Width <= 0 {
		g.log.Warnw("source width unknown, target widths used unchanged", "path", src.Path)
	}

	copyOutcome := g.copyFull(fs, src)

	previews := make([]Outcome, len(plan))
	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i, s := range plan {
		i, s := i, s
		eg.Go(func() error {
			previews[i] = g.resize(fs, src, s)
			return nil
		})
	}
	_ = eg.Wait()

	report := Aggregate(copyOutcome, previews)
	if n := report.Failures(); n > 0 {
		g.log.Errorw("can not create image previews", "errors", n)
	}
	return report
}

// GenerateImage runs Generate for a stored image. A record without a width
// is probed through the codec.
func (g *Generator) GenerateImage(img Image, sizes SizeTable) Report {
	return g.Generate(g.SourceFor(img), sizes)
}

func (g *Generator) SourceFor(img Image) Source {
	ext := FileExtension(img.Filename)
	if ext == "" {
		ext = FileExtension(img.Path)
	}

	width := img.Width
	if width <= 0 {
		probed, err := g.codec.Width(img.Path)
		if err != nil {
			g.log.Warnw("metadata width is undefined", "path", img.Path, "error", err)
		}
		width = probed
	}

	return Source{
		Path:    filepath.Clean(img.Path),
		Width:   width,
		DestDir: filepath.Clean(img.Destination),
		Ext:     ext,
	}
}

// CreatePreview resizes req.Path to req.Width and writes req.Dest. The width
// is not capped.
func (g *Generator) CreatePreview(req Request) error {
	if err := g.codec.Resize(req.Path, req.Width, req.Dest); err != nil {
		g.log.Errorw("error resize image", "path", req.Path, "width", req.Width, "error", err)
		return fmt.Errorf("resize %s: %w", req.Path, err)
	}
	return nil
}

func (g *Generator) copyFull(fs *storage.Filesystem, src Source) Outcome {
	path, err := fs.CopyFile(src.Path, Full, src.Ext)
	if err != nil {
		g.log.Errorw("can not copy source to full destination", "path", src.Path, "error", err)
		return Outcome{Name: Full, Path: fs.Path(Full, src.Ext), Err: err}
	}
	return Outcome{Name: Full, Width: src.Width, Path: path}
}

func (g *Generator) resize(fs *storage.Filesystem, src Source, s Size) Outcome {
	path := fs.Path(s.Name, src.Ext)
	if err := g.codec.Resize(src.Path, s.Width, path); err != nil {
		g.log.Errorw("error resize image", "name", s.Name, "width", s.Width, "path", src.Path, "error", err)
		return Outcome{Name: s.Name, Width: s.Width, Path: path, Err: fmt.Errorf("resize %s: %w", s.Name, err)}
	}
	g.log.Debugw("preview created", "name", s.Name, "width", s.Width, "dest", path)
	return Outcome{Name: s.Name, Width: s.Width, Path: path}
}
