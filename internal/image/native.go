package image

import (
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP sources decode; output stays in imaging's formats

	"imgresize/internal/storage"
)

// ErrUnsupportedOutput is returned when the destination format has no
// pure-Go encoder, e.g. WebP or AVIF.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// NativeCodec implements Codec in pure Go, without libvips.
type NativeCodec struct {
	Quality int
}

func NewNativeCodec() *NativeCodec {
	return &NativeCodec{Quality: 90}
}

func (c *NativeCodec) Width(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cfg, _, err := stdimage.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("get size: %w", err)
	}
	return cfg.Width, nil
}

func (c *NativeCodec) Resize(src string, width int, dst string) error {
	format, err := c.outputFormat(src, dst)
	if err != nil {
		return err
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if width <= 0 {
		width = img.Bounds().Dx()
	}
	resized := imaging.Resize(img, width, 0, imaging.Lanczos)

	return storage.WriteFileAtomic(dst, func(w io.Writer) error {
		if err := imaging.Encode(w, resized, format, imaging.JPEGQuality(c.Quality)); err != nil {
			return fmt.Errorf("encode %d: %w", width, err)
		}
		return nil
	})
}

// outputFormat picks the encoder from dst's extension, or from the sniffed
// format of src when dst has none.
func (c *NativeCodec) outputFormat(src, dst string) (imaging.Format, error) {
	ext := filepath.Ext(dst)
	if ext == "" {
		sniffed, err := DetectFile(src)
		if err != nil {
			return 0, fmt.Errorf("detect format: %w", err)
		}
		ext = sniffed.Ext()
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w %q for %s", ErrUnsupportedOutput, ext, filepath.Base(dst))
	}
	return format, nil
}
