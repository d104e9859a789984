// Package vips implements the image codec on libvips through bimg.
package vips

import (
	"fmt"
	"io"

	"github.com/h2non/bimg"

	"imgresize/internal/storage"
)

// Codec resizes with libvips, keeping the source's encoding.
type Codec struct {
	Quality int
}

func New() *Codec {
	return &Codec{Quality: 90}
}

func GetSize(data []byte) (int, int, error) {
	size, err := bimg.NewImage(data).Size()
	if err != nil {
		return 0, 0, fmt.Errorf("get size: %w", err)
	}
	return size.Width, size.Height, nil
}

func (c *Codec) Width(path string) (int, error) {
	data, err := bimg.Read(path)
	if err != nil {
		return 0, err
	}
	width, _, err := GetSize(data)
	return width, err
}

func (c *Codec) Resize(src string, width int, dst string) error {
	data, err := bimg.Read(src)
	if err != nil {
		return err
	}

	processed, err := c.ResizeToWidth(data, width)
	if err != nil {
		return err
	}
	err = storage.WriteFileAtomic(dst, func(w io.Writer) error {
		_, err := w.Write(processed)
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// ResizeToWidth scales to width; zero keeps the natural width.
func (c *Codec) ResizeToWidth(data []byte, width int) ([]byte, error) {
	opts := bimg.Options{
		Width:         width,
		Quality:       c.Quality,
		StripMetadata: true,
	}

	processed, err := bimg.NewImage(data).Process(opts)
	if err != nil {
		return nil, fmt.Errorf("resize to %d: %w", width, err)
	}
	return processed, nil
}
