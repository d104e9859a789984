package image

import (
	"bytes"
	"errors"
	"io"
	"os"
)

var ErrInvalidFormat = errors.New("invalid image format")

// Format is the MIME type of a sniffed image.
type Format string

const (
	FormatJPEG Format = "image/jpeg"
	FormatPNG  Format = "image/png"
	FormatGIF  Format = "image/gif"
	FormatWebP Format = "image/webp"
	FormatAVIF Format = "image/avif"
	FormatBMP  Format = "image/bmp"
	FormatTIFF Format = "image/tiff"
)

var formatExt = map[Format]string{
	FormatJPEG: ".jpg",
	FormatPNG:  ".png",
	FormatGIF:  ".gif",
	FormatWebP: ".webp",
	FormatAVIF: ".avif",
	FormatBMP:  ".bmp",
	FormatTIFF: ".tif",
}

// Ext returns the canonical file extension for the format, or "" if unknown.
func (f Format) Ext() string {
	return formatExt[f]
}

// headerSize is how many leading bytes sniff looks at.
const headerSize = 12

type signature struct {
	format Format
	match  func(header []byte) bool
}

func prefix(magic ...byte) func([]byte) bool {
	return func(h []byte) bool { return bytes.HasPrefix(h, magic) }
}

// Checked in order. BMP is last since two bytes is a weak signature.
var signatures = []signature{
	{FormatJPEG, prefix(0xFF, 0xD8, 0xFF)},
	{FormatPNG, prefix(0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A)},
	{FormatGIF, prefix('G', 'I', 'F', '8')},
	{FormatWebP, func(h []byte) bool {
		return bytes.HasPrefix(h, []byte("RIFF")) && string(h[8:12]) == "WEBP"
	}},
	{FormatAVIF, func(h []byte) bool {
		if string(h[4:8]) != "ftyp" {
			return false
		}
		switch string(h[8:12]) {
		case "avif", "avis", "mif1":
			return true
		}
		return false
	}},
	{FormatTIFF, prefix('I', 'I', 0x2A, 0x00)},
	{FormatTIFF, prefix('M', 'M', 0x00, 0x2A)},
	{FormatBMP, prefix('B', 'M')},
}

// DetectFile sniffs the format of the file at path from its header only.
// Files shorter than the header or with no known signature yield
// ErrInvalidFormat.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return "", ErrInvalidFormat
		}
		return "", err
	}
	return sniff(header)
}

func sniff(header []byte) (Format, error) {
	for _, s := range signatures {
		if s.match(header) {
			return s.format, nil
		}
	}
	return "", ErrInvalidFormat
}
