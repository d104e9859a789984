package image

// Codec decodes, resizes and encodes images on disk.
type Codec interface {
	// Width returns the natural width of the image at path. Zero with a nil
	// error means the width could not be determined.
	Width(path string) (int, error)
	// Resize scales src to width, keeping the aspect ratio, and writes the
	// result to dst, replacing any existing file.
	Resize(src string, width int, dst string) error
}
