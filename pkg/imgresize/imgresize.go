// Package imgresize generates width-capped previews of a stored image for
// use inside an upload pipeline.
package imgresize

import (
	"imgresize/internal/image"
	"imgresize/internal/preview"
)

type (
	Image     = preview.Image
	Request   = preview.Request
	Report    = preview.Report
	Outcome   = preview.Outcome
	Size      = preview.Size
	SizeTable = preview.SizeTable
	Codec     = image.Codec
)

const Full = preview.Full

// DefaultSizes returns a fresh copy of the built-in size table.
func DefaultSizes() SizeTable {
	return preview.DefaultSizes()
}

type options struct {
	codec   Codec
	sizes   SizeTable
	workers int
}

type Option func(*options)

// WithCodec replaces the pure-Go codec.
func WithCodec(c Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithSizes replaces the default size table.
func WithSizes(sizes SizeTable) Option {
	return func(o *options) { o.sizes = sizes }
}

// WithWorkers resizes up to n previews at once.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func build(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = image.NewNativeCodec()
	}
	if o.sizes == nil {
		o.sizes = preview.DefaultSizes()
	}
	return o
}

// CreatePreview resizes one image to req.Width and writes req.Dest.
func CreatePreview(req Request, opts ...Option) error {
	o := build(opts)
	return preview.NewGenerator(o.codec).CreatePreview(req)
}

// CreateImagePreviews writes every preview of img into img.Destination. The
// returned error is nil only when the copy and every resize succeeded; the
// report is complete either way.
func CreateImagePreviews(img Image, opts ...Option) (Report, error) {
	o := build(opts)
	if err := o.sizes.Validate(); err != nil {
		return Report{}, err
	}
	report := preview.NewGenerator(o.codec, preview.WithWorkers(o.workers)).GenerateImage(img, o.sizes)
	return report, report.Err()
}
