package imgresize

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgresize/internal/preview"
	"imgresize/internal/testutil"
)

func TestCreatePreview(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "test.png", testutil.SamplePNG(300, 150))
	dst := filepath.Join(dir, "test-preview.png")

	require.NoError(t, CreatePreview(Request{Path: src, Width: 100, Dest: dst}))
	assert.Equal(t, 100, testutil.ImageWidth(t, dst))
}

func TestCreatePreview_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := CreatePreview(Request{Path: filepath.Join(dir, "missing.png"), Width: 100, Dest: filepath.Join(dir, "out.png")})

	assert.Error(t, err)
}

func TestCreateImagePreviews(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "abc123", testutil.SamplePNG(500, 250))
	dest := filepath.Join(dir, "previews")

	report, err := CreateImagePreviews(Image{Width: 500, Height: 250, Path: src, Destination: dest, Filename: "cat.png"})

	require.NoError(t, err)
	assert.True(t, report.OK())
	require.Len(t, report.Previews, 5)
	assert.Equal(t, 320, testutil.ImageWidth(t, filepath.Join(dest, "small.png")))
	assert.Equal(t, 500, testutil.ImageWidth(t, filepath.Join(dest, "desktop.png")))
	assert.FileExists(t, filepath.Join(dest, "full.png"))
}

func TestCreateImagePreviews_Options(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "photo.jpg", testutil.SampleJPEG(200, 200))
	dest := filepath.Join(dir, "out")

	report, err := CreateImagePreviews(
		Image{Path: src, Destination: dest},
		WithSizes(SizeTable{{Name: "thumb", Width: 50}, {Name: "card", Width: 150}}),
		WithWorkers(2),
	)

	require.NoError(t, err)
	assert.Equal(t, 200, report.Copy.Width)
	assert.Equal(t, 50, testutil.ImageWidth(t, filepath.Join(dest, "thumb.jpg")))
	assert.Equal(t, 150, testutil.ImageWidth(t, filepath.Join(dest, "card.jpg")))
	assert.FileExists(t, filepath.Join(dest, "full.jpg"))
}

func TestCreateImagePreviews_InvalidSizes(t *testing.T) {
	_, err := CreateImagePreviews(Image{}, WithSizes(SizeTable{{Name: "a", Width: 1}, {Name: "a", Width: 2}}))

	assert.ErrorIs(t, err, preview.ErrInvalidSizeTable)
}

type failingCodec struct{}

func (failingCodec) Width(string) (int, error) { return 1000, nil }

func (failingCodec) Resize(string, int, string) error { return errors.New("codec unavailable") }

func TestCreateImagePreviews_Failure(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "photo.png", testutil.SamplePNG(10, 10))

	report, err := CreateImagePreviews(Image{Width: 1000, Path: src, Destination: dir}, WithCodec(failingCodec{}))

	assert.Error(t, err)
	assert.Equal(t, 5, report.Failures())
	assert.Equal(t, 1, report.ExitCode())
	assert.FileExists(t, filepath.Join(dir, "full.png"))
}
