package visdiff

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Golden files are written as PNG, but regenerated suites migrated from
	// other tooling may carry BMP or TIFF references; registering the
	// decoders lets Load accept them transparently.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrBadImage is returned when a golden file is corrupt or uses an
	// encoding no registered decoder understands.
	ErrBadImage = errors.New("visdiff: corrupt or unsupported image")

	// ErrEmptyData is returned when decoding an empty byte slice.
	ErrEmptyData = errors.New("visdiff: empty image data")
)

// Load reads an image from the given file path and normalizes it to RGBA8.
//
// The format is detected from the content; PNG, BMP, and TIFF are accepted.
// Grayscale, paletted, and 16-bit encodings are expanded to RGBA8 on load.
// Filesystem failures are returned wrapped (errors.Is against fs errors
// works); decode failures wrap ErrBadImage.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("visdiff: open golden: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadBytes decodes an image from a byte slice, auto-detecting the format.
func LoadBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format, and
// normalizes it to RGBA8.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return FromStdImage(img), nil
}

// Save writes the image to path as PNG: 8 bits per channel, RGBA, no
// interlacing. The encoding is lossless, so a later Load reproduces every
// pixel's RGBA quadruple exactly.
func (m *Image) Save(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("visdiff: create golden: %w", err)
	}

	if err := m.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("visdiff: close golden: %w", err)
	}
	return nil
}

// EncodePNG encodes the image as PNG to w.
func (m *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, m.ToStdImage()); err != nil {
		return fmt.Errorf("visdiff: encode PNG: %w", err)
	}
	return nil
}

// FromStdImage converts a standard library image into a canonical Image.
//
// NRGBA and RGBA inputs take a row-copy fast path. Everything else goes
// through color.NRGBAModel, which preserves the straight-alpha channel
// values instead of round-tripping through premultiplied 16-bit color.
func FromStdImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := NewImage(width, height)
	if out.IsEmpty() {
		return out
	}

	// Pix of the concrete types starts at Rect.Min, so row y begins at
	// y*Stride regardless of the bounds offset.
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			srcStart := y * src.Stride
			copy(out.Row(y), src.Pix[srcStart:srcStart+width*4])
		}
		return out

	case *image.RGBA:
		// Premultiplied storage; for the fully opaque images capture
		// produces, premultiplied equals straight, and a color-model
		// conversion would lose the same precision anyway.
		for y := 0; y < height; y++ {
			srcStart := y * src.Stride
			copy(out.Row(y), src.Pix[srcStart:srcStart+width*4])
		}
		return out
	}

	for y := 0; y < height; y++ {
		row := out.Row(y)
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := x * 4
			row[off] = c.R
			row[off+1] = c.G
			row[off+2] = c.B
			row[off+3] = c.A
		}
	}
	return out
}

// ToStdImage converts the canonical image to *image.NRGBA. The pixel data
// is copied; mutating the result does not affect the Image.
func (m *Image) ToStdImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	copy(out.Pix, m.pix)
	return out
}
