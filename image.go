package visdiff

import "errors"

// ErrOutOfBounds is returned when pixel coordinates fall outside an image.
var ErrOutOfBounds = errors.New("visdiff: coordinates out of bounds")

// Pixel is one RGBA8 sample.
type Pixel struct {
	R, G, B, A uint8
}

// Image is the canonical, hardware-independent RGBA8 buffer every captured
// frame is normalized into and every golden file decodes to.
//
// Pixels are stored row-major, 4 bytes per pixel, with no row padding:
// len(pix) == Width*Height*4. A zero-sized Image is valid and empty.
//
// Once produced by normalization or decoding, an Image is treated as an
// immutable value for the remainder of a test evaluation; comparison and
// diff rendering only read it, so the same Image may be shared across
// goroutines freely.
type Image struct {
	width  int
	height int
	pix    []byte
}

// NewImage creates an image of the given dimensions with all pixels set to
// transparent black. Non-positive dimensions produce an empty image.
func NewImage(width, height int) *Image {
	if width <= 0 || height <= 0 {
		return &Image{}
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}
}

// FromBGRA creates an image from tightly packed BGRA bytes, the layout most
// little-endian 32-bit capture paths hand back.
func FromBGRA(data []byte, width, height int) *Image {
	img := NewImage(width, height)
	for i := 0; i+3 < len(data) && i+3 < len(img.pix); i += 4 {
		img.pix[i] = data[i+2]
		img.pix[i+1] = data[i+1]
		img.pix[i+2] = data[i]
		img.pix[i+3] = data[i+3]
	}
	return img
}

// FromRGB creates an opaque image from tightly packed RGB bytes.
func FromRGB(data []byte, width, height int) *Image {
	img := NewImage(width, height)
	n := width * height
	for i := 0; i < n && i*3+2 < len(data); i++ {
		img.pix[i*4] = data[i*3]
		img.pix[i*4+1] = data[i*3+1]
		img.pix[i*4+2] = data[i*3+2]
		img.pix[i*4+3] = 255
	}
	return img
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Stride returns the number of bytes per row.
func (m *Image) Stride() int { return m.width * 4 }

// Bounds returns the image dimensions as (width, height).
func (m *Image) Bounds() (int, int) { return m.width, m.height }

// Pix returns the raw RGBA pixel data. The slice aliases the image's
// storage; callers that treat the image as immutable must not write to it.
func (m *Image) Pix() []byte { return m.pix }

// IsEmpty reports whether the image has zero area.
func (m *Image) IsEmpty() bool { return m.width == 0 || m.height == 0 }

// Row returns the pixel bytes of row y, or nil if y is out of bounds.
func (m *Image) Row(y int) []byte {
	if y < 0 || y >= m.height {
		return nil
	}
	start := y * m.width * 4
	return m.pix[start : start+m.width*4]
}

// At returns the pixel at (x, y). Out-of-bounds coordinates return the zero
// Pixel.
func (m *Image) At(x, y int) Pixel {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Pixel{}
	}
	off := (y*m.width + x) * 4
	return Pixel{m.pix[off], m.pix[off+1], m.pix[off+2], m.pix[off+3]}
}

// Set writes the pixel at (x, y). Returns ErrOutOfBounds when the
// coordinates fall outside the image.
func (m *Image) Set(x, y int, p Pixel) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return ErrOutOfBounds
	}
	off := (y*m.width + x) * 4
	m.pix[off] = p.R
	m.pix[off+1] = p.G
	m.pix[off+2] = p.B
	m.pix[off+3] = p.A
	return nil
}

// Fill sets every pixel to p.
func (m *Image) Fill(p Pixel) {
	for i := 0; i < len(m.pix); i += 4 {
		m.pix[i] = p.R
		m.pix[i+1] = p.G
		m.pix[i+2] = p.B
		m.pix[i+3] = p.A
	}
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	out := &Image{width: m.width, height: m.height}
	if len(m.pix) > 0 {
		out.pix = make([]byte, len(m.pix))
		copy(out.pix, m.pix)
	}
	return out
}

// Equal reports whether two images have identical dimensions and pixels.
func (m *Image) Equal(other *Image) bool {
	if m.width != other.width || m.height != other.height {
		return false
	}
	if len(m.pix) != len(other.pix) {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}
