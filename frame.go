package visdiff

import (
	"errors"
	"fmt"
)

// Capture boundary errors. These cover the contract with the capture
// collaborator; normalization of a structurally valid frame never fails.
var (
	// ErrNoFrame is returned when the capture collaborator supplied no pixel
	// data for a non-empty frame.
	ErrNoFrame = errors.New("visdiff: no frame data")

	// ErrShortFrame is returned when the pixel buffer is smaller than the
	// frame geometry requires.
	ErrShortFrame = errors.New("visdiff: frame buffer too small")

	// ErrBadStride is returned when the row stride is smaller than one row
	// of packed pixels.
	ErrBadStride = errors.New("visdiff: stride too small for width")
)

// RawFrame is a hardware-native packed-pixel buffer plus the descriptor
// needed to interpret it.
//
// Pix is borrowed from the capture collaborator for the duration of a single
// Normalize call: visdiff reads it, copies what it needs, and never retains
// a reference past that call. Callers must not mutate Pix while a
// normalization over it is in flight.
type RawFrame struct {
	// Width and Height are the frame dimensions in pixels.
	Width  int
	Height int

	// Stride is the number of bytes from one row to the next. It may exceed
	// Width*BytesPerPixel when rows are padded.
	Stride int

	// Pix holds the packed pixel bytes, row-major.
	Pix []byte

	// Format describes the packed pixel encoding.
	Format PixelFormat
}

// Validate checks that the frame satisfies the capture contract: pixel data
// present for a non-empty geometry, stride covering a full row, and a buffer
// large enough for every addressed pixel. A zero-sized frame is valid and
// needs no buffer.
func (f *RawFrame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	if f.Pix == nil {
		return fmt.Errorf("%w: %dx%d frame", ErrNoFrame, f.Width, f.Height)
	}
	rowBytes := f.Width * f.Format.BytesPerPixel()
	if f.Stride < rowBytes {
		return fmt.Errorf("%w: stride %d, row needs %d", ErrBadStride, f.Stride, rowBytes)
	}
	need := (f.Height-1)*f.Stride + rowBytes
	if len(f.Pix) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortFrame, len(f.Pix), need)
	}
	return nil
}

// PixelAt reads the packed pixel value at (x, y), honoring the format's
// storage width and byte order. Out-of-bounds coordinates and reads past the
// end of the buffer return 0 rather than panicking, so a malformed frame
// degrades to black instead of crashing a test run.
func (f *RawFrame) PixelAt(x, y int) uint32 {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return 0
	}
	n := f.Format.BytesPerPixel()
	off := y*f.Stride + x*n
	if off < 0 || off+n > len(f.Pix) {
		return 0
	}
	p := f.Pix[off : off+n]

	var v uint32
	if f.Format.Order == BigEndian {
		for i := 0; i < n; i++ {
			v = v<<8 | uint32(p[i])
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(p[i])
		}
	}
	return v & f.Format.StorageMask()
}

// IsEmpty reports whether the frame has zero area.
func (f *RawFrame) IsEmpty() bool {
	return f.Width <= 0 || f.Height <= 0
}
