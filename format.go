package visdiff

import (
	"errors"
	"fmt"
	"math/bits"
)

// Descriptor validation errors.
var (
	// ErrBadBitsPerPixel is returned when bits-per-pixel is outside 1..32.
	ErrBadBitsPerPixel = errors.New("visdiff: bits per pixel outside 1..32")

	// ErrMaskOverlap is returned when two channel masks share bits.
	ErrMaskOverlap = errors.New("visdiff: channel masks overlap")

	// ErrMaskTooWide is returned when the combined channel masks do not fit
	// within the pixel's storage width.
	ErrMaskTooWide = errors.New("visdiff: channel masks wider than pixel storage")
)

// ByteOrder is the byte order of packed pixel values within a raw frame.
type ByteOrder uint8

const (
	// LittleEndian stores the least significant byte of a pixel first.
	LittleEndian ByteOrder = iota

	// BigEndian stores the most significant byte of a pixel first.
	BigEndian
)

// String returns a string representation of the byte order.
func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return "unknown"
	}
}

// PixelFormat describes how one packed pixel of a raw frame encodes its
// channels. It mirrors what a capture backend reports about a drawable:
// storage width, byte order, per-channel bit masks, and the drawable depth
// that tells alpha-carrying visuals apart from plain RGB ones.
//
// A zero mask for a color channel yields 0 for that channel on
// normalization, which lets grayscale or unknown layouts collapse cleanly.
type PixelFormat struct {
	// BitsPerPixel is the storage width of one packed pixel (1..32).
	BitsPerPixel int

	// Order is the byte order of the packed pixel bytes.
	Order ByteOrder

	// RedMask, GreenMask, BlueMask select the bits of each color channel
	// within the packed pixel value.
	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32

	// HasAlpha reports whether the source visual carries an alpha channel.
	HasAlpha bool

	// Depth is the drawable depth in bits. Depths of 24 or less are treated
	// as alpha-free even when HasAlpha is set, matching how X visuals report
	// XRGB surfaces.
	Depth int
}

// Common capture formats.
var (
	// FormatXRGB32 is 32-bit XRGB at depth 24, the usual TrueColor visual.
	FormatXRGB32 = PixelFormat{
		BitsPerPixel: 32,
		Order:        LittleEndian,
		RedMask:      0x00FF0000,
		GreenMask:    0x0000FF00,
		BlueMask:     0x000000FF,
		Depth:        24,
	}

	// FormatARGB32 is 32-bit ARGB at depth 32 (composited windows).
	FormatARGB32 = PixelFormat{
		BitsPerPixel: 32,
		Order:        LittleEndian,
		RedMask:      0x00FF0000,
		GreenMask:    0x0000FF00,
		BlueMask:     0x000000FF,
		HasAlpha:     true,
		Depth:        32,
	}

	// FormatBGRA32 is 32-bit BGRA at depth 32: memory bytes B,G,R,A, so the
	// big-endian packed value reads B<<24 | G<<16 | R<<8 | A.
	FormatBGRA32 = PixelFormat{
		BitsPerPixel: 32,
		Order:        BigEndian,
		RedMask:      0x0000FF00,
		GreenMask:    0x00FF0000,
		BlueMask:     0xFF000000,
		HasAlpha:     true,
		Depth:        32,
	}

	// FormatRGB565 is 16-bit RGB565, common on embedded framebuffers.
	FormatRGB565 = PixelFormat{
		BitsPerPixel: 16,
		Order:        LittleEndian,
		RedMask:      0xF800,
		GreenMask:    0x07E0,
		BlueMask:     0x001F,
		Depth:        16,
	}
)

// BytesPerPixel returns the number of bytes occupied by one packed pixel.
func (f PixelFormat) BytesPerPixel() int {
	return (f.BitsPerPixel + 7) / 8
}

// StorageMask returns the mask covering every bit of the pixel's storage.
func (f PixelFormat) StorageMask() uint32 {
	if f.BitsPerPixel >= 32 {
		return ^uint32(0)
	}
	if f.BitsPerPixel <= 0 {
		return 0
	}
	return 1<<uint(f.BitsPerPixel) - 1
}

// AlphaMask derives the alpha channel mask. Alpha occupies the non-RGB bits
// within the pixel's storage, but only for visuals whose depth exceeds 24;
// anything shallower is opaque by construction and yields 0.
func (f PixelFormat) AlphaMask() uint32 {
	if !f.HasAlpha || f.Depth <= 24 {
		return 0
	}
	rgb := f.RedMask | f.GreenMask | f.BlueMask
	return f.StorageMask() &^ rgb
}

// Validate checks the descriptor's structural invariants: bits-per-pixel in
// range, channel masks pairwise disjoint, and the combined mask width not
// exceeding the storage width.
//
// Normalization itself never requires a valid descriptor; channel extraction
// clamps shifts and widths to the 32-bit storage so a malformed mask cannot
// produce out-of-range results. Validate exists so the capture boundary can
// reject a nonsensical descriptor early with a precise reason.
func (f PixelFormat) Validate() error {
	if f.BitsPerPixel < 1 || f.BitsPerPixel > 32 {
		return fmt.Errorf("%w: %d", ErrBadBitsPerPixel, f.BitsPerPixel)
	}
	if f.RedMask&f.GreenMask != 0 || f.RedMask&f.BlueMask != 0 || f.GreenMask&f.BlueMask != 0 {
		return fmt.Errorf("%w: red=%#x green=%#x blue=%#x", ErrMaskOverlap,
			f.RedMask, f.GreenMask, f.BlueMask)
	}
	combined := f.RedMask | f.GreenMask | f.BlueMask
	if width := bits.OnesCount32(combined); width > f.BitsPerPixel {
		return fmt.Errorf("%w: %d mask bits in %d-bit pixel", ErrMaskTooWide,
			width, f.BitsPerPixel)
	}
	if combined&^f.StorageMask() != 0 {
		return fmt.Errorf("%w: masks extend past %d-bit storage", ErrMaskTooWide,
			f.BitsPerPixel)
	}
	return nil
}

// String returns a compact description of the format.
func (f PixelFormat) String() string {
	alpha := "no-alpha"
	if f.AlphaMask() != 0 {
		alpha = fmt.Sprintf("alpha=%#x", f.AlphaMask())
	}
	return fmt.Sprintf("%dbpp %s depth=%d r=%#x g=%#x b=%#x %s",
		f.BitsPerPixel, f.Order, f.Depth, f.RedMask, f.GreenMask, f.BlueMask, alpha)
}
