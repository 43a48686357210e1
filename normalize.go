package visdiff

import (
	"math"
	"math/bits"
)

// Options controls normalization policy.
type Options struct {
	// KeepZeroAlpha disables the opaque override for zero-valued alpha
	// samples. By default a pixel whose extracted alpha is 0 is forced to
	// 255: many ARGB visuals leave the alpha bits of opaque drawables at 0,
	// and without the override every such capture would read as fully
	// transparent. The override can mask legitimately transparent-black
	// pixels, so captures from sources with trustworthy alpha should set
	// KeepZeroAlpha.
	KeepZeroAlpha bool
}

// Normalize converts a raw packed-pixel frame into a canonical RGBA8 image
// of the same dimensions, using the default options.
//
// Normalization is a total, pure function over the frame: it performs no
// I/O, cannot fail, and copies every byte it needs, retaining no reference
// to f.Pix after returning. A zero-sized frame normalizes to an empty
// image. Callers that receive frames from an untrusted capture path should
// run f.Validate first; Normalize itself reads out-of-range pixels as 0.
func Normalize(f *RawFrame) *Image {
	return NormalizeOpts(f, Options{})
}

// NormalizeOpts is Normalize with explicit policy options.
func NormalizeOpts(f *RawFrame, opts Options) *Image {
	img := NewImage(f.Width, f.Height)
	if img.IsEmpty() {
		return img
	}

	alphaMask := f.Format.AlphaMask()
	redMask := f.Format.RedMask
	greenMask := f.Format.GreenMask
	blueMask := f.Format.BlueMask

	forEachRow(f.Width, f.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := img.Row(y)
			for x := 0; x < f.Width; x++ {
				pix := f.PixelAt(x, y)

				r := extractChannel(pix, redMask)
				g := extractChannel(pix, greenMask)
				b := extractChannel(pix, blueMask)

				a := uint8(255)
				if alphaMask != 0 {
					a = extractChannel(pix, alphaMask)
					if a == 0 && !opts.KeepZeroAlpha {
						// Opaque override, see Options.KeepZeroAlpha.
						a = 255
					}
				}

				off := x * 4
				row[off] = r
				row[off+1] = g
				row[off+2] = b
				row[off+3] = a
			}
		}
	})

	return img
}

// extractChannel pulls one channel out of a packed pixel value and rescales
// it from its native bit width to 0..255.
//
// The mask's trailing-zero count gives the shift; the shifted-down mask is
// the channel's native maximum. Both are bounded by the 32-bit storage, so a
// malformed mask cannot shift out of range. A zero mask yields 0.
func extractChannel(pix uint32, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	shifted := mask >> uint(shift)
	if shifted == 0 {
		return 0
	}
	v := (pix & mask) >> uint(shift)

	// Linear rescale [0, shifted] -> [0, 255], round to nearest, clamp.
	scaled := math.Round(float64(v) * 255.0 / float64(shifted))
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
