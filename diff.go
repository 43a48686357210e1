package visdiff

// Sentinel colors for regions present in only one input image.
var (
	onlyInB   = Pixel{G: 255, A: 255} // opaque green
	onlyInA   = Pixel{B: 255, A: 255} // opaque blue
	outOfBoth = Pixel{A: 255}         // opaque black
)

// RenderDiff produces a visualization of the per-pixel disagreement between
// a and b. The inputs may have different dimensions; the canvas spans the
// larger of each.
//
// Coordinates covered by only one image are painted with a sentinel: green
// where only b has the pixel, blue where only a does, black where neither
// does. Where both images have the pixel, a difference above tolerance is
// painted as a red-tinted highlight whose intensity scales with the
// difference magnitude; matching pixels show a's content with every channel
// halved, so intact regions stay recognizable as context.
func RenderDiff(a, b *Image, tolerance uint8) *Image {
	width := a.width
	if b.width > width {
		width = b.width
	}
	height := a.height
	if b.height > height {
		height = b.height
	}

	diff := NewImage(width, height)
	if diff.IsEmpty() {
		return diff
	}

	forEachRow(width, height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := diff.Row(y)
			for x := 0; x < width; x++ {
				row4 := row[x*4 : x*4+4 : x*4+4]
				inA := x < a.width && y < a.height
				inB := x < b.width && y < b.height

				switch {
				case !inA && !inB:
					putPixel(row4, outOfBoth)
				case !inA:
					putPixel(row4, onlyInB)
				case !inB:
					putPixel(row4, onlyInA)
				default:
					pa := a.At(x, y)
					pb := b.At(x, y)
					maxDiff := pixelDiff(pa, pb)
					if maxDiff > tolerance {
						// Red highlight, intensity proportional to the
						// difference, clamped to the displayable range.
						intensity := int(maxDiff) * 2
						if intensity > 255 {
							intensity = 255
						}
						fade := uint8(255 - intensity)
						putPixel(row4, Pixel{R: 255, G: fade, B: fade, A: 255})
					} else {
						putPixel(row4, Pixel{R: pa.R / 2, G: pa.G / 2, B: pa.B / 2, A: 255})
					}
				}
			}
		}
	})

	return diff
}

func putPixel(dst []byte, p Pixel) {
	dst[0] = p.R
	dst[1] = p.G
	dst[2] = p.B
	dst[3] = p.A
}

// pixelDiff returns the largest absolute channel difference between two
// pixels, the same per-pixel measure the comparison engine uses.
func pixelDiff(a, b Pixel) uint8 {
	d := channelDiff(a.R, b.R)
	if g := channelDiff(a.G, b.G); g > d {
		d = g
	}
	if bd := channelDiff(a.B, b.B); bd > d {
		d = bd
	}
	if ad := channelDiff(a.A, b.A); ad > d {
		d = ad
	}
	return d
}
