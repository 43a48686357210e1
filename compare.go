package visdiff

import "fmt"

// Result quantifies the disagreement between two canonical images.
//
// A Result is purely derived from the two inputs and the comparison policy;
// it carries no persistent state. A mismatch is a legitimate outcome, not an
// error: dimension mismatches and differing pixels are reported here, never
// as a returned error.
type Result struct {
	// Match is the pass/fail verdict under the policy that produced the
	// Result.
	Match bool

	// TotalPixels is width*height of the compared images.
	TotalPixels uint64

	// DifferentPixels counts pixels whose largest channel difference
	// exceeded the policy's per-pixel cutoff.
	DifferentPixels uint64

	// DifferencePercent is 100 * DifferentPixels / TotalPixels.
	DifferencePercent float64

	// MaxChannelDiff is the largest absolute channel difference observed
	// across all pixels, not only the differing ones.
	MaxChannelDiff float64

	// AvgChannelDiff is the mean absolute difference across every examined
	// channel value (4 per pixel).
	AvgChannelDiff float64

	// Message is a human-readable diagnostic.
	Message string
}

// CompareExact compares two images pixel for pixel. Equivalent to
// CompareFuzzy with tolerance 0.
func CompareExact(a, b *Image) Result {
	return CompareFuzzy(a, b, 0)
}

// CompareFuzzy compares two images under a per-channel tolerance.
//
// For every pixel position the four channel differences are taken
// independently; the pixel counts as different iff the largest of them
// strictly exceeds tolerance. Match is true iff no pixel differs. The
// difference statistics (max, average) cover every channel of every pixel
// regardless of tolerance.
//
// Images of different dimensions never match and produce no pixel
// statistics; a size change is itself a meaningful regression failure.
// Two empty images match.
func CompareFuzzy(a, b *Image, tolerance uint8) Result {
	r := compareAll(a, b, tolerance)
	if r.TotalPixels == 0 {
		return r
	}

	if r.Match {
		r.Message = "images match"
		if tolerance > 0 {
			r.Message += fmt.Sprintf(" (within tolerance %d)", tolerance)
		}
	} else {
		r.Message = fmt.Sprintf("%d pixels differ (%.2f%%), max channel diff: %.0f",
			r.DifferentPixels, r.DifferencePercent, r.MaxChannelDiff)
	}
	return r
}

// CompareFuzzyPercent compares two images under a breadth threshold: the
// comparison passes as long as no more than maxDiffPercent percent of the
// pixels differ at all, regardless of how far the differing pixels are off.
//
// This is a deliberately distinct policy from CompareFuzzy. CompareFuzzy
// bounds the magnitude of any single pixel's difference; CompareFuzzyPercent
// bounds only the count of non-identical pixels. Statistics are collected
// for every non-identical pixel without per-pixel filtering.
func CompareFuzzyPercent(a, b *Image, maxDiffPercent float64) Result {
	r := compareAll(a, b, 0)
	if r.TotalPixels == 0 {
		return r
	}

	r.Match = r.DifferencePercent <= maxDiffPercent

	switch {
	case r.Match && r.DifferentPixels > 0:
		r.Message = fmt.Sprintf("%d pixels differ (%.2f%%) - within %.2f%% threshold",
			r.DifferentPixels, r.DifferencePercent, maxDiffPercent)
	case r.Match:
		r.Message = "images match"
	default:
		r.Message = fmt.Sprintf("%d pixels differ (%.2f%%), max channel diff: %.0f",
			r.DifferentPixels, r.DifferencePercent, r.MaxChannelDiff)
	}
	return r
}

// rowStat is one row's partial reduction. Rows are independent, so each
// parallel worker writes only its own rows' entries.
type rowStat struct {
	diff uint64 // pixels over tolerance
	sum  uint64 // sum of all channel diffs
	max  uint8  // largest channel diff
}

// compareAll runs the per-pixel comparison and fills in everything except
// the message. Match is set for the plain tolerance policy; callers with a
// different policy override it.
func compareAll(a, b *Image, tolerance uint8) Result {
	var r Result

	if a.width != b.width || a.height != b.height {
		r.Message = fmt.Sprintf("dimension mismatch: %dx%d vs %dx%d",
			a.width, a.height, b.width, b.height)
		return r
	}

	if a.IsEmpty() || b.IsEmpty() {
		r.Match = a.IsEmpty() && b.IsEmpty()
		if r.Match {
			r.Message = "both images empty"
		} else {
			r.Message = "one image empty"
		}
		return r
	}

	width, height := a.width, a.height

	stats := make([]rowStat, height)
	forEachRow(width, height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowA := a.Row(y)
			rowB := b.Row(y)
			s := &stats[y]
			for x := 0; x < width; x++ {
				off := x * 4
				maxDiff := uint8(0)
				for c := 0; c < 4; c++ {
					d := channelDiff(rowA[off+c], rowB[off+c])
					s.sum += uint64(d)
					if d > maxDiff {
						maxDiff = d
					}
				}
				if maxDiff > s.max {
					s.max = maxDiff
				}
				if maxDiff > tolerance {
					s.diff++
				}
			}
		}
	})

	var merged rowStat
	for i := range stats {
		merged.diff += stats[i].diff
		merged.sum += stats[i].sum
		if stats[i].max > merged.max {
			merged.max = stats[i].max
		}
	}

	r.TotalPixels = uint64(width) * uint64(height)
	r.DifferentPixels = merged.diff
	r.MaxChannelDiff = float64(merged.max)
	r.AvgChannelDiff = float64(merged.sum) / float64(r.TotalPixels*4)
	r.DifferencePercent = 100 * float64(r.DifferentPixels) / float64(r.TotalPixels)
	r.Match = r.DifferentPixels == 0
	return r
}

func channelDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
