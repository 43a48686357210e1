// Package visdiff is the capture-normalization and comparison engine for
// visual regression testing of rendering surfaces.
//
// # Overview
//
// visdiff converts a hardware-native packed-pixel frame into a canonical
// RGBA8 image, compares it against a previously accepted golden image under
// a configurable tolerance policy, and renders a visual diff on mismatch.
// It has no knowledge of the windowing system or graphics API that produced
// the frame: everything it needs is carried by the frame's PixelFormat
// descriptor (bit depth, byte order, channel masks, alpha presence).
//
// # Quick Start
//
//	frame := &visdiff.RawFrame{
//	    Width: w, Height: h, Stride: stride,
//	    Pix:    capturedBytes,
//	    Format: visdiff.FormatXRGB32,
//	}
//	got := visdiff.Normalize(frame)
//
//	golden := &visdiff.Golden{Dir: "reference", SaveFailures: true}
//	outcome, err := golden.Check("gradient_fill", got)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if outcome.Status == visdiff.Failed {
//	    log.Printf("mismatch: %s (diff at %s)", outcome.Result.Message, outcome.DiffPath)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Normalization: RawFrame + PixelFormat -> Image (normalize.go)
//   - Comparison: exact, per-channel tolerance, and percentage policies (compare.go)
//   - Diff rendering: per-pixel disagreement visualization (diff.go)
//   - Persistence: lossless PNG golden files, BMP/TIFF accepted on load (io.go)
//   - Golden workflow: generate-when-absent reference management (golden.go)
//
// Per-pixel work is data-parallel and is distributed over a worker pool for
// large images; results are identical to sequential evaluation.
//
// # Error Model
//
// A mismatch between two images is not an error: comparison always returns a
// Result with Match, counts, and a diagnostic message. Errors are reserved
// for the capture boundary (ErrNoFrame, ErrShortFrame), unreadable or
// unwritable paths, and corrupt or unsupported golden files (ErrBadImage).
package visdiff
