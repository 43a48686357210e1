package visdiff

import "testing"

func TestRenderDiff_IdenticalImagesDarkened(t *testing.T) {
	a := solidImage(4, 4, Pixel{R: 255, A: 255})
	b := a.Clone()

	diff := RenderDiff(a, b, 0)
	if diff.Width() != 4 || diff.Height() != 4 {
		t.Fatalf("diff bounds = (%d, %d), want (4, 4)", diff.Width(), diff.Height())
	}
	want := Pixel{R: 127, A: 255} // channels halved, integer floor
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := diff.At(x, y); got != want {
				t.Fatalf("diff(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestRenderDiff_HighlightScalesWithMagnitude(t *testing.T) {
	a := solidImage(1, 1, Pixel{A: 255})
	b := solidImage(1, 1, Pixel{R: 100, A: 255})

	// maxDiff 100 -> intensity 200 -> (255, 55, 55, 255).
	diff := RenderDiff(a, b, 0)
	if got := diff.At(0, 0); got != (Pixel{R: 255, G: 55, B: 55, A: 255}) {
		t.Errorf("diff pixel = %+v, want {255 55 55 255}", got)
	}

	// maxDiff 255 -> intensity clamps at 255 -> pure red.
	b = solidImage(1, 1, Pixel{R: 255, A: 255})
	diff = RenderDiff(a, b, 0)
	if got := diff.At(0, 0); got != (Pixel{R: 255, A: 255}) {
		t.Errorf("clamped diff pixel = %+v, want {255 0 0 255}", got)
	}
}

func TestRenderDiff_ToleranceSuppressesHighlight(t *testing.T) {
	a := solidImage(1, 1, Pixel{R: 100, G: 100, B: 100, A: 255})
	b := solidImage(1, 1, Pixel{R: 105, G: 100, B: 100, A: 255})

	diff := RenderDiff(a, b, 5)
	want := Pixel{R: 50, G: 50, B: 50, A: 255}
	if got := diff.At(0, 0); got != want {
		t.Errorf("within-tolerance pixel = %+v, want darkened %+v", got, want)
	}
}

func TestRenderDiff_SizeMismatchSentinels(t *testing.T) {
	// A is 2x1, B is 1x2: canvas 2x2 with one shared pixel, one
	// only-in-A, one only-in-B, and one covered by neither.
	a := solidImage(2, 1, Pixel{R: 40, G: 60, B: 80, A: 255})
	b := solidImage(1, 2, Pixel{R: 40, G: 60, B: 80, A: 255})

	diff := RenderDiff(a, b, 0)
	if diff.Width() != 2 || diff.Height() != 2 {
		t.Fatalf("diff bounds = (%d, %d), want (2, 2)", diff.Width(), diff.Height())
	}

	// (0,0): both, identical -> darkened A.
	if got := diff.At(0, 0); got != (Pixel{R: 20, G: 30, B: 40, A: 255}) {
		t.Errorf("shared pixel = %+v, want darkened {20 30 40 255}", got)
	}
	// (1,0): only in A -> blue.
	if got := diff.At(1, 0); got != onlyInA {
		t.Errorf("only-in-A pixel = %+v, want %+v", got, onlyInA)
	}
	// (0,1): only in B -> green.
	if got := diff.At(0, 1); got != onlyInB {
		t.Errorf("only-in-B pixel = %+v, want %+v", got, onlyInB)
	}
	// (1,1): neither -> black.
	if got := diff.At(1, 1); got != outOfBoth {
		t.Errorf("uncovered pixel = %+v, want %+v", got, outOfBoth)
	}
}

func TestRenderDiff_BothEmpty(t *testing.T) {
	diff := RenderDiff(NewImage(0, 0), NewImage(0, 0), 0)
	if !diff.IsEmpty() {
		t.Error("diff of two empty images should be empty")
	}
}

func TestRenderDiff_OneEmpty(t *testing.T) {
	a := NewImage(0, 0)
	b := solidImage(2, 2, Pixel{R: 1, A: 255})

	diff := RenderDiff(a, b, 0)
	if diff.Width() != 2 || diff.Height() != 2 {
		t.Fatalf("diff bounds = (%d, %d), want (2, 2)", diff.Width(), diff.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := diff.At(x, y); got != onlyInB {
				t.Fatalf("diff(%d,%d) = %+v, want only-in-B green", x, y, got)
			}
		}
	}
}

func TestPixelDiff(t *testing.T) {
	tests := []struct {
		a, b Pixel
		want uint8
	}{
		{Pixel{}, Pixel{}, 0},
		{Pixel{R: 10}, Pixel{R: 20}, 10},
		{Pixel{G: 200}, Pixel{G: 100}, 100},
		{Pixel{B: 5}, Pixel{B: 6}, 1},
		{Pixel{A: 255}, Pixel{}, 255},
		{Pixel{R: 10, G: 50, B: 7, A: 255}, Pixel{R: 12, G: 20, B: 7, A: 255}, 30},
	}
	for _, tt := range tests {
		if got := pixelDiff(tt.a, tt.b); got != tt.want {
			t.Errorf("pixelDiff(%+v, %+v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
