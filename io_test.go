package visdiff

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// gradientImage covers all 256 levels of each channel at both alpha
// extremes: row 0 is opaque, row 1 fully transparent.
func gradientImage() *Image {
	img := NewImage(256, 2)
	for x := 0; x < 256; x++ {
		v := uint8(x)
		_ = img.Set(x, 0, Pixel{R: v, G: 255 - v, B: v / 2, A: 255})
		_ = img.Set(x, 1, Pixel{R: 255 - v, G: v, B: v, A: 0})
	}
	return img
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golden.png")

	want := gradientImage()
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("Load() bounds = (%d, %d), want (%d, %d)",
			got.Width(), got.Height(), want.Width(), want.Height())
	}
	if !got.Equal(want) {
		t.Error("round-tripped image is not pixel-identical")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want fs.ErrNotExist", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trash.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrBadImage) {
		t.Errorf("Load(corrupt) = %v, want ErrBadImage", err)
	}
}

func TestSave_UnwritablePath(t *testing.T) {
	img := NewImage(1, 1)
	err := img.Save(filepath.Join(t.TempDir(), "missing-dir", "golden.png"))
	if err == nil {
		t.Error("Save() into a missing directory should fail")
	}
}

func TestLoadBytes(t *testing.T) {
	var buf bytes.Buffer
	want := solidImage(3, 3, Pixel{R: 9, G: 8, B: 7, A: 255})
	if err := want.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes() = %v", err)
	}
	if !got.Equal(want) {
		t.Error("LoadBytes() did not reproduce the image")
	}
}

func TestLoadBytes_Empty(t *testing.T) {
	if _, err := LoadBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadBytes(nil) = %v, want ErrEmptyData", err)
	}
}

func TestLoad_NormalizesGrayscale(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 77})
	gray.SetGray(1, 0, color.Gray{Y: 200})

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		t.Fatal(err)
	}

	got, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes() = %v", err)
	}
	if p := got.At(0, 0); p != (Pixel{R: 77, G: 77, B: 77, A: 255}) {
		t.Errorf("gray pixel = %+v, want collapsed {77 77 77 255}", p)
	}
	if p := got.At(1, 0); p != (Pixel{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("gray pixel = %+v, want collapsed {200 200 200 255}", p)
	}
}

func TestLoad_NormalizesPaletted(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		color.NRGBA{R: 200, G: 150, B: 100, A: 255},
	}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	src.SetColorIndex(0, 0, 0)
	src.SetColorIndex(1, 0, 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	got, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes() = %v", err)
	}
	if p := got.At(1, 0); p != (Pixel{R: 200, G: 150, B: 100, A: 255}) {
		t.Errorf("paletted pixel = %+v, want {200 150 100 255}", p)
	}
}

func TestLoad_AcceptsBMP(t *testing.T) {
	want := solidImage(4, 2, Pixel{R: 120, G: 33, B: 9, A: 255})

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, want.ToStdImage()); err != nil {
		t.Fatal(err)
	}

	got, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes(bmp) = %v", err)
	}
	if !got.Equal(want) {
		t.Error("BMP golden did not decode to identical pixels")
	}
}

func TestLoad_AcceptsTIFF(t *testing.T) {
	want := gradientImage()

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, want.ToStdImage(), nil); err != nil {
		t.Fatal(err)
	}

	got, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes(tiff) = %v", err)
	}
	if !got.Equal(want) {
		t.Error("TIFF golden did not decode to identical pixels")
	}
}

func TestToStdImage_Copies(t *testing.T) {
	img := solidImage(2, 2, Pixel{R: 1, G: 2, B: 3, A: 255})
	std := img.ToStdImage()

	std.Pix[0] = 99
	if got := img.At(0, 0); got != (Pixel{R: 1, G: 2, B: 3, A: 255}) {
		t.Error("mutating ToStdImage result changed the Image")
	}
}

func TestFromStdImage_SubImageBounds(t *testing.T) {
	// Decoders can hand back images with non-zero Min; conversion must
	// honor the bounds offset.
	base := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	base.SetNRGBA(2, 2, color.NRGBA{R: 11, G: 22, B: 33, A: 255})
	sub := base.SubImage(image.Rect(2, 2, 4, 4)).(*image.NRGBA)

	got := FromStdImage(sub)
	if got.Width() != 2 || got.Height() != 2 {
		t.Fatalf("bounds = (%d, %d), want (2, 2)", got.Width(), got.Height())
	}
	if p := got.At(0, 0); p != (Pixel{R: 11, G: 22, B: 33, A: 255}) {
		t.Errorf("sub-image pixel = %+v, want {11 22 33 255}", p)
	}
}
