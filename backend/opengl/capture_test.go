package opengl_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-theft-auto/shaderbox/backend/opengl"
)

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		img.Set(0, y, color.RGBA{R: uint8(y), A: 255})
		img.Set(1, y, color.RGBA{G: uint8(y), A: 255})
	}

	opengl.FlipVertical(img)

	for y := 0; y < 3; y++ {
		want := uint8(2 - y)
		if got := img.RGBAAt(0, y).R; got != want {
			t.Errorf("row %d col 0 = %d, want %d", y, got, want)
		}
		if got := img.RGBAAt(1, y).G; got != want {
			t.Errorf("row %d col 1 = %d, want %d", y, got, want)
		}
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{R: 255, A: 255})

	path := filepath.Join(dir, "frame.png")
	if err := opengl.SaveImage(img, path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, _, _ := decoded.At(1, 2).RGBA(); r>>8 != 255 {
		t.Errorf("pixel red = %d, want 255", r>>8)
	}

	if err := opengl.SaveImage(img, filepath.Join(dir, "frame.jpg")); err != nil {
		t.Errorf("jpeg: %v", err)
	}
	if err := opengl.SaveImage(img, filepath.Join(dir, "frame.bmp")); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}
