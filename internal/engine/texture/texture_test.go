package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phase.png")
	writePNG(t, path, 4, 3, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w, h := tex.Size(); w != 4 || h != 3 {
		t.Errorf("size = %dx%d, want 4x3", w, h)
	}
	if tex.Path != path {
		t.Errorf("Path = %q, want %q", tex.Path, path)
	}
	if got := tex.Image.RGBAAt(1, 1); got.R != 200 {
		t.Errorf("pixel = %v, want R=200", got)
	}
}

func TestLoadBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		img.SetRGBA(i%2, i/2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encoding bmp: %v", err)
	}
	path := filepath.Join(t.TempDir(), "phase.bmp")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tex.Image.RGBAAt(0, 0); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("pixel = %v, want (10,20,30)", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestReplaceBumpsVersion(t *testing.T) {
	tex := &Texture{Image: image.NewRGBA(image.Rect(0, 0, 1, 1)), version: 1}
	next := image.NewRGBA(image.Rect(0, 0, 8, 8))

	tex.Replace(next)
	if tex.Version() != 2 {
		t.Errorf("version = %d, want 2", tex.Version())
	}
	if w, h := tex.Size(); w != 8 || h != 8 {
		t.Errorf("size after replace = %dx%d, want 8x8", w, h)
	}
}

func TestImageToRGBAOffsetBounds(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 7, 6))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	rgba := ImageToRGBA(gray)
	if rgba.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v, want origin-based 2x1", rgba.Bounds())
	}
	if got := rgba.RGBAAt(0, 0); got.R != 128 || got.A != 255 {
		t.Errorf("pixel = %v, want gray 128", got)
	}
}

func TestDecodeBytesSniffsFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 3))); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		data    []byte
		ext     string
		wantErr bool
	}{
		{"png with wrong extension", buf.Bytes(), ".jpg", false},
		{"png without extension", buf.Bytes(), "", false},
		{"unknown data", []byte("plain text"), ".png", true},
		{"unknown data as tga", []byte{1, 2, 3}, ".tga", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeBytes(tt.data, tt.ext)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBytes: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 3 {
				t.Errorf("bounds = %v, want 2x3", b)
			}
		})
	}
}
