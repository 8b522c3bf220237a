package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFlipRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue, as GL returns it.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(0, 0); c.B != 255 || c.R != 0 {
		t.Errorf("top pixel = %v, want blue", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 255 || c.B != 0 {
		t.Errorf("bottom pixel = %v, want red", c)
	}
}

func TestFlipRowsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		pixels []byte
		w, h   int
	}{
		{"short", make([]byte, 7), 1, 2},
		{"zero size", nil, 0, 0},
		{"negative", nil, -1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipRows(tt.pixels, tt.w, tt.h); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "phaseview")
	sc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}

	name, err := sc.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "phaseview_2024-05-06_07-08-09.png")
	if name != want {
		t.Errorf("name = %s, want %s", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 4 || cfg.Height != 3 {
		t.Errorf("png size = %dx%d, want 4x3", cfg.Width, cfg.Height)
	}
}

func TestCaptureSameSecond(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	pixels := make([]byte, 4)
	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("second capture overwrote the first")
	}
	if filepath.Base(second) != "shot_2024-01-01_00-00-00_1.png" {
		t.Errorf("second = %s", filepath.Base(second))
	}
}
