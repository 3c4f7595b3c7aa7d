package inkwell

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestIsRasterImage(t *testing.T) {
	for _, mt := range []string{"image/jpeg", "image/png", "image/gif"} {
		if !IsRasterImage(mt) {
			t.Errorf("IsRasterImage(%q) = false", mt)
		}
	}
	for _, mt := range []string{"image/svg+xml", "text/html", "application/pdf", ""} {
		if IsRasterImage(mt) {
			t.Errorf("IsRasterImage(%q) = true", mt)
		}
	}
}

func TestThumbnailScalesDown(t *testing.T) {
	src := pngImage(t, 1200, 600)

	out, err := Thumbnail(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding thumbnail failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("thumbnail format = %q, want jpeg", format)
	}
	if cfg.Width != 480 {
		t.Errorf("thumbnail width = %d, want 480", cfg.Width)
	}
	if cfg.Height != 240 {
		t.Errorf("thumbnail height = %d, want 240 (aspect preserved)", cfg.Height)
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	src := pngImage(t, 300, 200)

	out, err := Thumbnail(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding thumbnail failed: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Errorf("small image was resized to %dx%d", cfg.Width, cfg.Height)
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected an error for non-image data")
	}
}
