package inkwell

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	maxThumbWidth    = 480
	thumbJpegQuality = 80

	// ThumbPrefix is prepended to an asset id to form the id of its
	// generated thumbnail variant.
	ThumbPrefix = "thumbs/"
)

// IsRasterImage reports whether the mime type is one the thumbnail pipeline
// can decode.
func IsRasterImage(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif":
		return true
	}
	return false
}

// Thumbnail decodes an image, scales it down to at most maxThumbWidth wide
// while keeping the aspect ratio, and returns it encoded as JPEG. Images
// already narrow enough are re-encoded without scaling.
func Thumbnail(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxThumbWidth {
		newH := h * maxThumbWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxThumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbJpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
