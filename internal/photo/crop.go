package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"anglecam/internal/config"
)

// ErrDecode reports bytes that are not a recognizable raster image.
var ErrDecode = errors.New("photo: input is not a decodable image")

// Crop returns a centered square crop of img with side min(width, height).
// Pixels are copied into a fresh buffer; the input is never mutated and
// no scaling is applied.
func Crop(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	side := w
	if h < w {
		side = h
	}
	offX := (w - side) / 2
	offY := (h - side) / 2

	out := image.NewRGBA(image.Rect(0, 0, side, side))
	src := image.Pt(b.Min.X+offX, b.Min.Y+offY)
	draw.Draw(out, out.Bounds(), img, src, draw.Src)
	return out
}

// Square decodes raw image bytes, center-crops them square, and
// re-encodes as JPEG at maximum quality.
func Square(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	cropped := Crop(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: config.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode cropped image: %w", err)
	}
	return buf.Bytes(), nil
}
