package camera

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
)

// MockCamera renders synthetic frames for demo mode. Frames are real
// JPEGs at a non-square resolution so the full decode, crop and
// re-encode path runs exactly as it would with hardware.
type MockCamera struct {
	width  int
	height int
	shots  int
}

// NewMockCamera creates a demo camera at the given resolution.
func NewMockCamera(width, height int) *MockCamera {
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}
	return &MockCamera{width: width, height: height}
}

// Available always succeeds for the demo camera.
func (c *MockCamera) Available() bool { return true }

// Capture produces a gradient test frame with a little noise so
// successive shots differ.
func (c *MockCamera) Capture(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCaptureDevice, ctx.Err())
	default:
	}

	c.shots++
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	tint := uint8(rand.Intn(64))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / c.width),
				G: uint8(y * 255 / c.height),
				B: 128 + tint,
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("%w: encode demo frame: %v", ErrCaptureDevice, err)
	}
	return buf.Bytes(), nil
}

// Shots returns how many frames this camera has produced.
func (c *MockCamera) Shots() int { return c.shots }
