// Package camera abstracts the capture device. One Capture call yields
// one JPEG-encoded still; how the device is driven (external stills
// program, synthetic demo frames) is hidden behind the interface.
package camera

import (
	"context"
	"errors"
)

// ErrCaptureDevice reports that the device failed to produce an image.
var ErrCaptureDevice = errors.New("camera: device failed to produce an image")

// Camera produces one raw photo per request.
type Camera interface {
	// Capture triggers a single still and returns its encoded bytes.
	Capture(ctx context.Context) ([]byte, error)

	// Available reports whether the device can be used at all. Checked
	// once at startup as the camera permission gate.
	Available() bool
}
