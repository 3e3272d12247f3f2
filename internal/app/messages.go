package app

import (
	"time"

	"anglecam/internal/capture"
)

// TickMsg triggers a frame update.
type TickMsg time.Time

// CaptureDoneMsg reports a finished capture pipeline.
type CaptureDoneMsg struct {
	Result capture.Result
}

// CaptureFailedMsg reports a capture that did not produce a photo.
type CaptureFailedMsg struct {
	Err error
}
