package camera

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"anglecam/internal/config"
)

const execTimeout = 15 * time.Second

// ExecCamera drives a webcam through an external stills program
// (fswebcam-compatible flags). The program writes one JPEG to stdout
// per invocation.
type ExecCamera struct {
	command string
	device  string
	width   int
	height  int
}

// NewExecCamera creates a camera around the given stills command.
func NewExecCamera(command, device string, width, height int) *ExecCamera {
	return &ExecCamera{
		command: command,
		device:  device,
		width:   width,
		height:  height,
	}
}

// Available reports whether the stills program is on PATH.
func (c *ExecCamera) Available() bool {
	_, err := exec.LookPath(c.command)
	return err == nil
}

// Capture shells out for a single frame and returns the JPEG bytes.
func (c *ExecCamera) Capture(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command,
		"-d", c.device,
		"-r", fmt.Sprintf("%dx%d", c.width, c.height),
		"--no-banner",
		"--jpeg", fmt.Sprintf("%d", config.JPEGQuality),
		"--save", "-",
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCaptureDevice, c.command, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: %s produced no output", ErrCaptureDevice, c.command)
	}
	return out.Bytes(), nil
}
