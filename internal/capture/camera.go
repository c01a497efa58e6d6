package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/julianstephens/intake/internal/logger"
)

var (
	// ErrCameraBusy is returned when Open is called on an already-open
	// camera. The device is exclusively owned: release the old stream
	// before acquiring a new one.
	ErrCameraBusy = errors.New("camera is already open")
	// ErrCameraClosed is returned when a frame is requested from a
	// camera that was never opened or has been stopped.
	ErrCameraClosed = errors.New("camera is not open")
)

// defaultCaptureCommand grabs one JPEG still from the default video
// device and writes it to stdout.
var defaultCaptureCommand = []string{"fswebcam", "--no-banner", "--jpeg", "85", "--save", "-"}

// Camera captures still frames through an external capture helper. It
// models the exclusive ownership of a physical device: Open claims it,
// Stop releases it, and a second Open without a Stop is an error rather
// than a silent double-acquire.
type Camera struct {
	mu      sync.Mutex
	command []string
	open    bool
}

// NewCamera creates a camera using the given capture command, or the
// default helper when command is empty.
func NewCamera(command []string) *Camera {
	if len(command) == 0 {
		command = defaultCaptureCommand
	}
	return &Camera{command: command}
}

// Open claims the camera. Returns ErrCameraBusy if it is already claimed.
func (c *Camera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		return ErrCameraBusy
	}
	c.open = true
	logger.Debug("Camera opened", "command", c.command[0])
	return nil
}

// Stop releases the camera. Safe to call on an already-stopped camera.
func (c *Camera) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		c.open = false
		logger.Debug("Camera released")
	}
}

// IsOpen reports whether the camera is currently claimed.
func (c *Camera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Acquire captures one frame. The camera must be open.
func (c *Camera) Acquire(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return nil, ErrCameraClosed
	}
	command := c.command
	c.mu.Unlock()

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("capture command failed: %w (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("capture command produced no image")
	}
	return out.Bytes(), nil
}

func (c *Camera) Description() string {
	return "camera"
}
