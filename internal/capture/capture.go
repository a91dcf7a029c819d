package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"

	captureerrors "go-presence/internal/capture/errors"
	"go-presence/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Action string

const (
	ClockIn  Action = "CLOCK_IN"
	ClockOut Action = "CLOCK_OUT"
)

func (a Action) Valid() bool {
	return a == ClockIn || a == ClockOut
}

// CapturedPhoto holds one still frame. It must not outlive the confirmation that consumed it.
type CapturedPhoto struct {
	ImageBase64 string `json:"-"`
	Action      Action `json:"action"`
}

var errEmptyFrame = errors.New("camera returned an empty frame")

//go:generate mockgen -source=capture.go -destination=mock/capture_mock.go -package=mock
type Camera interface {
	RequestPermission(ctx context.Context) (bool, error)
	TakePicture(ctx context.Context) ([]byte, error)
}

// Coordinator asks for camera permission on first use and produces one photo per Capture call.
type Coordinator struct {
	camera Camera

	mu      sync.Mutex
	granted bool
}

func NewCoordinator(camera Camera) *Coordinator {
	return &Coordinator{camera: camera}
}

func (c *Coordinator) ensurePermission(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.granted {
		return nil
	}
	ok, err := c.camera.RequestPermission(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return captureerrors.ErrCameraPermissionDenied.WithCause(err)
	}
	if !ok {
		return captureerrors.ErrCameraPermissionDenied
	}
	c.granted = true
	return nil
}

func (c *Coordinator) Capture(ctx context.Context, action Action) (CapturedPhoto, error) {
	if !action.Valid() {
		return CapturedPhoto{}, captureerrors.ErrInvalidAction
	}
	if err := c.ensurePermission(ctx); err != nil {
		return CapturedPhoto{}, err
	}

	frame, err := c.camera.TakePicture(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return CapturedPhoto{}, ctx.Err()
		}
		return CapturedPhoto{}, captureerrors.ErrCaptureFailed.WithCause(err)
	}
	if len(frame) == 0 {
		return CapturedPhoto{}, captureerrors.ErrCaptureFailed.WithCause(errEmptyFrame)
	}

	contextutil.GetLogger(ctx, zap.L()).Named("capture").Debug("photo captured",
		zap.String("action", string(action)),
		zap.Int("bytes", len(frame)),
	)

	return CapturedPhoto{
		ImageBase64: base64.StdEncoding.EncodeToString(frame),
		Action:      action,
	}, nil
}
