package capture_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"go-presence/internal/capture"
	captureerrors "go-presence/internal/capture/errors"
	captureMock "go-presence/internal/capture/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCoordinator_Capture(t *testing.T) {
	ctx := context.Background()
	frame := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	t.Run("Success - tags the photo with the action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		camera := captureMock.NewMockCamera(ctrl)
		camera.EXPECT().RequestPermission(ctx).Return(true, nil).Times(1)
		camera.EXPECT().TakePicture(ctx).Return(frame, nil).Times(2)

		c := capture.NewCoordinator(camera)

		photo, err := c.Capture(ctx, capture.ClockIn)
		require.NoError(t, err)
		assert.Equal(t, capture.ClockIn, photo.Action)
		assert.Equal(t, base64.StdEncoding.EncodeToString(frame), photo.ImageBase64)

		// permission is only requested once
		photo, err = c.Capture(ctx, capture.ClockOut)
		require.NoError(t, err)
		assert.Equal(t, capture.ClockOut, photo.Action)
	})

	t.Run("Permission denied - can retry after grant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		camera := captureMock.NewMockCamera(ctrl)
		gomock.InOrder(
			camera.EXPECT().RequestPermission(ctx).Return(false, nil),
			camera.EXPECT().RequestPermission(ctx).Return(true, nil),
		)
		camera.EXPECT().TakePicture(ctx).Return(frame, nil).Times(1)

		c := capture.NewCoordinator(camera)

		_, err := c.Capture(ctx, capture.ClockIn)
		assert.ErrorIs(t, err, captureerrors.ErrCameraPermissionDenied)

		_, err = c.Capture(ctx, capture.ClockIn)
		assert.NoError(t, err)
	})

	t.Run("Camera failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		camera := captureMock.NewMockCamera(ctrl)
		camErr := errors.New("camera busy")
		camera.EXPECT().RequestPermission(ctx).Return(true, nil)
		camera.EXPECT().TakePicture(ctx).Return(nil, camErr)

		_, err := capture.NewCoordinator(camera).Capture(ctx, capture.ClockIn)
		assert.ErrorIs(t, err, captureerrors.ErrCaptureFailed)
		assert.ErrorIs(t, err, camErr)
	})

	t.Run("Empty frame", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		camera := captureMock.NewMockCamera(ctrl)
		camera.EXPECT().RequestPermission(ctx).Return(true, nil)
		camera.EXPECT().TakePicture(ctx).Return([]byte{}, nil)

		_, err := capture.NewCoordinator(camera).Capture(ctx, capture.ClockOut)
		assert.ErrorIs(t, err, captureerrors.ErrCaptureFailed)
	})

	t.Run("Invalid action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		camera := captureMock.NewMockCamera(ctrl)

		_, err := capture.NewCoordinator(camera).Capture(ctx, capture.Action("LUNCH"))
		assert.ErrorIs(t, err, captureerrors.ErrInvalidAction)
	})
}

func TestUploadedFrame(t *testing.T) {
	ctx := context.Background()
	raw := []byte("jpeg-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("raw base64", func(t *testing.T) {
		got, err := capture.UploadedFrame{Data: encoded}.TakePicture(ctx)
		assert.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("data url", func(t *testing.T) {
		got, err := capture.UploadedFrame{Data: "data:image/jpeg;base64," + encoded}.TakePicture(ctx)
		assert.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("missing photo", func(t *testing.T) {
		_, err := capture.UploadedFrame{}.TakePicture(ctx)
		assert.Error(t, err)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := capture.UploadedFrame{Data: "%%%"}.TakePicture(ctx)
		assert.Error(t, err)
	})
}
