package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var errNoFrame = errors.New("no photo uploaded")

// UploadedFrame is a Camera backed by the photo the mobile client attached to its request.
// Data may be raw base64 or a data URL ("data:image/jpeg;base64,...").
type UploadedFrame struct {
	PermissionGranted bool
	Data              string
}

func (f UploadedFrame) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return f.PermissionGranted, nil
}

func (f UploadedFrame) TakePicture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := strings.TrimSpace(f.Data)
	if data == "" {
		return nil, errNoFrame
	}
	if strings.HasPrefix(data, "data:") {
		_, payload, found := strings.Cut(data, ",")
		if !found {
			return nil, fmt.Errorf("malformed data url")
		}
		data = payload
	}
	frame, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return frame, nil
}
