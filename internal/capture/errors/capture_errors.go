package captureerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrCameraPermissionDenied = apperror.New(
		apperror.CodePermissionDenied,
		"camera permission denied, grant camera access in device settings and retry",
		http.StatusForbidden,
	)
	ErrCaptureFailed = apperror.New(
		apperror.CodeCaptureFailed,
		"failed to capture photo, please retake",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"invalid clock action",
		http.StatusBadRequest,
	)
)
