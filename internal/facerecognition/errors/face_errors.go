package faceerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrServiceUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"face recognition service is unavailable",
		http.StatusServiceUnavailable,
	)
	ErrNetwork = apperror.New(
		apperror.CodeBadGateway,
		"failed to connect to face recognition server",
		http.StatusBadGateway,
	)
	ErrEnrollFailed = apperror.New(
		apperror.CodeCaptureFailed,
		"face enrollment failed, please retake the photo",
		http.StatusUnprocessableEntity,
	)
	ErrFaceDataNotFound = apperror.New(
		apperror.CodeNotFound,
		"user face data not found",
		http.StatusNotFound,
	)
	ErrRequestRejected = apperror.New(
		apperror.CodeInvalidInput,
		"face recognition service rejected the request",
		http.StatusBadRequest,
	)
)
