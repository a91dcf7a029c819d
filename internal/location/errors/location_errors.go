package locationerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrPermissionDenied = apperror.New(
		apperror.CodePermissionDenied,
		"location permission denied, enable location access to mark attendance",
		http.StatusForbidden,
	)
	ErrPositionUnavailable = apperror.New(
		apperror.CodePositionUnavailable,
		"unable to fetch location, ensure GPS is enabled",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidCoordinate = apperror.New(
		apperror.CodeInvalidInput,
		"reported coordinate is out of range",
		http.StatusBadRequest,
	)
	ErrNoOfficeConfigured = apperror.New(
		apperror.CodeInternalError,
		"no office location configured",
		http.StatusInternalServerError,
	)
)
