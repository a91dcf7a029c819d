package sessionerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"already clocked out for today",
		http.StatusConflict,
	)
	ErrNegativeDuration = apperror.New(
		apperror.CodeInvalidState,
		"clock-out is earlier than clock-in, overnight shifts are not supported",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid clock time, expected hh:mm:ss AM/PM",
		http.StatusBadRequest,
	)
	ErrWorkflowInProgress = apperror.New(
		apperror.CodeConflict,
		"another clock action is already in progress",
		http.StatusConflict,
	)
)
