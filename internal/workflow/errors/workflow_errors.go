package workflowerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

// Every error here ends the workflow without touching the session.
var (
	ErrOutOfRange = apperror.New(
		apperror.CodeOutOfRange,
		"you are too far from the office to mark attendance",
		http.StatusForbidden,
	)
	ErrVerificationUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"face verification is unavailable, retry or continue without verification",
		http.StatusServiceUnavailable,
	)
	ErrEnrollmentRequired = apperror.New(
		apperror.CodeNotEnrolled,
		"face not enrolled, consent to enrollment to continue",
		http.StatusPreconditionRequired,
	)
	ErrFaceMismatch = apperror.New(
		apperror.CodeFaceMismatch,
		"face verification failed, please retake the photo",
		http.StatusUnprocessableEntity,
	)
	ErrCancelled = apperror.New(
		apperror.CodeCancelled,
		"clock action cancelled",
		http.StatusConflict,
	)
)
