package auditerrors

import (
	"go-presence/internal/shared/apperror"
	"net/http"
)

var (
	ErrDuplicateEvent = apperror.New(
		apperror.CodeConflict,
		"Audit event already recorded",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range, use YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEntry = apperror.New(
		apperror.CodeInvalidInput,
		"Audit entry requires company, actor and action",
		http.StatusBadRequest,
	)
)
