package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Workflow outcomes surfaced to the client (4xx)
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodePositionUnavailable = "POSITION_UNAVAILABLE"
	CodeOutOfRange          = "OUT_OF_RANGE"
	CodeCaptureFailed       = "CAPTURE_FAILED"
	CodeNotEnrolled         = "NOT_ENROLLED"
	CodeFaceMismatch        = "FACE_MISMATCH"
	CodeCancelled           = "CANCELLED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeBadGateway         = "BAD_GATEWAY"
)
