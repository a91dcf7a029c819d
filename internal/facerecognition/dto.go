package facerecognition

// Error kinds the service may tag its failures with. Older servers omit the field.
const (
	ErrorKindNotEnrolled = "NOT_ENROLLED"
	ErrorKindMismatch    = "MISMATCH"
	ErrorKindOther       = "OTHER"
)

type faceRequest struct {
	UserID string `json:"userId"`
	Image  string `json:"image,omitempty"`
}

type HealthStatus struct {
	Status       string `json:"status"`
	Device       string `json:"device,omitempty"`
	ModelsLoaded bool   `json:"models_loaded"`
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Verified   bool     `json:"verified"`
	Confidence float64  `json:"confidence"`
	Distance   *float64 `json:"distance,omitempty"`
	Enrolled   *bool    `json:"enrolled,omitempty"`
	ErrorKind  string   `json:"error_kind,omitempty"`
	Error      string   `json:"error,omitempty"`
	Message    string   `json:"message,omitempty"`
}

type basicResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type EnrolledUser struct {
	UserID     string `json:"user_id"`
	EnrolledAt string `json:"enrolled_at,omitempty"`
}

type enrolledUsersResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Users   []EnrolledUser `json:"users"`
	Error   string         `json:"error,omitempty"`
}
