package attendance

import (
	"time"

	"go-presence/internal/location"
)

// LocationReport is what the device reported about its position for this attempt.
type LocationReport struct {
	PermissionGranted bool       `json:"permission_granted"`
	Latitude          *float64   `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude         *float64   `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	AccuracyMeters    float64    `json:"accuracy" binding:"gte=0"`
	Error             string     `json:"error"`
	Timestamp         *time.Time `json:"timestamp"`
}

type PhotoUpload struct {
	PermissionGranted bool   `json:"permission_granted"`
	Image             string `json:"image"`
}

// ClockRequest carries the device inputs plus the answers to the prompts the
// workflow may raise (skip verification, enrollment consent, mismatch choice).
type ClockRequest struct {
	Location         LocationReport `json:"location"`
	Photo            PhotoUpload    `json:"photo"`
	SkipVerification bool           `json:"skip_verification"`
	ConsentEnroll    bool           `json:"consent_enroll"`
	CancelOnMismatch bool           `json:"cancel_on_mismatch"`
	Notes            *string        `json:"notes" binding:"omitempty,max=500"`
}

type AttendanceResponse struct {
	ID                 string   `json:"id"`
	CompanyID          string   `json:"company_id"`
	EmployeeID         string   `json:"employee_id"`
	EmployeeName       string   `json:"employee_name,omitempty"`
	AttendanceDate     string   `json:"attendance_date"`
	ClockIn            string   `json:"clock_in"`
	ClockOut           *string  `json:"clock_out,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	OfficeKey          string   `json:"office_key"`
	DistanceMeters     int      `json:"distance_meters"`
	VerificationMethod string   `json:"verification_method"`
	FaceConfidence     *float64 `json:"face_confidence,omitempty"`
	WorkedDuration     string   `json:"worked_duration"`
	Status             string   `json:"status"`
	Notes              *string  `json:"notes,omitempty"`
}

type VerificationResponse struct {
	Method     string  `json:"method"`
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence,omitempty"`
}

// SessionResponse renders clock times in the 12-hour form the mobile app shows.
type SessionResponse struct {
	ClockInTime    string `json:"clock_in_time,omitempty"`
	ClockOutTime   string `json:"clock_out_time,omitempty"`
	WorkedDuration string `json:"worked_duration"`
	NextAction     string `json:"next_action,omitempty"`
	Completed      bool   `json:"completed"`
}

type ClockResponse struct {
	Action       string               `json:"action"`
	Message      string               `json:"message"`
	Attendance   AttendanceResponse   `json:"attendance"`
	Location     location.Verdict     `json:"location"`
	Verification VerificationResponse `json:"verification"`
	Session      SessionResponse      `json:"session"`
}

type TodayResponse struct {
	Date       string              `json:"date"`
	Session    SessionResponse     `json:"session"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

// ListFilter bounds a listing by attendance date, both ends inclusive.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
