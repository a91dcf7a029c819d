package events

import "time"

const (
	AttendanceClockedTopic     = "presence.attendance.clocked.v1"
	AttendanceClockedEventType = "attendance.clocked"
	AttendanceAggregateType    = "attendance"
)

// AttendanceClockedEvent is published once per confirmed clock-in or clock-out.
// It never carries the photo.
type AttendanceClockedEvent struct {
	EventID            string    `json:"event_id"`
	EventType          string    `json:"event_type"`
	RequestID          string    `json:"request_id,omitempty"`
	AttendanceID       string    `json:"attendance_id"`
	CompanyID          string    `json:"company_id"`
	EmployeeID         string    `json:"employee_id"`
	ActorRole          string    `json:"actor_role,omitempty"`
	Action             string    `json:"action"`
	OfficeKey          string    `json:"office_key"`
	DistanceMeters     int       `json:"distance_meters"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	VerificationMethod string    `json:"verification_method"`
	FaceConfidence     float64   `json:"face_confidence,omitempty"`
	Status             string    `json:"status"`
	ClientIP           string    `json:"client_ip,omitempty"`
	Device             string    `json:"device,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}
