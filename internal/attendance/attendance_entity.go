package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
)

// One row per employee per day; the clock-out columns stay NULL until the
// second confirmation.
type Attendance struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID         uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate     time.Time      `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	ClockIn            time.Time      `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut           *time.Time     `gorm:"column:clock_out;type:timestamptz"`
	Latitude           *float64       `gorm:"column:latitude"`
	Longitude          *float64       `gorm:"column:longitude"`
	ClockOutLatitude   *float64       `gorm:"column:clock_out_latitude"`
	ClockOutLongitude  *float64       `gorm:"column:clock_out_longitude"`
	OfficeKey          string         `gorm:"column:office_key;type:varchar(50);not null"`
	DistanceMeters     int            `gorm:"column:distance_meters;not null"`
	VerificationMethod string         `gorm:"column:verification_method;type:varchar(20);not null"`
	FaceConfidence     *float64       `gorm:"column:face_confidence"`
	WorkedDuration     string         `gorm:"column:worked_duration;type:varchar(20);not null;default:'0h 0m'"`
	Status             string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Notes              *string        `gorm:"column:notes;type:text"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee           *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// EmployeeRef is the read-only view of the signed-in account owning an attendance row.
type EmployeeRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid"`
	Name       string    `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "users"
}
