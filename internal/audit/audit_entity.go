package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one security-relevant action. EventID is set when the entry
// came from a message so redelivery can be detected.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_company_time,priority:1"`
	EventID    *string   `gorm:"type:varchar(64);uniqueIndex:uq_audit_logs_event_id"`
	ActorID    string    `gorm:"type:varchar(64);not null"`
	ActorRole  string    `gorm:"type:varchar(50)"`
	Action     string    `gorm:"type:varchar(255);not null"`
	Target     string    `gorm:"type:varchar(255)"`
	IPAddress  string    `gorm:"type:varchar(64)"`
	Device     string    `gorm:"type:varchar(255)"`
	OccurredAt time.Time `gorm:"not null;index:idx_audit_logs_company_time,priority:2"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
