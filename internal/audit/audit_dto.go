package audit

import "time"

// Entry is what callers record. OccurredAt defaults to now.
type Entry struct {
	EventID    string
	CompanyID  string
	ActorID    string
	ActorRole  string
	Action     string
	Target     string
	IPAddress  string
	Device     string
	OccurredAt time.Time
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Action string
}

type AuditLogResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id"`
	ActorRole  string `json:"actor_role"`
	Action     string `json:"action"`
	Target     string `json:"target"`
	IPAddress  string `json:"ip_address"`
	Device     string `json:"device"`
	OccurredAt string `json:"occurred_at"`
}
