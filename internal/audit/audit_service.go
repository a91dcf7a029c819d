package audit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	auditerrors "go-presence/internal/audit/errors"
	"go-presence/internal/events"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	TimestampLayout = "Jan 02, 2006 03:04 PM"
	ExportFilename  = "security_audit.csv"
)

var exportHeader = []string{"Timestamp", "Actor", "Role", "Action", "Target", "IP Address", "Device"}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, entry Entry) error
	RecordAttendanceClocked(ctx context.Context, event events.AttendanceClockedEvent) error
	List(ctx context.Context, companyID string, filter ListFilter) ([]AuditLogResponse, error)
	ExportCSV(ctx context.Context, companyID string, filter ListFilter) ([]byte, error)
}

type service struct {
	repo   Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{repo: repo, loc: loc, now: time.Now, logger: zap.L().Named("audit")}
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	companyID, err := uuid.Parse(entry.CompanyID)
	if err != nil || entry.ActorID == "" || strings.TrimSpace(entry.Action) == "" {
		return auditerrors.ErrInvalidEntry
	}

	occurred := entry.OccurredAt
	if occurred.IsZero() {
		occurred = s.now()
	}

	row := &AuditLog{
		ID:         uuid.New(),
		CompanyID:  companyID,
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		Target:     entry.Target,
		IPAddress:  entry.IPAddress,
		Device:     entry.Device,
		OccurredAt: occurred.UTC(),
	}
	if entry.EventID != "" {
		eventID := entry.EventID
		row.EventID = &eventID
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if isDuplicateEvent(err) {
			return auditerrors.ErrDuplicateEvent.WithCause(err)
		}
		contextutil.GetLogger(ctx, s.logger).Error("audit persist failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// RecordAttendanceClocked turns a clock confirmation into an audit entry.
func (s *service) RecordAttendanceClocked(ctx context.Context, event events.AttendanceClockedEvent) error {
	return s.Record(ctx, Entry{
		EventID:    event.EventID,
		CompanyID:  event.CompanyID,
		ActorID:    event.EmployeeID,
		ActorRole:  event.ActorRole,
		Action:     clockAction(event),
		Target:     clockTarget(event),
		IPAddress:  event.ClientIP,
		Device:     event.Device,
		OccurredAt: event.OccurredAt,
	})
}

func clockAction(event events.AttendanceClockedEvent) string {
	action := "Clocked in"
	if event.Action == "CLOCK_OUT" {
		action = "Clocked out"
	}
	switch event.VerificationMethod {
	case "SKIPPED":
		action += " without face verification"
	case "FACE_ENROLLED":
		action += " and enrolled face"
	}
	return action
}

func clockTarget(event events.AttendanceClockedEvent) string {
	if event.OfficeKey == "" {
		return fmt.Sprintf("%d m from office", event.DistanceMeters)
	}
	return fmt.Sprintf("Office %s · %d m", event.OfficeKey, event.DistanceMeters)
}

func (s *service) List(ctx context.Context, companyID string, filter ListFilter) ([]AuditLogResponse, error) {
	logs, err := s.find(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogResponse{
			ID:         l.ID.String(),
			ActorID:    l.ActorID,
			ActorRole:  l.ActorRole,
			Action:     l.Action,
			Target:     l.Target,
			IPAddress:  l.IPAddress,
			Device:     l.Device,
			OccurredAt: l.OccurredAt.In(s.loc).Format(time.RFC3339),
		})
	}
	return out, nil
}

// ExportCSV renders the filtered trail with the header
// Timestamp,Actor,Role,Action,Target,IP Address,Device. Every field is quoted.
func (s *service) ExportCSV(ctx context.Context, companyID string, filter ListFilter) ([]byte, error) {
	logs, err := s.find(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportHeader, ",") + "\n")
	for _, l := range logs {
		fields := []string{
			l.OccurredAt.In(s.loc).Format(TimestampLayout),
			l.ActorID,
			l.ActorRole,
			l.Action,
			l.Target,
			l.IPAddress,
			l.Device,
		}
		for i, f := range fields {
			fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		buf.WriteString(strings.Join(fields, ",") + "\n")
	}
	return buf.Bytes(), nil
}

func (s *service) find(ctx context.Context, companyID string, filter ListFilter) ([]AuditLog, error) {
	cID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, apperror.InvalidField("company_id")
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, auditerrors.ErrInvalidDateRange
	}
	return s.repo.FindAllByCompany(ctx, cID, filter)
}

func isDuplicateEvent(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "uq_audit_logs_event_id")
}
