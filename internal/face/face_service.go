package face

import (
	"context"

	"go-presence/internal/audit"
	"go-presence/internal/facerecognition"
	faceerrors "go-presence/internal/facerecognition/errors"
	"go-presence/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Directory is the admin side of the face recognition service. It is shared
// by every company, so callers must scope ids with a Roster first.
//
//go:generate mockgen -source=face_service.go -destination=mock/face_service_mock.go -package=mock
type Directory interface {
	Health(ctx context.Context) (facerecognition.HealthStatus, error)
	EnrolledUsers(ctx context.Context) ([]facerecognition.EnrolledUser, error)
	Delete(ctx context.Context, userID string) error
}

// Roster answers which employee ids belong to a company.
type Roster interface {
	EmployeeIDsByCompany(ctx context.Context, companyID string) ([]string, error)
	HasEmployee(ctx context.Context, companyID, employeeID string) (bool, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

type Service interface {
	Health(ctx context.Context) (facerecognition.HealthStatus, error)
	EnrolledUsers(ctx context.Context, companyID string) ([]facerecognition.EnrolledUser, error)
	DeleteUser(ctx context.Context, companyID, actorID, userID string) error
}

type service struct {
	dir    Directory
	roster Roster
	audit  AuditRecorder
	logger *zap.Logger
}

func NewService(dir Directory, roster Roster, recorder AuditRecorder) Service {
	return &service{dir: dir, roster: roster, audit: recorder, logger: zap.L().Named("face")}
}

func (s *service) Health(ctx context.Context) (facerecognition.HealthStatus, error) {
	return s.dir.Health(ctx)
}

// EnrolledUsers lists the enrolled users of companyID only.
func (s *service) EnrolledUsers(ctx context.Context, companyID string) ([]facerecognition.EnrolledUser, error) {
	ids, err := s.roster.EmployeeIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	users, err := s.dir.EnrolledUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]facerecognition.EnrolledUser, 0, len(users))
	for _, u := range users {
		if _, ok := members[u.UserID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// DeleteUser removes the reference face. The next clock by that user asks to
// enroll again. Users of another company are reported as not found.
func (s *service) DeleteUser(ctx context.Context, companyID, actorID, userID string) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	member, err := s.roster.HasEmployee(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if !member {
		logger.Warn("face deletion outside caller's company refused", zap.String("target_user_id", userID))
		return faceerrors.ErrFaceDataNotFound
	}

	if err := s.dir.Delete(ctx, userID); err != nil {
		return err
	}
	logger.Info("face data deleted", zap.String("target_user_id", userID))

	if s.audit == nil {
		return nil
	}
	client := contextutil.GetClientInfo(ctx)
	if err := s.audit.Record(ctx, audit.Entry{
		CompanyID: companyID,
		ActorID:   actorID,
		ActorRole: contextutil.GetRole(ctx),
		Action:    "Deleted face data",
		Target:    userID,
		IPAddress: client.IP,
		Device:    client.Device,
	}); err != nil {
		logger.Warn("face deletion not audited", zap.Error(err))
	}
	return nil
}
