package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-presence/internal/attendance/errors"
	"go-presence/internal/capture"
	"go-presence/internal/events"
	"go-presence/internal/geo"
	"go-presence/internal/location"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/session"
	sessionerrors "go-presence/internal/session/errors"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/contextutil"
	"go-presence/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock-ins after 09:15 local time are LATE.
const lateAfter = 9*time.Hour + 15*time.Minute

// Geofence is the static office catalogue the clock workflow checks against.
type Geofence struct {
	Offices   []geo.OfficeLocation
	MaxMeters float64
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Clock(ctx context.Context, companyID, employeeID string, req ClockRequest) (ClockResponse, error)
	Today(ctx context.Context, companyID, employeeID string) (TodayResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool, filter ListFilter) ([]AttendanceResponse, error)
	Export(ctx context.Context, companyID, actorID string, canReadAll bool, format ExportFormat, filter ListFilter) (ExportFile, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	flow     *workflow.Workflow
	sessions session.Store
	fence    Geofence
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	flow *workflow.Workflow,
	sessions session.Store,
	fence Geofence,
	loc *time.Location,
) Service {
	return NewServiceWithOutbox(db, repo, nil, flow, sessions, fence, loc)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	flow *workflow.Workflow,
	sessions session.Store,
	fence Geofence,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		flow:     flow,
		sessions: sessions,
		fence:    fence,
		loc:      loc,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Clock(ctx context.Context, companyID, employeeID string, req ClockRequest) (ClockResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)
	if _, err := uuid.Parse(employeeID); err != nil {
		return ClockResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	logger.Debug("clock requested",
		zap.Bool("location_permission", req.Location.PermissionGranted),
		zap.Bool("camera_permission", req.Photo.PermissionGranted),
		zap.Int("photo_size", len(req.Photo.Image)),
	)

	if err := s.hydrateSession(ctx, companyID, employeeID); err != nil {
		logger.Error("clock load session failed", zap.Error(err))
		return ClockResponse{}, err
	}

	var saved Attendance
	in := workflow.Input{
		UserID:    employeeID,
		Offices:   s.fence.Offices,
		MaxMeters: s.fence.MaxMeters,
		Position:  req.Location.provider(),
		Camera: capture.UploadedFrame{
			PermissionGranted: req.Photo.PermissionGranted,
			Data:              req.Photo.Image,
		},
		Commit: func(ctx context.Context, res workflow.Result) error {
			row, err := s.persist(ctx, companyID, employeeID, req, res)
			if err != nil {
				return err
			}
			saved = row
			return nil
		},
	}
	prompter := workflow.Decisions{
		SkipVerification: req.SkipVerification,
		AllowEnroll:      req.ConsentEnroll,
		CancelOnMismatch: req.CancelOnMismatch,
	}

	res, err := s.flow.Run(ctx, in, prompter)
	if err != nil {
		logger.Warn("clock rejected", zap.Error(err))
		return ClockResponse{}, err
	}

	resp := ClockResponse{
		Action:     string(res.Action),
		Message:    successMessage(res.Action),
		Attendance: mapToResponse(saved, s.loc),
		Location:   res.Verdict,
		Verification: VerificationResponse{
			Method:     string(res.Method),
			Verified:   res.Verified,
			Confidence: res.Outcome.Confidence,
		},
		Session: mapSession(res.Session, s.loc),
	}
	logger.Info("clock success",
		zap.String("attendance_id", saved.ID.String()),
		zap.String("action", resp.Action),
		zap.String("status", saved.Status),
	)
	return resp, nil
}

// persist writes the confirmed clock and its outbox event in one transaction.
func (s *service) persist(
	ctx context.Context,
	companyID, employeeID string,
	req ClockRequest,
	res workflow.Result,
) (Attendance, error) {
	rid := contextutil.GetRequestID(ctx)

	day, err := time.ParseInLocation(session.DayLayout, res.Session.Day, s.loc)
	if err != nil {
		return Attendance{}, err
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return Attendance{}, apperror.InvalidField("company_id").WithCause(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return Attendance{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	lat, lng := res.Verdict.Coordinate.Latitude, res.Verdict.Coordinate.Longitude

	var row *Attendance
	switch res.Action {
	case capture.ClockIn:
		row = &Attendance{
			ID:                 uuid.New(),
			CompanyID:          companyUUID,
			EmployeeID:         uuid.MustParse(employeeID),
			AttendanceDate:     day,
			ClockIn:            res.At,
			Latitude:           &lat,
			Longitude:          &lng,
			OfficeKey:          res.Verdict.NearestOffice.Key,
			DistanceMeters:     res.Verdict.DistanceMeters,
			VerificationMethod: string(res.Method),
			FaceConfidence:     confidenceOf(res),
			WorkedDuration:     res.Session.WorkedDuration,
			Status:             statusFor(res.At.In(s.loc)),
			Notes:              req.Notes,
		}
		if err := qtx.Create(ctx, row); err != nil {
			s.logger.Error("clock in persist failed", zap.String("request_id", rid), zap.Error(err))
			return Attendance{}, mapRepositoryError(err)
		}

	case capture.ClockOut:
		row, err = qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
		if err != nil {
			return Attendance{}, mapRepositoryError(err)
		}
		if row.ClockOut != nil {
			return Attendance{}, sessionerrors.ErrAlreadyClockedOut
		}
		out := res.At
		row.ClockOut = &out
		row.ClockOutLatitude = &lat
		row.ClockOutLongitude = &lng
		row.WorkedDuration = res.Session.WorkedDuration
		if req.Notes != nil {
			row.Notes = req.Notes
		}
		if err := qtx.Update(ctx, row); err != nil {
			s.logger.Error("clock out persist failed", zap.String("request_id", rid), zap.Error(err))
			return Attendance{}, mapRepositoryError(err)
		}
	}

	if s.outbox != nil {
		client := contextutil.GetClientInfo(ctx)
		event := events.AttendanceClockedEvent{
			EventID:            uuid.NewString(),
			EventType:          events.AttendanceClockedEventType,
			RequestID:          rid,
			AttendanceID:       row.ID.String(),
			CompanyID:          companyID,
			EmployeeID:         employeeID,
			ActorRole:          contextutil.GetRole(ctx),
			Action:             string(res.Action),
			OfficeKey:          res.Verdict.NearestOffice.Key,
			DistanceMeters:     res.Verdict.DistanceMeters,
			Latitude:           lat,
			Longitude:          lng,
			VerificationMethod: string(res.Method),
			Status:             row.Status,
			ClientIP:           client.IP,
			Device:             client.Device,
			OccurredAt:         res.At.UTC(),
		}
		if c := confidenceOf(res); c != nil {
			event.FaceConfidence = *c
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return Attendance{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            event.EventID,
			RequestID:     rid,
			AggregateType: events.AttendanceAggregateType,
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AttendanceClockedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("clock outbox persist failed",
				zap.String("attendance_id", row.ID.String()),
				zap.Error(err),
			)
			return Attendance{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock commit failed", zap.String("request_id", rid), zap.Error(err))
		return Attendance{}, err
	}
	return *row, nil
}

// hydrateSession seeds the session store from the database when the store
// lost today's state (restart, evicted key).
func (s *service) hydrateSession(ctx context.Context, companyID, employeeID string) error {
	now := s.now().In(s.loc)
	day := session.DayOf(now)

	current, err := s.sessions.Get(ctx, employeeID, day)
	if err != nil {
		return err
	}
	if current.ClockInTime != nil {
		return nil
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	current.ClockInTime = &row.ClockIn
	current.ClockOutTime = row.ClockOut
	if row.WorkedDuration != "" {
		current.WorkedDuration = row.WorkedDuration
	}
	return s.sessions.Put(ctx, current)
}

func (s *service) Today(ctx context.Context, companyID, employeeID string) (TodayResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TodayResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	now := s.now().In(s.loc)
	day := session.DayOf(now)

	resp := TodayResponse{
		Date: day,
		Session: SessionResponse{
			WorkedDuration: session.New(employeeID, day).WorkedDuration,
			NextAction:     string(capture.ClockIn),
		},
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return TodayResponse{}, err
	}

	sess := session.New(employeeID, day)
	sess.ClockInTime = &row.ClockIn
	sess.ClockOutTime = row.ClockOut
	sess.WorkedDuration = row.WorkedDuration
	resp.Session = mapSession(sess, s.loc)

	a := mapToResponse(*row, s.loc)
	resp.Attendance = &a
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool, filter ListFilter) ([]AttendanceResponse, error) {
	rows, err := s.list(ctx, companyID, actorID, canReadAll, filter)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r, s.loc)
	}
	return res, nil
}

func (s *service) Export(ctx context.Context, companyID, actorID string, canReadAll bool, format ExportFormat, filter ListFilter) (ExportFile, error) {
	rows, err := s.list(ctx, companyID, actorID, canReadAll, filter)
	if err != nil {
		return ExportFile{}, err
	}
	return renderExport(format, rows, s.loc, s.now().In(s.loc))
}

func (s *service) list(ctx context.Context, companyID, actorID string, canReadAll bool, filter ListFilter) ([]Attendance, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	if canReadAll {
		return s.repo.FindAllByCompany(ctx, companyID, filter)
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	return s.repo.FindAllByCompanyAndEmployee(ctx, companyID, actorID, filter)
}

func (r LocationReport) provider() location.ReportedPosition {
	p := location.ReportedPosition{
		PermissionGranted: r.PermissionGranted,
		AccuracyMeters:    r.AccuracyMeters,
		FixError:          r.Error,
	}
	if r.Latitude != nil && r.Longitude != nil {
		p.Coordinate = &geo.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	if r.Timestamp != nil {
		p.ReportedAt = *r.Timestamp
	}
	return p
}

func statusFor(clockIn time.Time) string {
	midnight := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, clockIn.Location())
	if clockIn.Sub(midnight) > lateAfter {
		return StatusLate
	}
	return StatusPresent
}

func confidenceOf(res workflow.Result) *float64 {
	if res.Method == workflow.MethodSkipped {
		return nil
	}
	c := res.Outcome.Confidence
	return &c
}

func successMessage(action capture.Action) string {
	if action == capture.ClockOut {
		return "Clock Out Successful"
	}
	return "Clock In Successful"
}

func mapSession(s session.Session, loc *time.Location) SessionResponse {
	resp := SessionResponse{
		WorkedDuration: s.WorkedDuration,
		Completed:      s.Completed(),
	}
	if s.ClockInTime != nil {
		resp.ClockInTime = session.FormatClockTime(s.ClockInTime.In(loc))
	}
	if s.ClockOutTime != nil {
		resp.ClockOutTime = session.FormatClockTime(s.ClockOutTime.In(loc))
	}
	if !resp.Completed {
		resp.NextAction = string(session.NextAction(s))
	}
	return resp
}

func mapToResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                 a.ID.String(),
		CompanyID:          a.CompanyID.String(),
		EmployeeID:         a.EmployeeID.String(),
		AttendanceDate:     a.AttendanceDate.Format(session.DayLayout),
		ClockIn:            a.ClockIn.In(loc).Format(time.RFC3339),
		Latitude:           a.Latitude,
		Longitude:          a.Longitude,
		OfficeKey:          a.OfficeKey,
		DistanceMeters:     a.DistanceMeters,
		VerificationMethod: a.VerificationMethod,
		FaceConfidence:     a.FaceConfidence,
		WorkedDuration:     a.WorkedDuration,
		Status:             a.Status,
		Notes:              a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name
	}
	if a.ClockOut != nil {
		v := a.ClockOut.In(loc).Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
