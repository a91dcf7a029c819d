package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	attendanceerrors "go-presence/internal/attendance/errors"
	"go-presence/internal/capture"
	"go-presence/internal/events"
	"go-presence/internal/facerecognition"
	"go-presence/internal/geo"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/session"
	sessionerrors "go-presence/internal/session/errors"
	"go-presence/internal/workflow"
	workflowerrors "go-presence/internal/workflow/errors"
	workflowMock "go-presence/internal/workflow/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                      func(tx *sql.Tx) Repository
	createFn                      func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn       func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findAllByCompanyFn            func(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error)
	findAllByCompanyAndEmployeeFn func(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Attendance, error)
	updateFn                      func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error) {
	return f.findAllByCompanyFn(ctx, companyID, filter)
}
func (f *fakeRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Attendance, error) {
	return f.findAllByCompanyAndEmployeeFn(ctx, companyID, employeeID, filter)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }

// newSavingRepo keeps at most one row, the way the unique (employee, date) index would.
func newSavingRepo() (*fakeRepo, *Attendance) {
	saved := &Attendance{}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { *saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { *saved = *a; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *saved
		return &cp, nil
	}
	repo.findAllByCompanyFn = func(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error) {
		return nil, nil
	}
	repo.findAllByCompanyAndEmployeeFn = func(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Attendance, error) {
		return nil, nil
	}
	return repo, saved
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }
func (f *fakeOutbox) DeleteSentBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

var testOffice = geo.OfficeLocation{
	Key:        "main",
	Name:       "Main Office",
	Coordinate: geo.Coordinate{Latitude: 19.2605095, Longitude: 76.8209881},
}

type fixture struct {
	svc      *service
	face     *workflowMock.MockFaceVerifier
	store    *session.MemoryStore
	outbox   *fakeOutbox
	sqlMock  sqlmock.Sqlmock
	now      time.Time
	company  string
	employee string
}

func newFixture(t *testing.T, repo Repository, now time.Time) *fixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	face := workflowMock.NewMockFaceVerifier(ctrl)
	store := session.NewMemoryStore()
	clock := func() time.Time { return now }
	flow := workflow.New(face, store, time.UTC).WithClock(clock)
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, outbox, flow, store,
		Geofence{Offices: []geo.OfficeLocation{testOffice}, MaxMeters: 100}, time.UTC).(*service)
	svc.now = clock

	return &fixture{
		svc:      svc,
		face:     face,
		store:    store,
		outbox:   outbox,
		sqlMock:  mock,
		now:      now,
		company:  uuid.New().String(),
		employee: uuid.New().String(),
	}
}

func atOffice() ClockRequest {
	lat, lng := testOffice.Coordinate.Latitude, testOffice.Coordinate.Longitude
	return ClockRequest{
		Location: LocationReport{PermissionGranted: true, Latitude: &lat, Longitude: &lng, AccuracyMeters: 8},
		Photo: PhotoUpload{
			PermissionGranted: true,
			Image:             "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("frame")),
		},
	}
}

func (f *fixture) expectVerified(action capture.Action) {
	f.face.EXPECT().Health(gomock.Any()).Return(facerecognition.HealthStatus{Status: "healthy"}, nil)
	f.face.EXPECT().Submit(gomock.Any(), f.employee, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p capture.CapturedPhoto) (facerecognition.Outcome, error) {
			if p.Action != action {
				return facerecognition.Outcome{}, assert.AnError
			}
			return facerecognition.Verified(91), nil
		})
}

func TestService_ClockInAndClockOut(t *testing.T) {
	repo, saved := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	f.expectVerified(capture.ClockIn)
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	inResp, err := f.svc.Clock(ctx, f.company, f.employee, atOffice())

	require.NoError(t, err)
	assert.Equal(t, "CLOCK_IN", inResp.Action)
	assert.Equal(t, "Clock In Successful", inResp.Message)
	assert.Equal(t, StatusPresent, inResp.Attendance.Status)
	assert.Equal(t, "FACE_VERIFIED", inResp.Attendance.VerificationMethod)
	assert.Equal(t, "09:00:00 AM", inResp.Session.ClockInTime)
	assert.Equal(t, "CLOCK_OUT", inResp.Session.NextAction)
	assert.True(t, inResp.Location.WithinRange)
	assert.Equal(t, "main", saved.OfficeKey)

	f.now = f.now.Add(8*time.Hour + 45*time.Minute)
	f.svc.now = func() time.Time { return f.now }
	flow := workflow.New(f.face, f.store, time.UTC).WithClock(func() time.Time { return f.now })
	f.svc.flow = flow

	f.expectVerified(capture.ClockOut)
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	outResp, err := f.svc.Clock(ctx, f.company, f.employee, atOffice())

	require.NoError(t, err)
	assert.Equal(t, "Clock Out Successful", outResp.Message)
	assert.Equal(t, "8h 45m", outResp.Session.WorkedDuration)
	assert.True(t, outResp.Session.Completed)
	require.NotNil(t, outResp.Attendance.ClockOut)
	assert.Equal(t, "8h 45m", saved.WorkedDuration)

	require.Len(t, f.outbox.created, 2)
	for _, e := range f.outbox.created {
		assert.Equal(t, events.AttendanceClockedTopic, e.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, e.Status)
		assert.False(t, bytes.Contains(e.Payload, []byte("frame")))
	}
	var ev events.AttendanceClockedEvent
	require.NoError(t, json.Unmarshal(f.outbox.created[1].Payload, &ev))
	assert.Equal(t, "CLOCK_OUT", ev.Action)
	assert.Equal(t, 91.0, ev.FaceConfidence)

	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestService_Clock_LateStatus(t *testing.T) {
	repo, _ := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 9, 16, 0, 0, time.UTC))

	f.expectVerified(capture.ClockIn)
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	resp, err := f.svc.Clock(context.Background(), f.company, f.employee, atOffice())

	require.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Attendance.Status)
}

func TestService_Clock_OutOfRangeWritesNothing(t *testing.T) {
	repo, saved := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	req := atOffice()
	far := testOffice.Coordinate.Latitude + 0.01
	req.Location.Latitude = &far

	_, err := f.svc.Clock(context.Background(), f.company, f.employee, req)

	assert.ErrorIs(t, err, workflowerrors.ErrOutOfRange)
	assert.Equal(t, uuid.Nil, saved.ID)
	assert.Empty(t, f.outbox.created)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestService_Clock_SkippedVerification(t *testing.T) {
	repo, saved := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	f.face.EXPECT().Health(gomock.Any()).Return(facerecognition.HealthStatus{}, assert.AnError)
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	req := atOffice()
	req.SkipVerification = true
	resp, err := f.svc.Clock(context.Background(), f.company, f.employee, req)

	require.NoError(t, err)
	assert.False(t, resp.Verification.Verified)
	assert.Equal(t, "SKIPPED", saved.VerificationMethod)
	assert.Nil(t, saved.FaceConfidence)
}

func TestService_Clock_HydratesSessionFromDatabase(t *testing.T) {
	repo, saved := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))

	*saved = Attendance{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(f.company),
		EmployeeID:     uuid.MustParse(f.employee),
		AttendanceDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ClockIn:        time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
		WorkedDuration: "0h 0m",
		Status:         StatusPresent,
	}

	f.expectVerified(capture.ClockOut)
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	resp, err := f.svc.Clock(context.Background(), f.company, f.employee, atOffice())

	require.NoError(t, err)
	assert.Equal(t, "CLOCK_OUT", resp.Action)
	assert.Equal(t, "8h 30m", resp.Session.WorkedDuration)
}

func TestService_Clock_CompletedDayIsRejected(t *testing.T) {
	repo, saved := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC))

	out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	*saved = Attendance{
		ID:       uuid.New(),
		ClockIn:  time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		ClockOut: &out,
	}

	_, err := f.svc.Clock(context.Background(), f.company, f.employee, atOffice())

	assert.ErrorIs(t, err, sessionerrors.ErrAlreadyClockedOut)
}

func TestService_Clock_DuplicateRowMapsToConflict(t *testing.T) {
	repo, _ := newSavingRepo()
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
	}
	f := newFixture(t, repo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	f.expectVerified(capture.ClockIn)
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()

	_, err := f.svc.Clock(context.Background(), f.company, f.employee, atOffice())

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	stored, _ := f.store.Get(context.Background(), f.employee, "2026-03-02")
	assert.Nil(t, stored.ClockInTime)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestService_Clock_InvalidEmployee(t *testing.T) {
	repo, _ := newSavingRepo()
	f := newFixture(t, repo, time.Now())

	_, err := f.svc.Clock(context.Background(), f.company, "not-a-uuid", atOffice())

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)
}

func TestService_Today(t *testing.T) {
	repo, saved := newSavingRepo()
	f := newFixture(t, repo, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	resp, err := f.svc.Today(ctx, f.company, f.employee)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "CLOCK_IN", resp.Session.NextAction)
	assert.Equal(t, "0h 0m", resp.Session.WorkedDuration)
	assert.Nil(t, resp.Attendance)

	*saved = Attendance{ID: uuid.New(), ClockIn: time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC), WorkedDuration: "0h 0m"}

	resp, err = f.svc.Today(ctx, f.company, f.employee)
	require.NoError(t, err)
	assert.Equal(t, "09:05:00 AM", resp.Session.ClockInTime)
	assert.Equal(t, "CLOCK_OUT", resp.Session.NextAction)
	require.NotNil(t, resp.Attendance)
}

func TestService_GetAll(t *testing.T) {
	repo, _ := newSavingRepo()
	f := newFixture(t, repo, time.Now())
	ctx := context.Background()

	var scope string
	repo.findAllByCompanyFn = func(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error) {
		scope = "company"
		return []Attendance{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}
	repo.findAllByCompanyAndEmployeeFn = func(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Attendance, error) {
		scope = "employee"
		return []Attendance{{ID: uuid.New()}}, nil
	}

	rows, err := f.svc.GetAll(ctx, f.company, f.employee, true, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "company", scope)

	rows, err = f.svc.GetAll(ctx, f.company, f.employee, false, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "employee", scope)

	_, err = f.svc.GetAll(ctx, f.company, "bad", false, ListFilter{})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)

	from, to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.GetAll(ctx, f.company, f.employee, true, ListFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}

func sampleRows() []Attendance {
	out := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	return []Attendance{
		{
			ID:                 uuid.New(),
			EmployeeID:         uuid.MustParse("2b7c1f0e-8a11-4c55-9a0e-3f2f6d1e9a01"),
			AttendanceDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			ClockIn:            time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			ClockOut:           &out,
			VerificationMethod: "FACE_VERIFIED",
			Status:             StatusPresent,
			Employee:           &EmployeeRef{Name: "Asha Patil"},
		},
		{
			ID:                 uuid.New(),
			EmployeeID:         uuid.MustParse("2b7c1f0e-8a11-4c55-9a0e-3f2f6d1e9a02"),
			AttendanceDate:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			ClockIn:            time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			VerificationMethod: "SKIPPED",
			Status:             StatusLate,
		},
	}
}

func TestService_Export(t *testing.T) {
	repo, _ := newSavingRepo()
	repo.findAllByCompanyFn = func(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error) {
		return sampleRows(), nil
	}
	f := newFixture(t, repo, time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	t.Run("csv", func(t *testing.T) {
		file, err := f.svc.Export(ctx, f.company, f.employee, true, ExportCSV, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, "text/csv", file.ContentType)
		assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

		lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Date,Employee ID,Name,Clock In,Clock Out,Hours,Status", lines[0])
		assert.Equal(t, "2026-03-02,2b7c1f0e-8a11-4c55-9a0e-3f2f6d1e9a01,Asha Patil,09:00:00 AM,06:00:00 PM,9.00,PRESENT", lines[1])
		assert.Contains(t, lines[2], "--,,LATE (UNVERIFIED)")
	})

	t.Run("xlsx", func(t *testing.T) {
		file, err := f.svc.Export(ctx, f.company, f.employee, true, ExportXLSX, ListFilter{})
		require.NoError(t, err)

		wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer wb.Close()

		rows, err := wb.GetRows("Attendance")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Employee ID", rows[0][1])
		assert.Equal(t, "Asha Patil", rows[1][2])
	})

	t.Run("pdf", func(t *testing.T) {
		file, err := f.svc.Export(ctx, f.company, f.employee, true, ExportPDF, ListFilter{})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-1.4")))
		assert.True(t, bytes.HasSuffix(file.Data, []byte("%%EOF")))
		assert.Contains(t, string(file.Data), "Asha Patil")
	})
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"": ExportCSV, "CSV": ExportCSV, "xlsx": ExportXLSX, " pdf ": ExportPDF} {
		got, err := ParseExportFormat(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseExportFormat("docx")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidExportFormat)
}

func TestBuildReportPDF_Paginates(t *testing.T) {
	lines := make([]string, pdfLinesPerPage*2+1)
	for i := range lines {
		lines[i] = "row (x)"
	}

	data, err := buildReportPDF(lines)

	require.NoError(t, err)
	assert.Contains(t, string(data), "/Count 3")
	assert.Contains(t, string(data), `row \(x\)`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusPresent, statusFor(time.Date(2026, 1, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, StatusLate, statusFor(time.Date(2026, 1, 1, 9, 15, 1, 0, time.UTC)))
}
