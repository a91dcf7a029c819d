package face_test

import (
	"context"
	"errors"
	"testing"

	"go-presence/internal/audit"
	"go-presence/internal/face"
	faceMock "go-presence/internal/face/mock"
	"go-presence/internal/facerecognition"
	faceerrors "go-presence/internal/facerecognition/errors"
	"go-presence/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_DeleteUser(t *testing.T) {
	ctx := contextutil.WithRole(context.Background(), "ADMIN")
	ctx = contextutil.WithClientInfo(ctx, contextutil.ClientInfo{IP: "10.0.0.3", Device: "Web · Chrome"})

	t.Run("deleted and audited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		rec := faceMock.NewMockAuditRecorder(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, rec)

		roster.EXPECT().HasEmployee(ctx, "company-1", "emp-9").Return(true, nil)
		dir.EXPECT().Delete(ctx, "emp-9").Return(nil)
		rec.EXPECT().Record(ctx, audit.Entry{
			CompanyID: "company-1",
			ActorID:   "admin-1",
			ActorRole: "ADMIN",
			Action:    "Deleted face data",
			Target:    "emp-9",
			IPAddress: "10.0.0.3",
			Device:    "Web · Chrome",
		}).Return(nil)

		assert.NoError(t, svc.DeleteUser(ctx, "company-1", "admin-1", "emp-9"))
	})

	t.Run("audit failure does not undo the deletion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		rec := faceMock.NewMockAuditRecorder(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, rec)

		roster.EXPECT().HasEmployee(ctx, "company-1", "emp-9").Return(true, nil)
		dir.EXPECT().Delete(ctx, "emp-9").Return(nil)
		rec.EXPECT().Record(ctx, gomock.Any()).Return(errors.New("db down"))

		assert.NoError(t, svc.DeleteUser(ctx, "company-1", "admin-1", "emp-9"))
	})

	t.Run("unknown user is not audited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, faceMock.NewMockAuditRecorder(ctrl))

		roster.EXPECT().HasEmployee(ctx, "company-1", "ghost").Return(true, nil)
		dir.EXPECT().Delete(ctx, "ghost").Return(faceerrors.ErrFaceDataNotFound)

		assert.ErrorIs(t, svc.DeleteUser(ctx, "company-1", "admin-1", "ghost"), faceerrors.ErrFaceDataNotFound)
	})

	t.Run("employee of another company is not deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, faceMock.NewMockAuditRecorder(ctrl))

		roster.EXPECT().HasEmployee(ctx, "company-1", "emp-of-company-2").Return(false, nil)

		err := svc.DeleteUser(ctx, "company-1", "admin-1", "emp-of-company-2")
		assert.ErrorIs(t, err, faceerrors.ErrFaceDataNotFound)
	})

	t.Run("roster failure stops the deletion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, faceMock.NewMockAuditRecorder(ctrl))

		boom := errors.New("db down")
		roster.EXPECT().HasEmployee(ctx, "company-1", "emp-9").Return(false, boom)

		assert.ErrorIs(t, svc.DeleteUser(ctx, "company-1", "admin-1", "emp-9"), boom)
	})
}

func TestService_EnrolledUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("only the company's employees are listed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, nil)

		roster.EXPECT().EmployeeIDsByCompany(ctx, "company-1").Return([]string{"emp-1", "emp-3"}, nil)
		dir.EXPECT().EnrolledUsers(ctx).Return([]facerecognition.EnrolledUser{
			{UserID: "emp-1"}, {UserID: "emp-2"}, {UserID: "emp-3"},
		}, nil)

		users, err := svc.EnrolledUsers(ctx, "company-1")
		require.NoError(t, err)
		assert.Equal(t, []facerecognition.EnrolledUser{{UserID: "emp-1"}, {UserID: "emp-3"}}, users)
	})

	t.Run("company without employees sees nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, nil)

		roster.EXPECT().EmployeeIDsByCompany(ctx, "company-2").Return(nil, nil)
		dir.EXPECT().EnrolledUsers(ctx).Return([]facerecognition.EnrolledUser{{UserID: "emp-1"}}, nil)

		users, err := svc.EnrolledUsers(ctx, "company-2")
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("directory failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := faceMock.NewMockDirectory(ctrl)
		roster := faceMock.NewMockRoster(ctrl)
		svc := face.NewService(dir, roster, nil)

		roster.EXPECT().EmployeeIDsByCompany(ctx, "company-1").Return([]string{"emp-1"}, nil)
		dir.EXPECT().EnrolledUsers(ctx).Return(nil, faceerrors.ErrServiceUnavailable)

		_, err := svc.EnrolledUsers(ctx, "company-1")
		assert.ErrorIs(t, err, faceerrors.ErrServiceUnavailable)
	})
}
