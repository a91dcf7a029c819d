package auth_test

import (
	"context"
	"testing"

	"go-presence/internal/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_EmployeeIDsByCompany(t *testing.T) {
	db, mock := newMockDB(t)
	repo := auth.NewRepository(db)

	companyID := uuid.NewString()
	first, second := uuid.NewString(), uuid.NewString()
	mock.ExpectQuery(`SELECT "employee_id" FROM "users" WHERE company_id = `).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"employee_id"}).AddRow(first).AddRow(second))

	ids, err := repo.EmployeeIDsByCompany(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasEmployee(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("member of the company", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := auth.NewRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE .*company_id = .*employee_id = `).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := repo.HasEmployee(context.Background(), companyID, employeeID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("employee of another company", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := auth.NewRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE .*company_id = .*employee_id = `).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := repo.HasEmployee(context.Background(), companyID, employeeID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id never queries", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := auth.NewRepository(db)

		ok, err := repo.HasEmployee(context.Background(), companyID, "emp-9")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
