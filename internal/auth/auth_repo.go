package auth

import (
	"context"

	"go-presence/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	EmployeeIDsByCompany(ctx context.Context, companyID string) ([]string, error)
	HasEmployee(ctx context.Context, companyID, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) EmployeeIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Scopes(tenant.Scope(companyID)).
		Pluck("employee_id", &ids).Error
	return ids, err
}

// HasEmployee reports whether employeeID is an account of companyID.
// Malformed ids are never members.
func (r *repository) HasEmployee(ctx context.Context, companyID, employeeID string) (bool, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return false, nil
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
