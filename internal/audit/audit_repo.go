package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	FindAllByCompany(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]AuditLog, error) {
	var logs []AuditLog
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if filter.From != nil {
		q = q.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("occurred_at < ?", filter.To.AddDate(0, 0, 1))
	}
	if filter.Action != "" {
		q = q.Where("action ILIKE ?", "%"+filter.Action+"%")
	}
	err := q.Order("occurred_at DESC").Find(&logs).Error
	return logs, err
}
