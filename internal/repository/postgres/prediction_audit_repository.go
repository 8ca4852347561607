package postgres

import (
	"context"
	"liverRisk/business/prediction"
	"liverRisk/domain"

	"gorm.io/gorm"
)

const maxAuditPage = 200

type PredictionAuditRepository struct {
	DB *gorm.DB
}

var _ prediction.AuditRepository = (*PredictionAuditRepository)(nil)

func NewPredictionAuditRepository(db *gorm.DB) *PredictionAuditRepository {
	return &PredictionAuditRepository{DB: db}
}

func (r *PredictionAuditRepository) Save(ctx context.Context, record *domain.PredictionAudit) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// Recent returns the newest audit rows first.
func (r *PredictionAuditRepository) Recent(ctx context.Context, limit int) ([]domain.PredictionAudit, error) {
	if limit <= 0 || limit > maxAuditPage {
		limit = maxAuditPage
	}

	var rows []domain.PredictionAudit
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
