package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"cropplanner/entities"
	"cropplanner/pkg/history/repository"
)

type historyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HistoryRepository { return &historyRepo{db} }

func (r *historyRepo) Create(ctx context.Context, rec *entities.PredictionRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *historyRepo) Recent(ctx context.Context, limit int) ([]entities.PredictionRecord, error) {
	var out []entities.PredictionRecord
	if err := r.db.WithContext(ctx).Order("prediction_id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
