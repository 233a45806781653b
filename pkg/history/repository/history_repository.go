package repository

import (
	"context"

	"cropplanner/entities"
)

type HistoryRepository interface {
	Create(ctx context.Context, r *entities.PredictionRecord) error
	Recent(ctx context.Context, limit int) ([]entities.PredictionRecord, error)
}
