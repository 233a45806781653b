package service

import (
	"context"

	"cropplanner/entities"
	predict "cropplanner/pkg/predict/service"
)

type HistoryService interface {
	Record(ctx context.Context, in predict.FeatureRecord, out predict.Result) error
	Recent(ctx context.Context, limit int) ([]entities.PredictionRecord, error)
}
