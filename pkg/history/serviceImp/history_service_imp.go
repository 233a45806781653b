package serviceImp

import (
	"context"

	"cropplanner/entities"
	repo "cropplanner/pkg/history/repository"
	"cropplanner/pkg/history/service"
	predict "cropplanner/pkg/predict/service"
)

const maxLimit = 500

type historySvc struct {
	r            repo.HistoryRepository
	defaultLimit int
}

func NewHistoryService(r repo.HistoryRepository, defaultLimit int) service.HistoryService {
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = 50
	}
	return &historySvc{r: r, defaultLimit: defaultLimit}
}

func (s *historySvc) Record(ctx context.Context, in predict.FeatureRecord, out predict.Result) error {
	return s.r.Create(ctx, &entities.PredictionRecord{
		N:                   in.N,
		P:                   in.P,
		K:                   in.K,
		Temperature:         in.Temperature,
		Humidity:            in.Humidity,
		PH:                  in.PH,
		Rainfall:            in.Rainfall,
		PreviousCrop:        in.PreviousCrop,
		PreviousCropEncoded: out.PreviousCropEncoded,
		PredictedCrop:       out.CropLabel,
		CropEncoded:         out.CropEncoded,
		PredictedYield:      out.Yield,
	})
}

// Recent returns the newest records first. Non-positive limits fall back to
// the configured default; limits are capped at maxLimit.
func (s *historySvc) Recent(ctx context.Context, limit int) ([]entities.PredictionRecord, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.r.Recent(ctx, limit)
}
