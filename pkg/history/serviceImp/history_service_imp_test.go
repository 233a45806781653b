package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropplanner/database"
	"cropplanner/entities"
	repoImp "cropplanner/pkg/history/repositoryImp"
	"cropplanner/pkg/model"
	predict "cropplanner/pkg/predict/service"
)

func newService(t *testing.T, defaultLimit int) *historySvc {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewHistoryService(repoImp.New(db), defaultLimit).(*historySvc)
}

func record(prev string, yield float64) (predict.FeatureRecord, predict.Result) {
	in := predict.FeatureRecord{
		Soil:         model.Soil{N: 90, P: 42, K: 43, Temperature: 20.8, Humidity: 82, PH: 6.5, Rainfall: 202.9},
		PreviousCrop: prev,
	}
	out := predict.Result{CropLabel: "maize", Yield: yield, PreviousCropEncoded: 3, CropEncoded: 2}
	return in, out
}

func TestHistory_RecordAndRecent(t *testing.T) {
	s := newService(t, 10)
	ctx := context.Background()

	for i, prev := range []string{"rice", "cotton", "chickpea"} {
		in, out := record(prev, float64(i))
		require.NoError(t, s.Record(ctx, in, out))
	}

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "chickpea", got[0].PreviousCrop)
	assert.Equal(t, "rice", got[2].PreviousCrop)

	first := got[2]
	assert.Equal(t, entities.PredictionRecord{
		PredictionID:        first.PredictionID,
		N:                   90,
		P:                   42,
		K:                   43,
		Temperature:         20.8,
		Humidity:            82,
		PH:                  6.5,
		Rainfall:            202.9,
		PreviousCrop:        "rice",
		PreviousCropEncoded: 3,
		PredictedCrop:       "maize",
		CropEncoded:         2,
		PredictedYield:      0,
		CreatedAt:           first.CreatedAt,
	}, first)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestHistory_Limits(t *testing.T) {
	s := newService(t, 2)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		in, out := record("rice", float64(i))
		require.NoError(t, s.Record(ctx, in, out))
	}

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.Recent(ctx, 10_000)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestNewHistoryService_DefaultLimit(t *testing.T) {
	assert.Equal(t, 50, NewHistoryService(nil, 0).(*historySvc).defaultLimit)
	assert.Equal(t, 50, NewHistoryService(nil, maxLimit+1).(*historySvc).defaultLimit)
	assert.Equal(t, 7, NewHistoryService(nil, 7).(*historySvc).defaultLimit)
}
