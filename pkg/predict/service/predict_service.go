package service

import (
	"context"
	"errors"

	"cropplanner/pkg/model"
)

var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrModelInference   = errors.New("model inference failed")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// FeatureRecord is one prediction request.
type FeatureRecord struct {
	model.Soil
	PreviousCrop string
}

type Result struct {
	CropLabel           string
	Yield               float64
	PreviousCropEncoded int
	CropEncoded         int
}

type PredictService interface {
	PredictCropAndYield(ctx context.Context, rec FeatureRecord) (Result, error)
}

// Artifact contracts the pipeline depends on. *model.LabelEncoder and
// *model.Forest satisfy them.
type (
	Encoder interface {
		Encode(name string) (int, error)
		Decode(code int) (string, error)
	}
	Classifier interface {
		PredictClass(f model.CropFeatures) (int, error)
		OutputClasses() []int
	}
	Regressor interface {
		PredictValue(f model.YieldFeatures) (float64, error)
	}
)
