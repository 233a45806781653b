package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropplanner/pkg/model"
	"cropplanner/pkg/predict/service"
)

type predictSvc struct {
	cropModel  service.Classifier
	yieldModel service.Regressor
	cropEnc    service.Encoder
	prevEnc    service.Encoder
}

// NewPredictService wires the pipeline. It fails when the classifier can emit
// a class code the crop encoder cannot decode.
func NewPredictService(cropModel service.Classifier, yieldModel service.Regressor, cropEnc, prevEnc service.Encoder) (service.PredictService, error) {
	if cropModel == nil || yieldModel == nil || cropEnc == nil || prevEnc == nil {
		return nil, errors.New("predict service: all four artifacts are required")
	}
	for _, code := range cropModel.OutputClasses() {
		if _, err := cropEnc.Decode(code); err != nil {
			return nil, fmt.Errorf("predict service: classifier class %d not in crop vocabulary: %w", code, err)
		}
	}
	return &predictSvc{cropModel: cropModel, yieldModel: yieldModel, cropEnc: cropEnc, prevEnc: prevEnc}, nil
}

func NewFromArtifacts(a *model.Artifacts) (service.PredictService, error) {
	if a == nil {
		return nil, errors.New("predict service: artifacts not loaded")
	}
	if !slices.Equal(a.CropEncoder.Classes(), a.PreviousCropEncoder.Classes()) {
		log.Warn().
			Strs("crop_classes", a.CropEncoder.Classes()).
			Strs("previous_crop_classes", a.PreviousCropEncoder.Classes()).
			Msg("crop and previous crop vocabularies differ")
	}
	return NewPredictService(a.CropModel, a.YieldModel, a.CropEncoder, a.PreviousCropEncoder)
}

func (s *predictSvc) PredictCropAndYield(ctx context.Context, rec service.FeatureRecord) (service.Result, error) {
	l := zerolog.Ctx(ctx)

	prev, err := s.prevEnc.Encode(rec.PreviousCrop)
	if err != nil {
		return service.Result{}, fmt.Errorf("%w: %w", service.ErrUnknownCategory, err)
	}
	l.Debug().Str("previous_crop", rec.PreviousCrop).Int("encoded", prev).Msg("encoded previous crop")

	cropIn := model.CropFeatures{Soil: rec.Soil, PreviousCropEncoded: prev}
	crop, err := s.cropModel.PredictClass(cropIn)
	if err != nil {
		return service.Result{}, fmt.Errorf("%w: crop: %w", service.ErrModelInference, err)
	}
	label, err := s.cropEnc.Decode(crop)
	if err != nil {
		return service.Result{}, fmt.Errorf("%w: crop: %w", service.ErrModelInference, err)
	}
	l.Debug().Floats64("features", cropIn.Values()).Int("crop_encoded", crop).Str("crop", label).Msg("predicted crop")

	yieldIn := model.YieldFeatures{CropFeatures: cropIn, CropEncoded: crop}
	y, err := s.yieldModel.PredictValue(yieldIn)
	if err != nil {
		return service.Result{}, fmt.Errorf("%w: yield: %w", service.ErrModelInference, err)
	}
	l.Debug().Floats64("features", yieldIn.Values()).Float64("yield", y).Msg("predicted yield")

	return service.Result{CropLabel: label, Yield: y, PreviousCropEncoded: prev, CropEncoded: crop}, nil
}
