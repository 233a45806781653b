package model

import "fmt"

// Paths locates the four artifacts on disk.
type Paths struct {
	CropModel           string
	YieldModel          string
	CropEncoder         string
	PreviousCropEncoder string
}

// Artifacts is the read-only model state shared by all requests.
type Artifacts struct {
	CropModel           *Forest
	YieldModel          *Forest
	CropEncoder         *LabelEncoder
	PreviousCropEncoder *LabelEncoder
}

// LoadArtifacts loads and validates all four artifacts. Any failure is
// returned so the caller can refuse to serve.
func LoadArtifacts(p Paths) (*Artifacts, error) {
	crop, err := LoadForest(p.CropModel, CropSchema, KindForestClassifier)
	if err != nil {
		return nil, fmt.Errorf("crop model: %w", err)
	}
	yield, err := LoadForest(p.YieldModel, YieldSchema, KindForestRegressor, KindBoostingRegressor)
	if err != nil {
		return nil, fmt.Errorf("yield model: %w", err)
	}
	cropEnc, err := LoadLabelEncoder(p.CropEncoder)
	if err != nil {
		return nil, fmt.Errorf("crop encoder: %w", err)
	}
	prevEnc, err := LoadLabelEncoder(p.PreviousCropEncoder)
	if err != nil {
		return nil, fmt.Errorf("previous crop encoder: %w", err)
	}
	return &Artifacts{CropModel: crop, YieldModel: yield, CropEncoder: cropEnc, PreviousCropEncoder: prevEnc}, nil
}
