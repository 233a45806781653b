package model

import "fmt"

// Feature names in the order the models were trained with.
var (
	CropSchema = []string{
		"N", "P", "K", "temperature", "humidity", "ph", "rainfall",
		"previous_crop_encoded",
	}
	YieldSchema = append(append([]string{}, CropSchema...), "crop_encoded")
)

// Soil holds the seven numeric measurements shared by both models.
type Soil struct {
	N           float64
	P           float64
	K           float64
	Temperature float64
	Humidity    float64
	PH          float64
	Rainfall    float64
}

// CropFeatures is the classifier input.
type CropFeatures struct {
	Soil
	PreviousCropEncoded int
}

func (f CropFeatures) Values() []float64 {
	return []float64{
		f.N, f.P, f.K, f.Temperature, f.Humidity, f.PH, f.Rainfall,
		float64(f.PreviousCropEncoded),
	}
}

// YieldFeatures is the regressor input. CropEncoded is the classifier's
// class code, never the decoded label.
type YieldFeatures struct {
	CropFeatures
	CropEncoded int
}

func (f YieldFeatures) Values() []float64 {
	return append(f.CropFeatures.Values(), float64(f.CropEncoded))
}

// SchemaError reports an artifact whose feature names do not match the
// schema the service builds vectors for.
type SchemaError struct {
	Want []string
	Got  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("feature schema mismatch: want %v, got %v", e.Want, e.Got)
}

func checkSchema(want, got []string) error {
	if len(want) != len(got) {
		return &SchemaError{Want: want, Got: got}
	}
	for i := range want {
		if want[i] != got[i] {
			return &SchemaError{Want: want, Got: got}
		}
	}
	return nil
}
