package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSoil() Soil {
	return Soil{N: 90, P: 42, K: 43, Temperature: 20.8, Humidity: 82, PH: 6.5, Rainfall: 202.9}
}

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFeatureValues_Order(t *testing.T) {
	f := YieldFeatures{
		CropFeatures: CropFeatures{Soil: Soil{N: 1, P: 2, K: 3, Temperature: 4, Humidity: 5, PH: 6, Rainfall: 7}, PreviousCropEncoded: 8},
		CropEncoded:  9,
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, f.CropFeatures.Values())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, f.Values())
	assert.Len(t, CropSchema, 8)
	assert.Equal(t, append(append([]string{}, CropSchema...), "crop_encoded"), YieldSchema)
}

func TestLoadForest_Classifier(t *testing.T) {
	m, err := LoadForest(filepath.Join("testdata", "crop_recommendation_model.json"), CropSchema, KindForestClassifier)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, m.OutputClasses())

	code, err := m.PredictClass(CropFeatures{Soil: fixtureSoil(), PreviousCropEncoded: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, code)

	dry := fixtureSoil()
	dry.Rainfall = 100
	code, err = m.PredictClass(CropFeatures{Soil: dry, PreviousCropEncoded: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestLoadForest_Regressor(t *testing.T) {
	m, err := LoadForest(filepath.Join("testdata", "yield_prediction_model.json"), YieldSchema, KindForestRegressor)
	require.NoError(t, err)

	y, err := m.PredictValue(YieldFeatures{CropFeatures: CropFeatures{Soil: fixtureSoil(), PreviousCropEncoded: 3}, CropEncoded: 2})
	require.NoError(t, err)
	assert.Equal(t, 4.75, y)

	_, err = m.PredictClass(CropFeatures{Soil: fixtureSoil()})
	assert.Error(t, err)
}

func TestLoadForest_BoostingRegressor(t *testing.T) {
	path := writeModel(t, `{
		"kind": "gradient_boosting_regressor",
		"feature_names": ["N","P","K","temperature","humidity","ph","rainfall","previous_crop_encoded","crop_encoded"],
		"learning_rate": 0.5,
		"init": 3.0,
		"estimators": [
			{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[0,-2,-2],"threshold":[50,-2,-2],"value":[[0],[-1],[1]]},
			{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[0.5]]}
		]
	}`)
	m, err := LoadForest(path, YieldSchema, KindForestRegressor, KindBoostingRegressor)
	require.NoError(t, err)

	y, err := m.PredictValue(YieldFeatures{CropFeatures: CropFeatures{Soil: fixtureSoil()}})
	require.NoError(t, err)
	assert.Equal(t, 3.75, y)
}

func TestLoadForest_SchemaMismatch(t *testing.T) {
	path := writeModel(t, `{
		"kind": "random_forest_classifier",
		"feature_names": ["P","N","K","temperature","humidity","ph","rainfall","previous_crop_encoded"],
		"classes": [0],
		"estimators": [{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1]]}]
	}`)
	_, err := LoadForest(path, CropSchema, KindForestClassifier)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, CropSchema, schemaErr.Want)
}

func TestLoadForest_WrongKind(t *testing.T) {
	_, err := LoadForest(filepath.Join("testdata", "yield_prediction_model.json"), YieldSchema, KindForestClassifier)
	assert.ErrorContains(t, err, "unexpected model kind")
}

func TestLoadForest_MalformedTrees(t *testing.T) {
	cases := map[string]string{
		"no estimators":   `"estimators": []`,
		"length mismatch": `"estimators": [{"children_left":[-1],"children_right":[],"feature":[-2],"threshold":[-2],"value":[[1]]}]`,
		"shared child":    `"estimators": [{"children_left":[1,-1],"children_right":[1,-1],"feature":[0,-2],"threshold":[1,-2],"value":[[1],[1]]}]`,
		"child range":     `"estimators": [{"children_left":[1,-1],"children_right":[5,-1],"feature":[0,-2],"threshold":[1,-2],"value":[[1],[1]]}]`,
		"bad feature":     `"estimators": [{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[12,-2,-2],"threshold":[1,-2,-2],"value":[[1],[1],[1]]}]`,
		"leaf width":      `"estimators": [{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1,2]]}]`,
		"half leaf":       `"estimators": [{"children_left":[-1,-1],"children_right":[1,-1],"feature":[-2,-2],"threshold":[-2,-2],"value":[[1],[1]]}]`,
	}
	for name, estimators := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeModel(t, `{
				"kind": "random_forest_regressor",
				"feature_names": ["N","P","K","temperature","humidity","ph","rainfall","previous_crop_encoded","crop_encoded"],
				`+estimators+`
			}`)
			_, err := LoadForest(path, YieldSchema, KindForestRegressor)
			assert.Error(t, err)
		})
	}
}

func TestLoadForest_NotJSON(t *testing.T) {
	_, err := LoadForest(writeModel(t, "\x80\x04pickle"), CropSchema)
	assert.ErrorContains(t, err, "decode model.json")
}

func TestLoadArtifacts_Fixture(t *testing.T) {
	a, err := LoadArtifacts(Paths{
		CropModel:           filepath.Join("testdata", "crop_recommendation_model.json"),
		YieldModel:          filepath.Join("testdata", "yield_prediction_model.json"),
		CropEncoder:         filepath.Join("testdata", "crop_label_encoder.csv"),
		PreviousCropEncoder: filepath.Join("testdata", "previous_crop_encoder.csv"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, a.CropEncoder.Len())
	assert.Equal(t, 4, a.PreviousCropEncoder.Len())
}

func TestLoadArtifacts_MissingFile(t *testing.T) {
	_, err := LoadArtifacts(Paths{
		CropModel:           filepath.Join("testdata", "crop_recommendation_model.json"),
		YieldModel:          filepath.Join("testdata", "missing.json"),
		CropEncoder:         filepath.Join("testdata", "crop_label_encoder.csv"),
		PreviousCropEncoder: filepath.Join("testdata", "previous_crop_encoder.csv"),
	})
	assert.ErrorContains(t, err, "yield model")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
