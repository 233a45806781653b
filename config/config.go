package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"cropplanner/pkg/model"
)

type AppConfig struct {
	Port                string
	Env                 string
	LogLevel            string
	ModelDir            string
	CropModelFile       string
	YieldModelFile      string
	CropEncoderFile     string
	PrevCropEncoderFile string
	DBPath              string // empty disables prediction history
	HistoryLimit        int

	// DotEnvErr is why no .env file was loaded, if any. Load runs before
	// the logger is set up, so the caller reports it.
	DotEnvErr error `json:"-"`
}

func Load() AppConfig {
	// Load .env file if it exists
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	limit, err := strconv.Atoi(get("HISTORY_LIMIT", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	return AppConfig{
		Port:                get("PORT", "8080"),
		Env:                 get("APP_ENV", "development"),
		LogLevel:            get("LOG_LEVEL", "info"),
		ModelDir:            get("MODEL_DIR", "mlmodels"),
		CropModelFile:       get("CROP_MODEL_FILE", "crop_recommendation_model.json"),
		YieldModelFile:      get("YIELD_MODEL_FILE", "yield_prediction_model.json"),
		CropEncoderFile:     get("CROP_ENCODER_FILE", "crop_label_encoder.csv"),
		PrevCropEncoderFile: get("PREV_CROP_ENCODER_FILE", "previous_crop_encoder.csv"),
		DBPath:              get("DB_PATH", ""),
		HistoryLimit:        limit,
		DotEnvErr:           envErr,
	}
}

// ArtifactPaths resolves the model files against ModelDir. Absolute file
// names are used as given.
func (c AppConfig) ArtifactPaths() model.Paths {
	resolve := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(c.ModelDir, name)
	}
	return model.Paths{
		CropModel:           resolve(c.CropModelFile),
		YieldModel:          resolve(c.YieldModelFile),
		CropEncoder:         resolve(c.CropEncoderFile),
		PreviousCropEncoder: resolve(c.PrevCropEncoderFile),
	}
}

func (c AppConfig) HistoryEnabled() bool { return c.DBPath != "" }
