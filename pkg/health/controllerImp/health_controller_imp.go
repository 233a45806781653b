package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cropplanner/pkg/model"
)

var appStart = time.Now()

type HealthCtrl struct {
	db        *gorm.DB
	artifacts *model.Artifacts
}

// NewHealthCtrl takes a nil db when prediction history is disabled.
func NewHealthCtrl(db *gorm.DB, a *model.Artifacts) *HealthCtrl {
	return &HealthCtrl{db: db, artifacts: a}
}

type sub struct {
	OK      bool   `json:"ok"`
	Enabled *bool  `json:"enabled,omitempty"`
	Err     string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	models := sub{OK: h.artifacts != nil}
	var vocab map[string]int
	if h.artifacts != nil {
		vocab = map[string]int{
			"crop":          h.artifacts.CropEncoder.Len(),
			"previous_crop": h.artifacts.PreviousCropEncoder.Len(),
		}
	} else {
		models.Err = "artifacts not loaded"
	}

	db := h.checkDB(ctx)

	allOK := models.OK && db.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"models":   models,
			"database": db,
		},
		"vocabulary": vocab,
		"time":       time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}

func (h *HealthCtrl) checkDB(ctx context.Context) sub {
	enabled := h.db != nil
	out := sub{OK: true, Enabled: &enabled}
	if !enabled {
		return out
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		out.OK, out.Err = false, "db.DB(): "+err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		out.OK, out.Err = false, "ping: "+err.Error()
	}
	return out
}
