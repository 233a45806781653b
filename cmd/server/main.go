package main

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"cropplanner/config"
	"cropplanner/database"
	"cropplanner/pkg/logger"
	"cropplanner/pkg/model"
	"cropplanner/router"

	// Prediction
	predictCtrlImp "cropplanner/pkg/predict/controllerImp"
	predictSvcImp "cropplanner/pkg/predict/serviceImp"

	// History
	historyCtrlImp "cropplanner/pkg/history/controllerImp"
	historyRepoImp "cropplanner/pkg/history/repositoryImp"
	historySvc "cropplanner/pkg/history/service"
	historySvcImp "cropplanner/pkg/history/serviceImp"

	// Health
	healthCtrlImp "cropplanner/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logging
	cfg := config.Load()
	logger.Init("cropplanner", cfg.Env, cfg.LogLevel)
	if cfg.DotEnvErr != nil {
		log.Debug().Err(cfg.DotEnvErr).Msg("[cfg] no .env file loaded")
	}
	log.Info().Interface("config", cfg).Msg("[cfg] loaded")

	// 2) Model artifacts; refuse to serve without them
	paths := cfg.ArtifactPaths()
	artifacts, err := model.LoadArtifacts(paths)
	if err != nil {
		log.Fatal().Err(err).Str("model_dir", cfg.ModelDir).Msg("load model artifacts")
	}
	predictSvc, err := predictSvcImp.NewFromArtifacts(artifacts)
	if err != nil {
		log.Fatal().Err(err).Msg("build prediction pipeline")
	}
	log.Info().
		Int("crop_classes", artifacts.CropEncoder.Len()).
		Int("previous_crop_classes", artifacts.PreviousCropEncoder.Len()).
		Int("crop_trees", len(artifacts.CropModel.Estimators)).
		Int("yield_trees", len(artifacts.YieldModel.Estimators)).
		Msg("model artifacts loaded")

	// 3) Optional prediction history (sqlite)
	var (
		db   *gorm.DB
		hist historySvc.HistoryService
	)
	if cfg.HistoryEnabled() {
		db, err = database.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("open history database")
		}
		hist = historySvcImp.NewHistoryService(historyRepoImp.New(db), cfg.HistoryLimit)
	}

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	r := router.New(
		e,
		predictCtrlImp.New(predictSvc, hist),
		historyCtrlImp.New(hist),
		healthCtrlImp.NewHealthCtrl(db, artifacts),
	)

	// 5) Start
	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
