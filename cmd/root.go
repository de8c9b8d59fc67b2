package main

import (
	"context"

	"github.com/jackgraver/simple-track/config"
	"github.com/jackgraver/simple-track/logger"
	"github.com/jackgraver/simple-track/services"
	"github.com/jackgraver/simple-track/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "simpletrack",
	Short: "Diet tracking API server and tools",
	Long: `simpletrack stores foods, meals and daily meal plans and serves them
over a REST API. Configuration comes from the environment or a .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, totalsCmd)
}

// app is the wired set of services shared by the subcommands.
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	hub     *services.RealtimeHub
	auth    *services.AuthService
	foods   *services.FoodService
	meals   *services.MealService
	alerts  *services.AlertService
	days    *services.DayService
	exports *services.ExportService
	seeder  *services.Seeder
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Env)

	db, err := config.OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: db, hub: services.NewRealtimeHub()}
	a.auth = services.NewAuthService(db, cfg.JWTSecret)
	a.foods = services.NewFoodService(db)
	a.meals = services.NewMealService(db)
	a.alerts = services.NewAlertService(db, a.hub)
	a.days = services.NewDayService(db, a.meals, a.alerts, services.GoalDefaults{
		Calories: cfg.DefaultCalories,
		Protein:  cfg.DefaultProtein,
		Fiber:    cfg.DefaultFiber,
	})

	var uploader services.ObjectUploader
	if cfg.S3Bucket != "" {
		u, err := utils.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3BaseURL)
		if err != nil {
			return nil, err
		}
		uploader = u
	} else {
		logger.Info("S3_BUCKET not set, month export disabled")
	}
	a.exports = services.NewExportService(a.days, uploader)
	a.seeder = services.NewSeeder(db, a.foods, a.meals)
	return a, nil
}

func (a *app) close() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("error closing the database connection", zap.Error(err))
	}
}
