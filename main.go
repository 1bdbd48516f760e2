package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduplatform/cache"
	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/payment"
	"eduplatform/routers"
	"eduplatform/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	utils.InitLogger(cfg.LogLevel, cfg.LogJSON, os.Stdout)

	if err := database.ConnectDb(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := cache.Connect(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to cache")
	}

	payment.Gateway = payment.NewStripe(cfg.StripeApiURL, cfg.StripeSecretKey)

	if cfg.SeedDemo {
		if err := utils.SeedDemoData(database.Database.Db, cfg); err != nil {
			log.Error().Err(err).Msg("failed to seed demo data")
		}
	}

	if cfg.CronEnabled {
		scheduler := utils.InitializeMaintenanceScheduler(database.Database.Db)
		defer scheduler.Stop()
	}

	app := routers.SetupApp()

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server is running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := cache.Cache.Close(); err != nil {
		log.Error().Err(err).Msg("cache close")
	}
	if err := database.Close(); err != nil {
		log.Error().Err(err).Msg("database close")
	}
}
