package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyops/airflow-gateway/internal/api"
	"github.com/skyops/airflow-gateway/internal/core/service"
	"github.com/skyops/airflow-gateway/internal/infrastructure/airflow"
	"github.com/skyops/airflow-gateway/internal/infrastructure/config"
	mongodb "github.com/skyops/airflow-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/skyops/airflow-gateway/internal/infrastructure/db/redis"
	"github.com/skyops/airflow-gateway/internal/infrastructure/queue"
	"github.com/skyops/airflow-gateway/pkg/logger"
)

// @title        Airflow Gateway API
// @version      1.0
// @description  Authentication and authorization gateway in front of the Apache Airflow REST API.
// @BasePath     /api
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	seed := service.SeedConfig{
		AdminPassword:   cfg.Seed.AdminPassword,
		AirflowUsername: cfg.Airflow.Username,
		AirflowPassword: cfg.Airflow.Password,
	}
	if err := service.SeedUsers(ctx, userRepo, seed, log); err != nil {
		log.Fatal().Err(err).Msg("user seeding failed")
	}

	airflowClient := airflow.NewClient(airflow.Config{
		BaseURL:         cfg.Airflow.BaseURL,
		DefaultUsername: cfg.Airflow.Username,
		DefaultPassword: cfg.Airflow.Password,
		Timeout:         cfg.Airflow.Timeout,
	}, log)

	auditRepo := mongodb.NewActionLogRepository(db)
	audit := queue.NewAuditRecorder(cfg.Audit.Buffer, auditRepo, log)
	audit.Start(ctx, cfg.Audit.Workers)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Airflow:   airflowClient,
		Audit:     audit,
		AuditRepo: auditRepo,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
