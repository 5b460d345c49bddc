package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lovelocal/directory-service/internal/app/background"
	"github.com/lovelocal/directory-service/internal/app/setup"
	"github.com/lovelocal/directory-service/internal/config"
	"github.com/lovelocal/directory-service/internal/delivery/httpapi"
	"github.com/lovelocal/directory-service/internal/infrastructure/migrate"
	"github.com/lovelocal/directory-service/internal/infrastructure/postgres"
	"github.com/lovelocal/directory-service/internal/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.DirectoryDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.DirectoryDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	zlog, err := logger.New(cfg.LogConfig.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	deps, err := setup.Build(db, cfg, zlog)
	if err != nil {
		log.Fatalf("failed to build dependencies: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(logger.RequestLogger(zlog))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	businessHandler := httpapi.NewBusinessHandler(deps.BusinessUsecase, zlog)
	businessHandler.Register(e)

	// Retention sweep + geocode backfill
	sweepInterval := time.Duration(cfg.Retention.SweepIntervalMin) * time.Minute
	tasks := background.NewBackgroundTasks(deps.BusinessUsecase, sweepInterval)
	tasks.StartAll(context.Background())

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("directory service started on %s\n", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
