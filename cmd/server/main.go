package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fabian692/ecommerce/internal/config"
	"github.com/fabian692/ecommerce/internal/httpserver"
	"github.com/fabian692/ecommerce/internal/logging"
	loggingmw "github.com/fabian692/ecommerce/internal/middleware/logging"
	"github.com/fabian692/ecommerce/internal/mykafka"
	"github.com/fabian692/ecommerce/internal/repo"
	"github.com/fabian692/ecommerce/internal/service"
	"github.com/fabian692/ecommerce/pkg/db"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var brokers []string
	if cfg.KafkaAddress != "" {
		brokers = []string{cfg.KafkaAddress}
	}
	producer := mykafka.NewProducer(brokers)

	gormRepo := &repo.GormRepo{DB: database}

	authService := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		Producer:      producer,
	}
	catalogService := &service.CatalogService{Repo: gormRepo, Producer: producer}
	cartService := &service.CartService{Repo: gormRepo, Producer: producer}

	bootstrapCtx := logging.IntoContext(context.Background(), logger)
	if cfg.AdminPassword == config.DefaultAdminPassword {
		logger.Warn("ADMIN_PASSWORD not set, using the default admin password")
	}
	if err := authService.EnsureAdmin(bootstrapCtx, cfg.AdminPassword); err != nil {
		log.Fatalf("admin bootstrap error: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authService},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogService},
		CartHandler:    &httpserver.CartHTTP{Svc: cartService},
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
