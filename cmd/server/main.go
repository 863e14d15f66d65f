package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/config"
	"appointment-booking-api/internal/handler"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/notify"
	"appointment-booking-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	logger.Info("connected to postgres")

	// migrations
	mig, err := store.NewMigrator(pool, "db/migrations")
	if err != nil {
		logger.Fatal("migrator", zap.Error(err))
	}
	if err := mig.Run(context.Background()); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}
	mig.Close()
	logger.Info("migrations applied")

	st := store.New(pool)
	hub := notify.NewHub(logger)
	svc := booking.NewService(st, hub)
	h := handler.New(st, svc, cfg.JWTSecret, logger)

	rl := middleware.NewRateLimiter(5, 10)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Routes(hub, rl, cfg.AllowedOrigin),
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var c zap.Config
	if env == "production" {
		c = zap.NewProductionConfig()
	} else {
		c = zap.NewDevelopmentConfig()
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	c.OutputPaths = []string{"stdout"}

	logger, err := c.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}
