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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/giftlink/config"
	"github.com/oksasatya/giftlink/internal/container"
	mongoinfra "github.com/oksasatya/giftlink/internal/infrastructure/mongodb"
	"github.com/oksasatya/giftlink/internal/router"
	"github.com/oksasatya/giftlink/pkg/helpers"
	"github.com/oksasatya/giftlink/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	c := &container.Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
	}

	// MongoDB
	mc, err := mongoinfra.NewClient(ctx, cfg.MongoURL, cfg.MongoTimeout)
	if err != nil {
		logger.Fatalf("failed to connect to mongodb: %v", err)
	}
	c.Mongo = mc
	c.DB = mc.Database(cfg.MongoDB)
	if err := mongoinfra.EnsureIndexes(ctx, c.DB); err != nil {
		logger.Fatalf("failed to ensure indexes: %v", err)
	}
	logger.WithField("db", cfg.MongoDB).Info("connected to mongodb")

	// Redis (optional): gift cache and rate limiting
	if rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; continuing without cache and rate limits")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
		}
	}

	// GCS (optional): gift images
	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs init failed; image upload disabled")
		} else {
			c.GCS = gcs
		}
	}

	// Elasticsearch (optional): full-text gift search
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch init failed; text search disabled")
	} else {
		c.ES = es
	}

	// RabbitMQ (optional): welcome emails
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			c.RabbitPub = pub
		}
	}

	r := router.NewEngine(router.EngineOptions{
		CORSOrigins: cfg.CORSOrigins(),
		AccessLog:   cfg.HTTPLogEnabled || cfg.Env == "development",
	})
	reg := router.NewRegistry(r)
	router.InitModules(reg, c, router.BuildDeps(c))
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	c.Close(ctxShutdown)
	logger.Info("server exited properly")
}
