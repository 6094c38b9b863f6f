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
	handlers "github.com/oksasatya/giftlink/internal/interface/http"
	"github.com/oksasatya/giftlink/internal/router"
	"github.com/oksasatya/giftlink/internal/sentiment"
	"github.com/oksasatya/giftlink/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-sentiment", cfg.Env)
	gin.SetMode(cfg.GinMode)

	analyzer, err := sentiment.NewAnalyzer()
	if err != nil {
		log.Fatalf("load lexicon: %v", err)
	}

	r := router.NewEngine(router.EngineOptions{
		CORSOrigins: cfg.CORSOrigins(),
		AccessLog:   cfg.HTTPLogEnabled || cfg.Env == "development",
	})
	r.POST("/sentiment", handlers.NewSentimentHandler(analyzer, logger).Analyze)

	srv := &http.Server{
		Addr:              ":" + cfg.SentimentPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("sentiment service starting on :%s", cfg.SentimentPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("sentiment service forced to shutdown: %v", err)
	}
	logger.Info("sentiment service exited")
}
