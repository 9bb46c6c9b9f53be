package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/scraper"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	}

	s := scraper.New(scraper.Config{
		Timeout:           cfg.Scraper.Timeout,
		Region:            cfg.Scraper.PhoneRegion,
		AllowPrivateHosts: cfg.Scraper.AllowPrivateHosts,
	}, nil, log)

	e := scraper.NewServer(scraper.NewHandler(s, log), scraper.RateLimitConfig{
		Requests: cfg.Scraper.RateLimit,
		Interval: time.Minute,
	}, log)

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Scraper listening on port %s", cfg.Scraper.Port)
		serverErr <- e.Start(":" + cfg.Scraper.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infof("Received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Scraper server error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
	log.Info("Scraper stopped")
}
