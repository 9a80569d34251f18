package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/logger"
	"event-publisher/internal/router"
)

// @title Event Publisher API
// @version 1.0
// @description Approval-gated intake and calendar publication for one-shot and monthly-recurring events.
// @BasePath /
func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config %s: %v", *configPath, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Listen = ":" + v
	}

	appLog := logger.NewFromEnv()

	r := router.NewRouter(router.Options{
		Config: cfg,
		Logger: appLog,
	})

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": cfg.Listen, "year": cfg.Year})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "config.yaml"
}
