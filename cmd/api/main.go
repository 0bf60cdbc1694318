package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gotraffic/adapters/llm"
	"gotraffic/api"
	"gotraffic/internal"
	"gotraffic/internal/config"
	"gotraffic/internal/dataset"
)

func main() {
	godotenv.Load()
	logger := internal.DefaultLogger
	cfg := config.Load()

	loader := dataset.NewLoader(cfg.Data.Dir)
	if err := loader.Load(); err != nil {
		// Serve anyway; data endpoints return 503 until files appear.
		logger.Warn("dataset not loaded from %s: %v", cfg.Data.Dir, err)
	} else {
		logger.Info("dataset loaded from %s", cfg.Data.Dir)
	}

	chat := llm.NewClient(llm.Config{
		APIKey:    cfg.AI.APIKey,
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		Timeout:   60 * time.Second,
	})
	if cfg.AI.APIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set, chat runs in mock mode")
	}

	app := api.NewApp(cfg, loader, chat)
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: app.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on :%s", cfg.Server.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server failed: %v", err)
			os.Exit(1)
		}
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed: %v", err)
			os.Exit(1)
		}
	}
}
