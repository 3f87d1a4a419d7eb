package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/strategy-mapper/internal/config"
	"github.com/BerylCAtieno/strategy-mapper/internal/gemini"
	"github.com/BerylCAtieno/strategy-mapper/internal/logging"
	"github.com/BerylCAtieno/strategy-mapper/internal/metrics"
	"github.com/BerylCAtieno/strategy-mapper/internal/web"
	"github.com/BerylCAtieno/strategy-mapper/internal/workspace"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("MAPPER_CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.ValidateServer(); err != nil {
		logger.Fatal("invalid configuration", logging.Err(err))
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Initialize Gemini client
	geminiClient, err := gemini.NewGeminiClient(ctx, cfg.Gemini, logger, m)
	if err != nil {
		logger.Fatal("failed to create Gemini client", logging.Err(err))
	}
	defer geminiClient.Close()

	registry := workspace.NewRegistry(geminiClient, logger, m)
	router, err := web.NewServer(cfg, registry, m, logger).Router()
	if err != nil {
		logger.Fatal("failed to build router", logging.Err(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("strategy mapper starting",
		logging.String("addr", srv.Addr),
		logging.String("fast_model", cfg.Gemini.FastModel),
		logging.String("pro_model", cfg.Gemini.ProModel),
	)
	logger.Info("agent card available", logging.String("url", "http://localhost:"+cfg.Server.Port+"/.well-known/agent.json"))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", logging.Err(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", logging.Err(err))
	}
}
