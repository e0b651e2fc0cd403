package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grapevine-sim/grapevine/internal/api"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(config.LogLevel()); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	tables, err := config.LoadTables(config.TablesPath())
	if err != nil {
		logger.Fatal("failed to load tables", zap.Error(err))
	}

	seed := config.SimSeed()
	size := config.TownSize()
	simulation := sim.New(seed, size, tables, logger)
	if err := simulation.Seed(); err != nil {
		logger.Fatal("failed to seed town knowledge", zap.Error(err))
	}
	logger.Info("town generated",
		zap.Int64("seed", seed),
		zap.Int("people", size),
	)

	app := api.NewApp(simulation, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Background timestep loop
	done := make(chan struct{})
	interval := time.Duration(config.StepIntervalMillis()) * time.Millisecond
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if _, err := simulation.Step(); err != nil {
					logger.Error("timestep failed", zap.Error(err))
				}
			}
		}
	}()

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	close(done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
