package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ktsuji/csvchecker/internal/checker"
	"github.com/ktsuji/csvchecker/internal/config"
	"github.com/ktsuji/csvchecker/internal/logging"
	"github.com/ktsuji/csvchecker/internal/metrics"
	"github.com/ktsuji/csvchecker/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"encoding", cfg.Check.Encoding,
		"max_file_bytes", cfg.Check.MaxFileBytes,
		"max_physical_lines", cfg.Check.MaxPhysicalLines,
		"check_max_concurrent", cfg.Check.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Validation rules: defaults plus the operational ceilings from env
	checkCfg := checker.DefaultConfig()
	checkCfg.MaxFileBytes = cfg.Check.MaxFileBytes
	checkCfg.MaxPhysicalLines = cfg.Check.MaxPhysicalLines
	checkCfg.Encoding = cfg.Check.Encoding

	m := metrics.New()

	service, err := checker.NewService(checkCfg, checker.ServiceOptions{
		MaxConcurrent: cfg.Check.MaxConcurrent,
		MaxWait:       cfg.Check.MaxWait,
		RunTTL:        cfg.Check.RunTTL,
	}, m)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active checks to complete (with timeout)
		if active := service.ActiveChecks(); active > 0 {
			slog.Info("waiting for checks to complete", "active", active)
			if err := service.WaitForChecks(shutdownCtx); err != nil {
				slog.Warn("checks did not complete in time", "error", err)
			} else {
				slog.Info("all checks completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
