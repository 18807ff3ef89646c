package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/planilha/internal/config"
	"github.com/JonMunkholm/planilha/internal/core"
	_ "github.com/JonMunkholm/planilha/internal/core/tables" // Register export schemas
	"github.com/JonMunkholm/planilha/internal/logging"
	"github.com/JonMunkholm/planilha/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"analyze_max_concurrent", cfg.Analysis.MaxConcurrent,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	if _, ok := core.Get(cfg.Analysis.DefaultSchema); !ok {
		slog.Error("default export schema is not registered", "schema", cfg.Analysis.DefaultSchema)
		os.Exit(1)
	}

	core.AnalysisTimeout = cfg.Analysis.Timeout
	service := core.NewService(
		core.WithLimiter(core.NewAnalysisLimiter(cfg.Analysis.MaxConcurrent, cfg.Analysis.MaxWaitTime)),
		core.WithDefaultSchema(cfg.Analysis.DefaultSchema),
	)

	slog.Info("export schemas registered", "count", core.SchemaCount())
	for _, info := range service.ListSchemas() {
		slog.Debug("export schema", "key", info.Key, "columns", len(info.Columns))
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

		if status := service.Status(); status.Active > 0 {
			slog.Info("waiting for analyses to complete", "active", status.Active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
