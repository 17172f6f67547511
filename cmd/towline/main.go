package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/towline/towline/internal/app"
	"github.com/towline/towline/internal/company"
	"github.com/towline/towline/internal/dispatch"
	"github.com/towline/towline/internal/invoicing"
	"github.com/towline/towline/internal/invoicing/archive"
	"github.com/towline/towline/internal/invoicing/layout"
	"github.com/towline/towline/internal/invoicing/raster"
	"github.com/towline/towline/internal/platform/cache"
	"github.com/towline/towline/internal/platform/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var backend archive.Backend
	switch cfg.ArchiveBackend {
	case "file":
		backend = archive.NewFileBackend(cfg.ArchivePath)
	default:
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		backend = archive.NewRedisBackend(redisClient, "")
	}

	store, err := archive.Open(ctx, backend, logger)
	if err != nil {
		logger.Error("open invoice archive", slog.Any("error", err))
		os.Exit(1)
	}

	rasterizer := raster.NewClient(cfg.GotenbergURL)
	if err := rasterizer.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	layouts, err := layout.NewRenderer()
	if err != nil {
		logger.Error("parse invoice layout", slog.Any("error", err))
		os.Exit(1)
	}

	dispatchRepo := dispatch.NewRepository(pool)
	dispatchService := dispatch.NewService(dispatchRepo, logger)
	dispatchHandler := dispatch.NewHandler(logger, dispatchService)

	companyRepo := company.NewRepository(pool)
	companyHandler := company.NewHandler(logger, companyRepo)

	exporter := invoicing.NewExporter(logger, rasterizer, store, invoicing.ExporterConfig{
		SettleDelay: cfg.ExportSettleDelay,
		Timeout:     cfg.ExportTimeout,
	})
	invoicingHandler := invoicing.NewHandler(
		logger, layouts, exporter, invoicing.NewReexporter(), store,
		dispatchService, companyRepo,
	)

	router := app.NewRouter(app.RouterParams{
		Config:           cfg,
		DispatchHandler:  dispatchHandler,
		CompanyHandler:   companyHandler,
		InvoicingHandler: invoicingHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
