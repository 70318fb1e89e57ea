package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PriceBoard/internal/handler/api"
	"PriceBoard/internal/ingest"
	"PriceBoard/internal/repository"
	"PriceBoard/internal/scheduler"
	"PriceBoard/internal/usecase"
	"PriceBoard/pkg/config"
	xhttp "PriceBoard/pkg/http"
	applogger "PriceBoard/pkg/logger"
	"PriceBoard/pkg/metrics"
	pkgsqlite "PriceBoard/pkg/sqlite"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	db         *pkgsqlite.Client
	loader     *ingest.Loader
	scheduler  *scheduler.Scheduler
	httpServer *xhttp.Server
}

// New wires every dependency explicitly: store, ingestion pipeline,
// usecases, handlers, HTTP server, and the optional reload schedule.
func New(cfg *config.Config) (*App, error) {
	logger, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := pkgsqlite.NewClient(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.InitSchema(ctx, repository.Schema()); err != nil {
		_ = db.Close()
		return nil, err
	}

	priceStore := repository.NewSQLitePriceStore(db)
	priceStore.SetLogger(logger)
	prefStore := repository.NewSQLitePreferenceStore(db)

	loader := ingest.NewLoader(cfg.Ingest.CSVPath, priceStore, logger, metrics.New())

	handlers := &api.Handlers{
		Prices:   api.NewPricesHandler(logger, usecase.NewPricesUseCase(priceStore, loader)),
		Settings: api.NewSettingsHandler(logger, usecase.NewSettingsUseCase(prefStore)),
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORS.AllowOrigins),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path))
	}

	app := &App{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		loader:     loader,
		httpServer: xhttp.NewServer(handlers, logger, opts...),
	}

	if cfg.Ingest.RefreshCron != "" {
		sched := scheduler.New(loader, logger)
		if err := sched.Register(cfg.Ingest.RefreshCron); err != nil {
			_ = db.Close()
			return nil, err
		}
		app.scheduler = sched
	}

	return app, nil
}

// Run performs the startup ingest, starts the HTTP server and the optional
// schedule, and blocks until interrupted. A missing feed is only a warning;
// a structurally broken feed fails startup.
func (a *App) Run() error {
	if err := a.loader.Run(context.Background()); err != nil {
		return fmt.Errorf("initial ingest: %w", err)
	}

	if a.scheduler != nil {
		a.scheduler.Start()
	}
	if err := a.httpServer.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.db.Close(); err != nil {
		a.logger.Warn("database close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
