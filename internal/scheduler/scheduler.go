package scheduler

import (
	"context"
	"fmt"

	"PriceBoard/internal/ingest"
	applogger "PriceBoard/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs ingestion on a cron schedule. A failed run leaves the
// stored data untouched; the next tick simply tries again.
type Scheduler struct {
	cron   *cron.Cron
	loader *ingest.Loader
	logger *applogger.Logger
}

func New(loader *ingest.Loader, logger *applogger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		loader: loader,
		logger: logger,
	}
}

// Register adds the periodic reload job with the given cron spec.
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Info("scheduled price reload starting")
		if err := s.loader.Run(context.Background()); err != nil {
			s.logger.Error("scheduled price reload failed", applogger.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("register reload job: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}
