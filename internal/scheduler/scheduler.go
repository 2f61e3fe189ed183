// Package scheduler triggers the daily briefing run on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"dailybrief/internal/logger"
)

// Job is the unit of scheduled work.
type Job func(ctx context.Context)

// Scheduler runs a job on a cron spec (standard 5-field syntax).
type Scheduler struct {
	cron *cron.Cron
	spec string
}

// New creates a scheduler for the given cron spec.
func New(spec string) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		spec: spec,
	}
}

// Start registers the job and begins the cron loop. The job receives the
// provided context so an external shutdown cancels in-flight runs.
func (s *Scheduler) Start(ctx context.Context, job Job) error {
	if job == nil {
		return fmt.Errorf("scheduler job must not be nil")
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("scheduled briefing triggered", "spec", s.spec)
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Info("scheduler started", "spec", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running job to return.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logger.Info("scheduler stopped")
}
