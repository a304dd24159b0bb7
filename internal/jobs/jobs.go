package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// WarmUpper refreshes cached feeds
type WarmUpper interface {
	WarmUp(ctx context.Context) error
}

// Scheduler runs the periodic cache refresh
type Scheduler struct {
	cron    *cron.Cron
	target  WarmUpper
	timeout time.Duration
	log     *logrus.Logger
}

// NewScheduler registers the refresh job on schedule. Every run is bounded
// by timeout.
func NewScheduler(schedule string, target WarmUpper, timeout time.Duration, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		target:  target,
		timeout: timeout,
		log:     log,
	}
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return nil, fmt.Errorf("failed to schedule cache refresh: %w", err)
	}
	return s, nil
}

// Run refreshes the caches once
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.target.WarmUp(ctx); err != nil {
		s.log.WithError(err).Warn("Cache refresh finished with errors")
		return
	}
	s.log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Caches refreshed")
}

// Start runs one refresh immediately and then follows the schedule
func (s *Scheduler) Start() {
	go s.Run()
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
