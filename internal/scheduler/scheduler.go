package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// StandingsPoster is the part of the rounds service the scheduler drives.
type StandingsPoster interface {
	PostStandings(ctx context.Context, dryRun bool) error
}

// Scheduler posts the standings digest on a fixed interval.
type Scheduler struct {
	sched    gocron.Scheduler
	poster   StandingsPoster
	interval time.Duration
}

// New creates a scheduler. It does nothing until Run is called.
func New(poster StandingsPoster, interval time.Duration) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{sched: sched, poster: poster, interval: interval}, nil
}

// Run registers the digest job and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			if err := s.poster.PostStandings(ctx, false); err != nil {
				log.Error("Scheduled standings digest failed", "error", err)
			}
		}),
		gocron.WithName("standings-digest"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule standings digest: %w", err)
	}

	log.Info("Starting scheduler", "interval", s.interval)
	s.sched.Start()
	<-ctx.Done()

	log.Info("Stopping scheduler")
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
