package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled operation. A returned error is logged; the next tick
// retries, so jobs never abort the schedule.
type Job func(ctx context.Context) error

// Scheduler runs named jobs at fixed intervals, each invocation under its
// own timeout context.
type Scheduler struct {
	cron       *cron.Cron
	jobTimeout time.Duration
}

// New creates a stopped scheduler
func New(jobTimeout time.Duration) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:       cron.New(),
		jobTimeout: jobTimeout,
	}
}

// AddInterval registers a job to run every interval once Start is called
func (s *Scheduler) AddInterval(name string, interval time.Duration, job Job) error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			log.Printf("Scheduled %s failed: %v", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for any running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
