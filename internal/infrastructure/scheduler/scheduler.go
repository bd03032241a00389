// Package scheduler implements background job scheduling for StudySpark.
// It runs periodic tasks such as scanning for due study reminders and
// refreshing the leaderboard cache.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// JOB INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Job defines the interface that all scheduled jobs must implement.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Run executes the job.
	// The context is cancelled when the scheduler is stopping.
	Run(ctx context.Context) error
}

// Schedule defines when a job should run.
type Schedule interface {
	// Next returns the next time the job should run after the given time.
	Next(t time.Time) time.Time

	// String returns a human-readable representation of the schedule.
	String() string
}

// ══════════════════════════════════════════════════════════════════════════════
// INTERVAL SCHEDULE
// ══════════════════════════════════════════════════════════════════════════════

// IntervalSchedule runs a job at a fixed interval.
type IntervalSchedule struct {
	Interval time.Duration
}

// Every creates an interval schedule. Intervals under a second are
// rounded up to a second.
func Every(interval time.Duration) IntervalSchedule {
	if interval < time.Second {
		interval = time.Second
	}
	return IntervalSchedule{Interval: interval}
}

// Next returns the next run time.
func (s IntervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

// String returns a human-readable representation.
func (s IntervalSchedule) String() string {
	return fmt.Sprintf("every %s", s.Interval)
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULER
// ══════════════════════════════════════════════════════════════════════════════

// Scheduler manages and executes scheduled jobs. Each job runs in its
// own goroutine; a slow job delays its own next run, never the others.
type Scheduler struct {
	mu sync.Mutex

	logger *logger.Logger

	jobs    []*scheduledJob
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// scheduledJob wraps a Job with its schedule and counters.
type scheduledJob struct {
	job      Job
	schedule Schedule

	mu        sync.Mutex
	lastRun   time.Time
	runCount  int64
	failCount int64
}

// NewScheduler creates a new Scheduler.
func NewScheduler(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Default()
	}
	return &Scheduler{logger: log}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job, schedule Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler: cannot register %q while running", job.Name())
	}
	for _, sj := range s.jobs {
		if sj.job.Name() == job.Name() {
			return fmt.Errorf("scheduler: job %q already registered", job.Name())
		}
	}

	s.jobs = append(s.jobs, &scheduledJob{job: job, schedule: schedule})
	s.logger.Info("job registered", logger.Fields{
		"job":      job.Name(),
		"schedule": schedule.String(),
	})
	return nil
}

// Start launches all registered jobs. It returns immediately; jobs run
// until Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler: already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, sj := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(runCtx, sj)
	}

	s.logger.Info("scheduler started", logger.Fields{"jobs": len(s.jobs)})
	return nil
}

// Stop cancels all jobs and waits for them to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped", nil)
}

func (s *Scheduler) runLoop(ctx context.Context, sj *scheduledJob) {
	defer s.wg.Done()

	timer := time.NewTimer(time.Until(sj.schedule.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.runJob(ctx, sj)
			timer.Reset(time.Until(sj.schedule.Next(time.Now())))
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, sj *scheduledJob) {
	started := time.Now()

	err := sj.job.Run(ctx)
	elapsed := time.Since(started)

	sj.mu.Lock()
	sj.lastRun = started
	sj.runCount++
	if err != nil {
		sj.failCount++
	}
	sj.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("job failed", logger.Fields{
			"job":      sj.job.Name(),
			"error":    err.Error(),
			"duration": elapsed.String(),
		})
		return
	}

	s.logger.Debug("job completed", logger.Fields{
		"job":      sj.job.Name(),
		"duration": elapsed.String(),
	})
}
