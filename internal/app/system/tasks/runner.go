// internal/app/system/tasks/runner.go
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of scheduled background work. Exactly one of Interval or
// DailyAt should be set; Interval wins when both are.
type Job struct {
	Name     string
	Interval time.Duration
	DailyAt  *ClockTime
	Run      func(ctx context.Context) error
}

// ClockTime is a local wall-clock time of day for daily jobs.
type ClockTime struct {
	Hour   int
	Minute int
}

// Daily returns a ClockTime for use in Job.DailyAt.
func Daily(hour, minute int) *ClockTime {
	return &ClockTime{Hour: hour, Minute: minute}
}

// Runner executes registered jobs on their schedules, one goroutine per job.
type Runner struct {
	jobs   []Job
	log    *zap.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRunner creates a runner for the given jobs. Jobs do not start until
// Start is called.
func NewRunner(logger *zap.Logger, jobs ...Job) *Runner {
	return &Runner{
		jobs:   jobs,
		log:    logger,
		stopCh: make(chan struct{}),
	}
}

// Start launches all job loops.
func (r *Runner) Start() {
	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(job)
	}
	r.log.Info("job runner started", zap.Int("jobs", len(r.jobs)))
}

// Stop signals all job loops to exit and waits for in-flight runs to finish.
func (r *Runner) Stop() {
	close(r.stopCh)
	r.wg.Wait()
	r.log.Info("job runner stopped")
}

func (r *Runner) loop(job Job) {
	defer r.wg.Done()

	if job.Interval > 0 {
		ticker := time.NewTicker(job.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ticker.C:
				r.runOnce(job)
			}
		}
	}

	if job.DailyAt == nil {
		r.log.Warn("job has no schedule", zap.String("job", job.Name))
		return
	}
	for {
		wait := untilNextDaily(time.Now(), *job.DailyAt)
		timer := time.NewTimer(wait)
		select {
		case <-r.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			r.runOnce(job)
		}
	}
}

func (r *Runner) runOnce(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r.log.Info("starting job", zap.String("job", job.Name))
	start := time.Now()

	err := job.Run(ctx)
	elapsed := time.Since(start)

	if err != nil {
		r.log.Error("job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return
	}
	r.log.Info("job completed",
		zap.String("job", job.Name),
		zap.Duration("duration", elapsed))
}

// untilNextDaily computes the wait until the next occurrence of t after now.
// If today's occurrence has already passed, the next one is tomorrow.
func untilNextDaily(now time.Time, t ClockTime) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
