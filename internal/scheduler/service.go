package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/modxnet/modxnet-backend/internal/metrics"
	"github.com/robfig/cron/v3"
)

// Job is a named background task.
type Job struct {
	Name       string
	Spec       string // cron spec, e.g. "@every 2m" or "@daily"
	Timeout    time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Service runs registered jobs on their cron schedules. Overlapping runs of
// the same job are skipped, including a RunOnStart run still in flight when
// the first tick fires.
type Service struct {
	cron  *cron.Cron
	chain cron.Chain
	jobs  []entry
	log   *slog.Logger
}

type entry struct {
	job     Job
	wrapped cron.Job
}

func NewService() *Service {
	log := slog.Default().With("component", "scheduler")
	cl := cronLogger{log: log}
	return &Service{
		cron:  cron.New(cron.WithLogger(cl)),
		chain: cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		log:   log,
	}
}

func (s *Service) Add(job Job) error {
	if job.Timeout <= 0 {
		job.Timeout = time.Minute
	}
	schedule, err := cron.ParseStandard(job.Spec)
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name, job.Spec, err)
	}
	wrapped := s.chain.Then(cron.FuncJob(func() { s.run(job) }))
	s.cron.Schedule(schedule, wrapped)
	s.jobs = append(s.jobs, entry{job: job, wrapped: wrapped})
	return nil
}

// Start begins the schedule and kicks off RunOnStart jobs in the background.
func (s *Service) Start() {
	for _, e := range s.jobs {
		if e.job.RunOnStart {
			go e.wrapped.Run()
		}
	}
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop halts the schedule and waits for running jobs up to ctx's deadline.
func (s *Service) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out; jobs still running")
	}
}

func (s *Service) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), job.Timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		metrics.JobRuns.WithLabelValues(job.Name, "error").Inc()
		s.log.Error("job failed", "job", job.Name, "duration", time.Since(start), "error", err)
		sentry.CaptureException(fmt.Errorf("job %s: %w", job.Name, err))
		return
	}
	metrics.JobRuns.WithLabelValues(job.Name, "success").Inc()
	s.log.Debug("job finished", "job", job.Name, "duration", time.Since(start))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
