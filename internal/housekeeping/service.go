package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/leaderturk/property-management/pkg/metrics"
)

const defaultJobTimeout = 2 * time.Minute

// ServiceParams configure the housekeeping scheduler.
type ServiceParams struct {
	Logger     *logger.Logger
	Registry   *Registry
	Metrics    *metrics.JobMetrics
	JobTimeout time.Duration
}

// Service runs registered jobs in-process on their cron schedules.
type Service struct {
	logg       *logger.Logger
	registry   *Registry
	metrics    *metrics.JobMetrics
	jobTimeout time.Duration
	cron       *cron.Cron
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	timeout := params.JobTimeout
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	return &Service{
		logg:       params.Logger,
		registry:   registry,
		metrics:    params.Metrics,
		jobTimeout: timeout,
		cron:       cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}, nil
}

// Start schedules every job and starts the scheduler. Job runs inherit ctx
// values and stop early once ctx is canceled.
func (s *Service) Start(ctx context.Context) error {
	for _, job := range s.registry.Jobs() {
		if _, err := s.cron.AddFunc(job.Spec(), func() { s.runJob(ctx, job) }); err != nil {
			return fmt.Errorf("schedule %s (%q): %w", job.Name(), job.Spec(), err)
		}
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"job": job.Name(), "spec": job.Spec()}), "housekeeping.job.scheduled")
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for running jobs up to ctx's deadline.
func (s *Service) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logg.Warn(ctx, "housekeeping.stop.timeout")
	}
}

// RunOnce executes every job immediately, in registration order.
func (s *Service) RunOnce(ctx context.Context) {
	for _, job := range s.registry.Jobs() {
		s.runJob(ctx, job)
	}
}

func (s *Service) runJob(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}
	jobCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	jobCtx = s.logg.WithField(jobCtx, "job", job.Name())
	s.logg.Debug(jobCtx, "housekeeping.job.start")
	start := time.Now()
	err := job.Run(jobCtx)
	duration := time.Since(start)
	s.observeDuration(job.Name(), duration)
	jobCtx = s.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(jobCtx, "housekeeping.job.failed", err)
		s.recordFailure(job.Name())
		return
	}
	s.logg.Debug(jobCtx, "housekeeping.job.completed")
	s.recordSuccess(job.Name())
}

func (s *Service) observeDuration(job string, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDuration(job, duration)
}

func (s *Service) recordSuccess(job string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncSuccess(job)
}

func (s *Service) recordFailure(job string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncFailure(job)
}
