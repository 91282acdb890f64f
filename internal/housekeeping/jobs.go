package housekeeping

import (
	"context"

	"github.com/leaderturk/property-management/pkg/logger"
)

// SessionPurger drops expired login sessions.
type SessionPurger interface {
	Purge(ctx context.Context) (int64, error)
}

// SessionPurgeJob deletes expired rows from stores that keep them (memory,
// database). Redis expires keys itself, so purging there is a no-op.
type SessionPurgeJob struct {
	spec   string
	purger SessionPurger
	logg   *logger.Logger
}

func NewSessionPurgeJob(spec string, purger SessionPurger, logg *logger.Logger) *SessionPurgeJob {
	return &SessionPurgeJob{spec: spec, purger: purger, logg: logg}
}

func (j *SessionPurgeJob) Name() string { return "session_purge" }
func (j *SessionPurgeJob) Spec() string { return j.spec }

func (j *SessionPurgeJob) Run(ctx context.Context) error {
	removed, err := j.purger.Purge(ctx)
	if err != nil {
		return err
	}
	if removed > 0 && j.logg != nil {
		j.logg.Info(j.logg.WithField(ctx, "removed", removed), "session.purge.completed")
	}
	return nil
}

// Sweeper drops idle in-process rate limiter state.
type Sweeper interface {
	Sweep()
}

// RateLimitSweepJob keeps the in-process auth limiter from growing without bound.
type RateLimitSweepJob struct {
	spec    string
	sweeper Sweeper
}

func NewRateLimitSweepJob(spec string, sweeper Sweeper) *RateLimitSweepJob {
	return &RateLimitSweepJob{spec: spec, sweeper: sweeper}
}

func (j *RateLimitSweepJob) Name() string { return "rate_limit_sweep" }
func (j *RateLimitSweepJob) Spec() string { return j.spec }

func (j *RateLimitSweepJob) Run(context.Context) error {
	j.sweeper.Sweep()
	return nil
}
