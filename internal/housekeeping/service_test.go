package housekeeping

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leaderturk/property-management/pkg/logger"
	"github.com/leaderturk/property-management/pkg/metrics"
)

type stubJob struct {
	name string
	spec string
	err  error
	runs atomic.Int32
}

func (j *stubJob) Name() string { return j.name }
func (j *stubJob) Spec() string { return j.spec }
func (j *stubJob) Run(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestRegistrySkipsDisabledJobs(t *testing.T) {
	reg := NewRegistry(&stubJob{name: "a", spec: "@every 1m"}, nil, &stubJob{name: "off"})
	jobs := reg.Jobs()
	if len(jobs) != 1 || jobs[0].Name() != "a" {
		t.Fatalf("unexpected jobs %v", jobs)
	}
}

func TestRunOnceRecordsOutcomes(t *testing.T) {
	promReg := prometheus.NewRegistry()
	ok := &stubJob{name: "ok", spec: "@every 1m"}
	bad := &stubJob{name: "bad", spec: "@every 1m", err: errors.New("boom")}

	svc, err := NewService(ServiceParams{
		Logger:   logger.Nop(),
		Registry: NewRegistry(ok, bad),
		Metrics:  metrics.NewJobMetrics(promReg),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.RunOnce(context.Background())

	if ok.runs.Load() != 1 || bad.runs.Load() != 1 {
		t.Fatalf("expected each job to run once")
	}
	if got := counterValue(t, promReg, "pm_job_success_total", "ok"); got != 1 {
		t.Fatalf("expected one success, got %v", got)
	}
	if got := counterValue(t, promReg, "pm_job_failure_total", "bad"); got != 1 {
		t.Fatalf("expected one failure, got %v", got)
	}
}

func TestRunOnceSkipsCanceledContext(t *testing.T) {
	job := &stubJob{name: "ok", spec: "@every 1m"}
	svc, err := NewService(ServiceParams{Logger: logger.Nop(), Registry: NewRegistry(job)})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.RunOnce(ctx)
	if job.runs.Load() != 0 {
		t.Fatalf("job should not run after cancellation")
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Logger:   logger.Nop(),
		Registry: NewRegistry(&stubJob{name: "broken", spec: "every now and then"}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.Start(context.Background()); err == nil {
		t.Fatal("expected schedule error")
	}
}

func TestStartAndStop(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Logger:   logger.Nop(),
		Registry: NewRegistry(&stubJob{name: "tick", spec: "@every 1h"}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	svc.Stop(ctx)
}

func TestNewServiceRequiresLogger(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without logger")
	}
}

type purgerFunc func(context.Context) (int64, error)

func (f purgerFunc) Purge(ctx context.Context) (int64, error) { return f(ctx) }

type sweepCounter struct{ n int }

func (s *sweepCounter) Sweep() { s.n++ }

func TestJobs(t *testing.T) {
	purge := NewSessionPurgeJob("@every 15m", purgerFunc(func(context.Context) (int64, error) { return 3, nil }), logger.Nop())
	if purge.Name() != "session_purge" || purge.Spec() != "@every 15m" {
		t.Fatalf("unexpected purge job identity")
	}
	if err := purge.Run(context.Background()); err != nil {
		t.Fatalf("purge: %v", err)
	}

	failing := NewSessionPurgeJob("@every 15m", purgerFunc(func(context.Context) (int64, error) { return 0, errors.New("db down") }), nil)
	if err := failing.Run(context.Background()); err == nil {
		t.Fatal("expected purge error to surface")
	}

	sweeper := &sweepCounter{}
	sweep := NewRateLimitSweepJob("@every 10m", sweeper)
	if err := sweep.Run(context.Background()); err != nil || sweeper.n != 1 {
		t.Fatalf("expected one sweep, got %d err=%v", sweeper.n, err)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, job string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "job" && lp.GetValue() == job {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
