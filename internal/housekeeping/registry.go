package housekeeping

import "context"

// Job is a maintenance task run on a cron schedule.
type Job interface {
	Name() string
	// Spec is a robfig/cron expression such as "@every 15m" or "0 3 * * *".
	Spec() string
	Run(ctx context.Context) error
}

// Registry tracks registered jobs.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry preloaded with the provided jobs.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

// Register adds a job. Jobs with an empty spec are disabled and skipped.
func (r *Registry) Register(job Job) {
	if job == nil || job.Spec() == "" {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns the registered jobs in the order they were added.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
