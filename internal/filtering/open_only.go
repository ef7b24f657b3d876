package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
	"github.com/spigell/microhire/internal/lifecycle"
)

type openOnlyFilter struct {
	toggle
}

// NewOpenOnly creates a filter that keeps only jobs still accepting proposals.
// Jobs with an unrecognized status are dropped.
func NewOpenOnly() Filter {
	return &openOnlyFilter{}
}

func (f *openOnlyFilter) Name() string { return "open_only" }

func (f *openOnlyFilter) Validate(*Config) error { return nil }

func (f *openOnlyFilter) Apply(_ context.Context, deps Deps, jobs *backend.Jobs) (*backend.Jobs, Step, error) {
	initial := jobs.Len()
	removed := jobs.Retain(func(job *backend.Job) bool {
		status, err := job.Lifecycle()
		if err != nil {
			deps.Logger.Debug("dropping job with unknown status",
				zap.Int64("job_id", job.ID),
				zap.String("status", job.Status),
			)
			return false
		}
		return status == lifecycle.JobOpen
	})

	if len(removed) > 0 {
		deps.Logger.Debug("excluding jobs that are not open",
			zap.Int64s("excluded_jobs", removed),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, stepOf(initial, jobs), nil
}

func (f *openOnlyFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
