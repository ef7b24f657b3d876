package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
)

const savedOnlyOffMsg = "enabled only for the saved command"

type savedOnlyFilter struct {
	toggle
	kept int
}

// NewSavedOnly creates a filter that keeps only jobs the user bookmarked.
// It starts disabled.
func NewSavedOnly() Filter {
	return &savedOnlyFilter{toggle: toggle{disabled: true, reason: savedOnlyOffMsg}}
}

func (f *savedOnlyFilter) Name() string { return "saved_only" }

func (f *savedOnlyFilter) Validate(*Config) error { return nil }

func (f *savedOnlyFilter) Apply(ctx context.Context, deps Deps, jobs *backend.Jobs) (*backend.Jobs, Step, error) {
	initial := jobs.Len()
	if deps.Saved == nil {
		return jobs, Step{}, fmt.Errorf("saved jobs repository is required")
	}
	if !deps.User.Authenticated() {
		return jobs, Step{}, fmt.Errorf("login required to list saved jobs")
	}

	saved := deps.Saved.Get(ctx, deps.User.ID())
	removed := jobs.Retain(func(job *backend.Job) bool { return saved.Has(job.ID) })
	f.kept = jobs.Len()

	if len(removed) > 0 {
		deps.Logger.Debug("excluding jobs that are not saved",
			zap.Int64s("excluded_jobs", removed),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, stepOf(initial, jobs), nil
}

func (f *savedOnlyFilter) Status() Status {
	details := map[string]string{}
	if f.IsEnabled() {
		details["kept"] = strconv.Itoa(f.kept)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
