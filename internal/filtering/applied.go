package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
)

const includeAppliedMsg = "include-applied flag is set"

type appliedFilter struct {
	toggle
	ignore bool
}

// NewApplied creates a filter that removes jobs the freelancer already applied to.
func NewApplied() Filter {
	return &appliedFilter{}
}

func (f *appliedFilter) Name() string { return "applied" }

func (f *appliedFilter) Validate(cfg *Config) error {
	f.ignore = cfg != nil && cfg.IncludeApplied
	return nil
}

func (f *appliedFilter) Apply(_ context.Context, deps Deps, jobs *backend.Jobs) (*backend.Jobs, Step, error) {
	initial := jobs.Len()
	if f.ignore {
		deps.Logger.Info("keeping already applied jobs", zap.String("reason", includeAppliedMsg))
		return jobs, stepOf(initial, jobs), nil
	}

	if !deps.User.Authenticated() {
		deps.Logger.Debug("no user logged in; nothing to exclude")
		return jobs, stepOf(initial, jobs), nil
	}

	if deps.Applications == nil {
		return jobs, Step{}, fmt.Errorf("backend client is required")
	}

	applications, err := deps.Applications.FreelancerApplications(deps.User.ID())
	if err != nil {
		return jobs, Step{}, fmt.Errorf("get my applications: %w", err)
	}

	excluded := jobs.Exclude(applications.JobIDs())
	if len(excluded) > 0 {
		deps.Logger.Info("excluding jobs based on my applications",
			zap.Int64s("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, stepOf(initial, jobs), nil
}

func (f *appliedFilter) Status() Status {
	details := map[string]string{
		"exclude_applied": strconv.FormatBool(!f.ignore),
	}
	reason := f.reason
	if f.ignore && reason == "" {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: reason, Details: details}
}
