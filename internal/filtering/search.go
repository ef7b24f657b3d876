package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
)

type searchFilter struct {
	toggle
	term string
}

// NewSearch creates a filter that keeps jobs whose title, description or one of
// the required skills contains the search term, ignoring case. An empty term keeps everything.
func NewSearch() Filter {
	return &searchFilter{}
}

func (f *searchFilter) Name() string { return "search" }

func (f *searchFilter) Validate(cfg *Config) error {
	f.term = ""
	if cfg != nil {
		f.term = strings.TrimSpace(cfg.Search)
	}
	return nil
}

func (f *searchFilter) Apply(_ context.Context, deps Deps, jobs *backend.Jobs) (*backend.Jobs, Step, error) {
	initial := jobs.Len()
	if f.term == "" {
		return jobs, stepOf(initial, jobs), nil
	}

	term := strings.ToLower(f.term)
	removed := jobs.Retain(func(job *backend.Job) bool {
		return containsFold(job.Title, term) || containsFold(job.Description, term) || anyContainsFold(job.Skills(), term)
	})

	if len(removed) > 0 {
		deps.Logger.Debug("excluding jobs not matching search",
			zap.String("term", f.term),
			zap.Int64s("excluded_jobs", removed),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, stepOf(initial, jobs), nil
}

func (f *searchFilter) Status() Status {
	details := map[string]string{}
	if f.term != "" {
		details["term"] = f.term
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// containsFold expects term already lowercased.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func anyContainsFold(values []string, term string) bool {
	for _, v := range values {
		if containsFold(v, term) {
			return true
		}
	}
	return false
}
