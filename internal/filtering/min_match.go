package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
	"github.com/spigell/microhire/internal/skills"
)

const noSkillsMsg = "no freelancer skills to score against"

type minMatchFilter struct {
	toggle
	minimum int
	skipped bool
	matches map[int64]skills.Result
}

// NewMinMatch creates a filter that scores every job against the freelancer
// skills and drops jobs below the configured percentage. Without any freelancer
// skills nothing is scored and every job is kept.
func NewMinMatch() Filter {
	return &minMatchFilter{}
}

func (f *minMatchFilter) Name() string { return "min_match" }

func (f *minMatchFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinMatch
	}
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum match must be within 0..100, got %d", f.minimum)
	}
	return nil
}

func (f *minMatchFilter) Apply(_ context.Context, deps Deps, jobs *backend.Jobs) (*backend.Jobs, Step, error) {
	initial := jobs.Len()
	f.matches = make(map[int64]skills.Result, initial)

	f.skipped = len(skills.Parse(deps.Skills)) == 0
	if f.skipped {
		deps.Logger.Info("keeping all jobs unscored", zap.String("reason", noSkillsMsg))
		return jobs, stepOf(initial, jobs), nil
	}

	removed := jobs.Retain(func(job *backend.Job) bool {
		result := job.MatchFor(deps.Skills)
		if result.Percentage < f.minimum {
			deps.Logger.Debug("job below minimum match",
				zap.Int64("job_id", job.ID),
				zap.Int("match", result.Percentage),
				zap.Strings("missing", result.Missing),
			)
			return false
		}
		f.matches[job.ID] = result
		return true
	})

	if len(removed) > 0 {
		deps.Logger.Info("excluding jobs by match percentage",
			zap.Int("minimum", f.minimum),
			zap.Int64s("excluded_jobs", removed),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, stepOf(initial, jobs), nil
}

func (f *minMatchFilter) Matches() map[int64]skills.Result {
	if f.matches == nil {
		return map[int64]skills.Result{}
	}
	return f.matches
}

func (f *minMatchFilter) Status() Status {
	reason := f.reason
	if f.skipped && reason == "" {
		reason = noSkillsMsg
	}
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  reason,
		Details: map[string]string{"minimum": strconv.Itoa(f.minimum)},
	}
}
