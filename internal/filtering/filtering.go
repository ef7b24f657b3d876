// Package filtering narrows the job board down to what a freelancer should look at.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/microhire/internal/backend"
	"github.com/spigell/microhire/internal/session"
	"github.com/spigell/microhire/internal/skills"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, jobs *backend.Jobs) (*backend.Jobs, Step, error)
}

// ApplicationLister is the part of the backend client the applied filter needs.
type ApplicationLister interface {
	FreelancerApplications(freelancerID int64) (*backend.Applications, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Applications ApplicationLister
	Saved        *session.SavedJobs
	Logger       *zap.Logger
	User         session.User
	// Skills are the freelancer skills scored against each job.
	Skills skills.Input
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	IncludeApplied bool
	// MinMatch is the lowest match percentage kept, 0..100.
	MinMatch int
	// Search narrows jobs down to a case-insensitive substring.
	Search string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// scorer is implemented by filters that compute match results along the way.
type scorer interface {
	Matches() map[int64]skills.Result
}

// Default returns the filters the jobs command runs, in order.
func Default() []Filter {
	return []Filter{
		NewOpenOnly(),
		NewApplied(),
		NewSearch(),
		NewSavedOnly(),
		NewMinMatch(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// EnableByName re-enables a filter that is disabled by default.
func EnableByName(steps []Filter, name string) {
	for _, step := range steps {
		if e, ok := step.(interface{ Enable() }); ok && step.Name() == name {
			e.Enable()
		}
	}
}

// Run executes the supplied filters sequentially and returns the remaining jobs
// together with every match result computed on the way.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, jobs *backend.Jobs) (*backend.Jobs, map[int64]skills.Result, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	matches := make(map[int64]skills.Result)
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, jobs)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		jobs = next

		if s, ok := step.(scorer); ok {
			for id, result := range s.Matches() {
				matches[id] = result
			}
		}
	}

	return jobs, matches, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// toggle is embedded by filters that can be switched off at runtime.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) Enable() {
	t.disabled = false
	t.reason = ""
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func stepOf(initial int, jobs *backend.Jobs) Step {
	return Step{Initial: initial, Dropped: initial - jobs.Len(), Left: jobs.Len()}
}
