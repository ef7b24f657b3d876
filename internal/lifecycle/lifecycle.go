// Package lifecycle holds the job and proposal status transitions the client allows.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type JobStatus string

const (
	JobOpen              JobStatus = "OPEN"
	JobInProgress        JobStatus = "IN_PROGRESS"
	JobReview            JobStatus = "REVIEW"
	JobPendingCompletion JobStatus = "PENDING_COMPLETION"
	JobCompleted         JobStatus = "COMPLETED"
	JobClosed            JobStatus = "CLOSED"
)

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "APPLIED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationInterview   ApplicationStatus = "INTERVIEW"
	ApplicationAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
)

// Display order of every status.
var (
	jobOrder         = []JobStatus{JobOpen, JobInProgress, JobReview, JobPendingCompletion, JobCompleted, JobClosed}
	applicationOrder = []ApplicationStatus{ApplicationApplied, ApplicationShortlisted, ApplicationInterview, ApplicationAccepted, ApplicationRejected}
)

var jobTransitions = machine[JobStatus]{
	JobOpen:              {JobInProgress, JobClosed},
	JobInProgress:        {JobReview, JobPendingCompletion},
	JobReview:            {JobInProgress, JobPendingCompletion},
	JobPendingCompletion: {JobCompleted, JobInProgress},
	JobCompleted:         nil,
	JobClosed:            nil,
}

var applicationTransitions = machine[ApplicationStatus]{
	ApplicationApplied:     {ApplicationShortlisted, ApplicationInterview, ApplicationAccepted, ApplicationRejected},
	ApplicationShortlisted: {ApplicationInterview, ApplicationAccepted, ApplicationRejected},
	ApplicationInterview:   {ApplicationAccepted, ApplicationRejected},
	ApplicationAccepted:    nil,
	ApplicationRejected:    nil,
}

// machine maps every known status to the statuses reachable from it in one step.
type machine[S ~string] map[S][]S

func (m machine[S]) parse(raw string) (S, error) {
	status := S(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := m[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return status, nil
}

func (m machine[S]) allowed(from, to S) bool {
	for _, next := range m[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (m machine[S]) transition(from, to S) error {
	if _, ok := m[from]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if _, ok := m[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !m.allowed(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ParseJobStatus accepts any casing. An empty value is treated as OPEN, which is
// what the backend assigns to freshly posted jobs.
func ParseJobStatus(raw string) (JobStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return JobOpen, nil
	}
	return jobTransitions.parse(raw)
}

func (s JobStatus) CanTransition(to JobStatus) bool {
	return jobTransitions.allowed(s, to)
}

// Next lists the statuses reachable in one step, in display order.
func (s JobStatus) Next() []JobStatus {
	return next(jobOrder, s.CanTransition)
}

// Active reports whether work on the job is underway.
func (s JobStatus) Active() bool {
	switch s {
	case JobInProgress, JobReview, JobPendingCompletion:
		return true
	default:
		return false
	}
}

func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobClosed
}

func TransitionJob(from, to JobStatus) error {
	return jobTransitions.transition(from, to)
}

func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	return applicationTransitions.parse(raw)
}

func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	return applicationTransitions.allowed(s, to)
}

// Next lists the statuses reachable in one step, in display order.
func (s ApplicationStatus) Next() []ApplicationStatus {
	return next(applicationOrder, s.CanTransition)
}

func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

func TransitionApplication(from, to ApplicationStatus) error {
	return applicationTransitions.transition(from, to)
}

func next[S ~string](order []S, can func(S) bool) []S {
	out := make([]S, 0, len(order))
	for _, to := range order {
		if can(to) {
			out = append(out, to)
		}
	}
	return out
}
