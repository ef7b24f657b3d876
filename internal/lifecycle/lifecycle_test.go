package lifecycle

import (
	"errors"
	"slices"
	"testing"
)

func TestParseJobStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect JobStatus
		err    error
	}{
		{input: "OPEN", expect: JobOpen},
		{input: " in_progress ", expect: JobInProgress},
		{input: "", expect: JobOpen},
		{input: "Completed", expect: JobCompleted},
		{input: "archived", err: ErrUnknownStatus},
	}

	for _, tt := range tests {
		got, err := ParseJobStatus(tt.input)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Fatalf("ParseJobStatus(%q): expected %v, got %v", tt.input, tt.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseJobStatus(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.expect {
			t.Fatalf("ParseJobStatus(%q): expected %s, got %s", tt.input, tt.expect, got)
		}
	}
}

func TestTransitionJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
		err  error
	}{
		{name: "hire freelancer", from: JobOpen, to: JobInProgress},
		{name: "close unassigned job", from: JobOpen, to: JobClosed},
		{name: "submit for review", from: JobInProgress, to: JobReview},
		{name: "request changes", from: JobReview, to: JobInProgress},
		{name: "ask for completion", from: JobReview, to: JobPendingCompletion},
		{name: "complete", from: JobPendingCompletion, to: JobCompleted},
		{name: "skip hiring", from: JobOpen, to: JobCompleted, err: ErrInvalidTransition},
		{name: "reopen completed", from: JobCompleted, to: JobOpen, err: ErrInvalidTransition},
		{name: "same status", from: JobOpen, to: JobOpen, err: ErrInvalidTransition},
		{name: "unknown source", from: JobStatus("DRAFT"), to: JobOpen, err: ErrUnknownStatus},
		{name: "unknown target", from: JobOpen, to: JobStatus("DRAFT"), err: ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := TransitionJob(tt.from, tt.to)
			if tt.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if got := tt.from.CanTransition(tt.to); got != (tt.err == nil) {
				t.Fatalf("CanTransition disagrees with TransitionJob: %v", got)
			}
		})
	}
}

func TestJobStatusClassification(t *testing.T) {
	t.Parallel()

	active := map[JobStatus]bool{
		JobOpen:              false,
		JobInProgress:        true,
		JobReview:            true,
		JobPendingCompletion: true,
		JobCompleted:         false,
		JobClosed:            false,
	}
	for status, expect := range active {
		if got := status.Active(); got != expect {
			t.Fatalf("%s.Active(): expected %v, got %v", status, expect, got)
		}
	}

	if !JobCompleted.Terminal() || !JobClosed.Terminal() || JobOpen.Terminal() {
		t.Fatalf("unexpected terminal classification")
	}
}

func TestTransitionApplication(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from ApplicationStatus
		to   ApplicationStatus
		err  error
	}{
		{name: "shortlist", from: ApplicationApplied, to: ApplicationShortlisted},
		{name: "interview directly", from: ApplicationApplied, to: ApplicationInterview},
		{name: "accept after interview", from: ApplicationInterview, to: ApplicationAccepted},
		{name: "reject shortlisted", from: ApplicationShortlisted, to: ApplicationRejected},
		{name: "accept applied", from: ApplicationApplied, to: ApplicationAccepted},
		{name: "back to applied", from: ApplicationInterview, to: ApplicationApplied, err: ErrInvalidTransition},
		{name: "reject accepted", from: ApplicationAccepted, to: ApplicationRejected, err: ErrInvalidTransition},
		{name: "revive rejected", from: ApplicationRejected, to: ApplicationApplied, err: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := TransitionApplication(tt.from, tt.to)
			if tt.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestParseApplicationStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseApplicationStatus("shortlisted")
	if err != nil || got != ApplicationShortlisted {
		t.Fatalf("unexpected result: %s, %v", got, err)
	}

	if _, err := ParseApplicationStatus(""); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus for empty status, got %v", err)
	}

	if !ApplicationRejected.Terminal() || ApplicationInterview.Terminal() {
		t.Fatalf("unexpected terminal classification")
	}
}

func TestNext(t *testing.T) {
	t.Parallel()

	jobs := map[JobStatus][]JobStatus{
		JobOpen:              {JobInProgress, JobClosed},
		JobReview:            {JobInProgress, JobPendingCompletion},
		JobPendingCompletion: {JobInProgress, JobCompleted},
		JobCompleted:         {},
	}
	for from, expect := range jobs {
		if got := from.Next(); !slices.Equal(got, expect) {
			t.Fatalf("%s.Next(): expected %v, got %v", from, expect, got)
		}
	}

	applications := map[ApplicationStatus][]ApplicationStatus{
		ApplicationApplied:     {ApplicationShortlisted, ApplicationInterview, ApplicationAccepted, ApplicationRejected},
		ApplicationInterview:   {ApplicationAccepted, ApplicationRejected},
		ApplicationRejected:    {},
		ApplicationStatus("X"): {},
	}
	for from, expect := range applications {
		if got := from.Next(); !slices.Equal(got, expect) {
			t.Fatalf("%s.Next(): expected %v, got %v", from, expect, got)
		}
	}
}
