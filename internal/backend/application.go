package backend

import (
	"fmt"

	"github.com/spigell/microhire/internal/lifecycle"
	"github.com/spigell/microhire/internal/skills"
)

const applicationsPath = "/applications"

type Applications []*Application

type Application struct {
	ID               int64    `json:"id"`
	JobID            int64    `json:"jobId"`
	JobTitle         string   `json:"jobTitle,omitempty"`
	FreelancerID     int64    `json:"freelancerId"`
	FreelancerName   string   `json:"freelancerName,omitempty"`
	FreelancerSkills any      `json:"freelancerSkills,omitempty"`
	FreelancerTitle  string   `json:"freelancerTitle,omitempty"`
	ClientID         int64    `json:"clientId,omitempty"`
	MatchPercentage  *float64 `json:"matchPercentage,omitempty"`
	CoverMessage     string   `json:"coverMessage,omitempty"`
	Status           string   `json:"status,omitempty"`
	AppliedAt        string   `json:"appliedAt,omitempty"`
}

// FreelancerApplications returns every proposal the freelancer has submitted.
func (c *Client) FreelancerApplications(freelancerID int64) (*Applications, error) {
	return c.applications(fmt.Sprintf("%s/freelancer/%d", applicationsPath, freelancerID))
}

// JobApplications returns every proposal submitted for the job.
func (c *Client) JobApplications(jobID int64) (*Applications, error) {
	return c.applications(fmt.Sprintf("%s/job/%d", applicationsPath, jobID))
}

func (c *Client) applications(path string) (*Applications, error) {
	items, err := c.getItems(c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("get applications: %w", err)
	}

	var applications Applications
	if err := decode(items, &applications); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	return &applications, nil
}

func (a *Applications) JobIDs() []int64 {
	ids := make([]int64, 0, len(*a))
	for _, app := range *a {
		ids = append(ids, app.JobID)
	}
	return ids
}

// Skills returns the normalized skills the freelancer declared on the proposal.
func (a *Application) Skills() []string {
	return skills.Parse(skills.FromAny(a.FreelancerSkills))
}

// MatchFor scores the proposal's skills against the job's required skills.
// A percentage already computed by the backend takes precedence over the local one.
func (a *Application) MatchFor(required []string) skills.Result {
	return preferBackend(skills.MatchStrings(a.Skills(), required), a.MatchPercentage)
}

// Lifecycle returns the parsed proposal status.
func (a *Application) Lifecycle() (lifecycle.ApplicationStatus, error) {
	return lifecycle.ParseApplicationStatus(a.Status)
}
