package backend

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"

	"github.com/spigell/microhire/internal/lifecycle"
	"github.com/spigell/microhire/internal/skills"
)

const jobsPath = "/jobs"

type Jobs struct {
	Items []*Job
}

type Job struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Budget          float64  `json:"budget,omitempty"`
	Deadline        string   `json:"deadline,omitempty"`
	ClientID        int64    `json:"clientId,omitempty"`
	ClientName      string   `json:"clientName,omitempty"`
	FreelancerID    *int64   `json:"freelancerId,omitempty"`
	RequiredSkills  any      `json:"requiredSkills,omitempty"`
	Status          string   `json:"status,omitempty"`
	Category        string   `json:"category,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	Progress        *int     `json:"progress,omitempty"`
	MatchPercentage *float64 `json:"matchPercentage,omitempty"`
}

// Jobs returns all posted jobs. When freelancerID is set the backend also fills
// in its own match percentage for that freelancer.
func (c *Client) Jobs(freelancerID *int64) (*Jobs, error) {
	q := url.Values{}
	if freelancerID != nil {
		q.Set("freelancerId", strconv.FormatInt(*freelancerID, 10))
	}

	items, err := c.getItems(c.url(jobsPath+"/all"), q)
	if err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}

	var jobs []*Job
	if err := decode(items, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	return &Jobs{Items: jobs}, nil
}

// Job returns a single job by id.
func (c *Client) Job(id int64) (*Job, error) {
	var raw map[string]any
	if err := c.getJSON(c.url(fmt.Sprintf("%s/%d", jobsPath, id)), nil, &raw); err != nil {
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}

	var job Job
	if err := decode(raw, &job); err != nil {
		return nil, fmt.Errorf("decode job %d: %w", id, err)
	}

	return &job, nil
}

// Skills returns the normalized required skills of the job.
func (j *Job) Skills() []string {
	return skills.Parse(skills.FromAny(j.RequiredSkills))
}

// Lifecycle returns the parsed job status.
func (j *Job) Lifecycle() (lifecycle.JobStatus, error) {
	return lifecycle.ParseJobStatus(j.Status)
}

// MatchFor scores the freelancer skills against this job's requirements.
// A percentage already computed by the backend takes precedence over the local one.
func (j *Job) MatchFor(freelancerSkills skills.Input) skills.Result {
	return preferBackend(skills.Match(freelancerSkills, skills.FromAny(j.RequiredSkills)), j.MatchPercentage)
}

// BackendMatch returns the rounded backend match percentage, if the backend sent one.
func (j *Job) BackendMatch() (int, bool) {
	return roundPercentage(j.MatchPercentage)
}

func roundPercentage(p *float64) (int, bool) {
	if p == nil {
		return 0, false
	}
	return int(math.Round(*p)), true
}

func preferBackend(result skills.Result, p *float64) skills.Result {
	if pct, ok := roundPercentage(p); ok {
		result.Percentage = pct
	}
	return result
}

func (v *Jobs) Len() int {
	return len(v.Items)
}

func (v *Jobs) FindByID(id int64) *Job {
	for _, job := range v.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Exclude removes jobs with the given ids, preserving order, and returns the removed ids.
func (v *Jobs) Exclude(ids []int64) []int64 {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	return v.Retain(func(job *Job) bool {
		_, found := drop[job.ID]
		return !found
	})
}

// Retain keeps jobs for which keep returns true, preserving order, and returns the removed ids.
func (v *Jobs) Retain(keep func(*Job) bool) []int64 {
	var removed []int64
	kept := v.Items[:0]
	for _, job := range v.Items {
		if keep(job) {
			kept = append(kept, job)
			continue
		}
		removed = append(removed, job.ID)
	}
	v.Items = kept
	return removed
}

func (v *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByClient groups jobs by the client that posted them.
func (v *Jobs) ReportByClient() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		key := fmt.Sprintf("%s (%d)", job.ClientName, job.ClientID)
		report[key] = append(report[key], map[string]string{
			"id":               strconv.FormatInt(job.ID, 10),
			"title":            job.Title,
			"budget":           strconv.FormatFloat(job.Budget, 'f', -1, 64),
			"status":           job.Status,
			"experience_level": job.ExperienceLevel,
		})
	}
	return report
}
