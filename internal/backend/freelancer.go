package backend

import (
	"fmt"

	"github.com/spigell/microhire/internal/skills"
)

type Freelancer struct {
	ID                  int64   `json:"id"`
	FullName            string  `json:"fullName,omitempty"`
	Email               string  `json:"email,omitempty"`
	Title               string  `json:"title,omitempty"`
	Skills              any     `json:"skills,omitempty"`
	ExperienceLevel     string  `json:"experienceLevel,omitempty"`
	Location            string  `json:"location,omitempty"`
	AvgRating           float64 `json:"avgRating,omitempty"`
	ProfileCompleteness int     `json:"profileCompleteness,omitempty"`
}

// Freelancer returns the public profile of a freelancer.
func (c *Client) Freelancer(id int64) (*Freelancer, error) {
	var raw map[string]any
	if err := c.getJSON(c.url(fmt.Sprintf("/freelancers/%d", id)), nil, &raw); err != nil {
		return nil, fmt.Errorf("get freelancer %d: %w", id, err)
	}

	var freelancer Freelancer
	if err := decode(raw, &freelancer); err != nil {
		return nil, fmt.Errorf("decode freelancer %d: %w", id, err)
	}

	return &freelancer, nil
}

// SkillsInput returns the raw skills value ready for matching.
func (f *Freelancer) SkillsInput() skills.Input {
	return skills.FromAny(f.Skills)
}
