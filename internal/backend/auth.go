package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/microhire/internal/session"
)

// ErrLoginRejected is returned when the backend answers a login without success.
var ErrLoginRejected = errors.New("login rejected")

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the credentials before they are sent.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

type LoginResponse struct {
	Message             string `json:"message"`
	UserID              *int64 `json:"userId"`
	Role                string `json:"role"`
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	ProfileCompleteness *int   `json:"profileCompleteness"`
}

// Login exchanges credentials for the user identity. The backend reports failures
// in the message field with a 200 status, so the message is checked too.
func (c *Client) Login(email, password string) (*LoginResponse, error) {
	payload := &LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var resp LoginResponse
	if err := c.postJSON(c.url("/auth/login"), payload, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !strings.Contains(strings.ToLower(resp.Message), "successful") || resp.UserID == nil {
		return nil, fmt.Errorf("%w: %s", ErrLoginRejected, strings.TrimSpace(resp.Message))
	}

	return &resp, nil
}

// User converts the login response into the identity kept in the session store.
func (r *LoginResponse) User() session.User {
	return session.User{
		UserID:              r.UserID,
		Role:                r.Role,
		FullName:            r.FullName,
		Email:               r.Email,
		ProfileCompleteness: r.ProfileCompleteness,
	}
}
