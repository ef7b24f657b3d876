package backend

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/microhire/internal/lifecycle"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(context.Background(), nil)
	c.APIURL = srv.URL + "/api/"
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestJobsDecodesLooseTypes(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs/all", r.URL.Path)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Len(t, r.Header.Get(requestIDHeader), 36)
		gotQuery = r.URL.Query().Get("freelancerId")
		writeJSON(t, w, []any{
			map[string]any{
				"id":             "12",
				"title":          "Landing page",
				"budget":         250.5,
				"requiredSkills": "React, CSS;HTML",
				"status":         "OPEN",
			},
			map[string]any{
				"id":             13,
				"title":          "API",
				"requiredSkills": []any{"Go", 5, " SQL "},
				"status":         "IN_PROGRESS",
			},
		})
	})

	id := int64(7)
	jobs, err := c.Jobs(&id)
	require.NoError(t, err)
	require.Equal(t, 2, jobs.Len())
	assert.Equal(t, "7", gotQuery)

	first := jobs.Items[0]
	assert.Equal(t, int64(12), first.ID)
	assert.Equal(t, 250.5, first.Budget)
	assert.Equal(t, []string{"React", "CSS", "HTML"}, first.Skills())

	status, err := first.Lifecycle()
	require.NoError(t, err)
	assert.Equal(t, lifecycle.JobOpen, status)

	assert.Equal(t, []string{"Go", "SQL"}, jobs.Items[1].Skills())
}

func TestJobsWithoutFreelancerOmitsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(t, w, []any{})
	})

	jobs, err := c.Jobs(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, jobs.Len())
}

func TestNonListResponseYieldsNoItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"error": "oops"})
	})

	jobs, err := c.Jobs(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, jobs.Len())

	apps, err := c.FreelancerApplications(1)
	require.NoError(t, err)
	assert.Empty(t, apps.JobIDs())
}

func TestGzipResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, err := io.WriteString(gz, `{"id": 3, "fullName": "Ada", "skills": "Go|Rust"}`)
		assert.NoError(t, err)
		assert.NoError(t, gz.Close())
	})

	freelancer, err := c.Freelancer(3)
	require.NoError(t, err)
	assert.Equal(t, "Ada", freelancer.FullName)

	result := (&Job{RequiredSkills: "go, python"}).MatchFor(freelancer.SkillsInput())
	assert.Equal(t, 50, result.Percentage)
}

func TestBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Job(1)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, err.Error(), "get job 1")
}

func TestFreelancerApplications(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/applications/freelancer/5", r.URL.Path)
		writeJSON(t, w, []any{
			map[string]any{"id": 1, "jobId": 10, "status": "APPLIED", "freelancerSkills": "Go"},
			map[string]any{"id": 2, "jobId": 11, "status": "REJECTED"},
		})
	})

	apps, err := c.FreelancerApplications(5)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, apps.JobIDs())

	status, err := (*apps)[1].Lifecycle()
	require.NoError(t, err)
	assert.True(t, status.Terminal())
	assert.Equal(t, []string{"Go"}, (*apps)[0].Skills())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		wantErr error
	}{
		{
			name: "successful",
			body: map[string]any{
				"message":             "Login successful",
				"userId":              42,
				"role":                "FREELANCER",
				"fullName":            "Ada Lovelace",
				"email":               "ada@example.com",
				"profileCompleteness": 80,
			},
		},
		{
			name:    "rejected by message",
			body:    map[string]any{"message": "Invalid credentials"},
			wantErr: ErrLoginRejected,
		},
		{
			name:    "successful message without id",
			body:    map[string]any{"message": "Login successful"},
			wantErr: ErrLoginRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), contentType))

				var creds map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				assert.Equal(t, "ada@example.com", creds["email"])
				assert.Equal(t, "secret", creds["password"])

				writeJSON(t, w, tt.body)
			})

			resp, err := c.Login("ada@example.com", "secret")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			user := resp.User()
			assert.True(t, user.Authenticated())
			assert.Equal(t, int64(42), user.ID())
			assert.Equal(t, "FREELANCER", user.Role)
			require.NotNil(t, user.ProfileCompleteness)
			assert.Equal(t, 80, *user.ProfileCompleteness)
		})
	}
}

func TestLoginValidatesCredentials(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, creds := range [][2]string{{"not-an-email", "secret"}, {"ada@example.com", ""}} {
		_, err := c.Login(creds[0], creds[1])
		require.Error(t, err)

		var invalid validator.ValidationErrors
		assert.True(t, errors.As(err, &invalid), "expected validation error, got %v", err)
	}
	assert.False(t, called, "invalid credentials must not reach the backend")
}

func TestJobApplications(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/applications/job/10", r.URL.Path)
		writeJSON(t, w, []any{
			map[string]any{"id": 1, "jobId": 10, "freelancerId": "5", "freelancerSkills": []any{"Go", "SQL"}},
		})
	})

	apps, err := c.JobApplications(10)
	require.NoError(t, err)
	require.Len(t, *apps, 1)
	assert.Equal(t, int64(5), (*apps)[0].FreelancerID)
	assert.Equal(t, []string{"Go", "SQL"}, (*apps)[0].Skills())
}
