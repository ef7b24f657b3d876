// Package session keeps the logged-in user and their saved jobs on the local machine.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const userKey = "user"

// ErrMissingUserID is returned when saving an identity without a user id.
var ErrMissingUserID = errors.New("user id is required")

// State is the session lifecycle: anonymous until login, authenticated until logout.
type State string

const (
	Anonymous     State = "anonymous"
	Authenticated State = "authenticated"
)

// User mirrors the backend login response. UserID is nil when nobody is logged in.
type User struct {
	UserID              *int64 `json:"userId,omitempty"`
	Role                string `json:"role,omitempty"`
	FullName            string `json:"fullName,omitempty"`
	Email               string `json:"email,omitempty"`
	ProfileCompleteness *int   `json:"profileCompleteness,omitempty"`
}

func (u User) Authenticated() bool {
	return u.UserID != nil
}

// ID returns the user id, or zero for an anonymous user.
func (u User) ID() int64 {
	if u.UserID == nil {
		return 0
	}
	return *u.UserID
}

// Store reads and writes the persisted identity.
type Store struct {
	kv     KV
	logger *zap.Logger
}

func New(kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// StoredUser returns the persisted identity. Missing or unreadable state yields
// an empty User; failures are logged, not returned.
func (s *Store) StoredUser(ctx context.Context) User {
	raw, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		s.logger.Warn("reading stored user", zap.Error(err))
		return User{}
	}

	if !ok || strings.TrimSpace(raw) == "" {
		return User{}
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("parsing stored user", zap.Error(err))
		return User{}
	}

	return user
}

// SaveUser persists the identity returned by a successful login.
func (s *Store) SaveUser(ctx context.Context, user User) error {
	if user.UserID == nil {
		return ErrMissingUserID
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := s.kv.Set(ctx, userKey, string(data)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	return nil
}

// ClearUser forgets the identity. Saved jobs are kept for the next login.
func (s *Store) ClearUser(ctx context.Context) error {
	if err := s.kv.Remove(ctx, userKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

func (s *Store) State(ctx context.Context) State {
	if s.StoredUser(ctx).Authenticated() {
		return Authenticated
	}
	return Anonymous
}
