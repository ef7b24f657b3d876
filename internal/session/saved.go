package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const savedJobsPrefix = "savedJobs_"

// JobIDSet is a set of backend job ids.
type JobIDSet map[int64]struct{}

func NewJobIDSet(ids ...int64) JobIDSet {
	set := make(JobIDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s JobIDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s JobIDSet) Add(id int64) {
	s[id] = struct{}{}
}

func (s JobIDSet) Delete(id int64) {
	delete(s, id)
}

func (s JobIDSet) Len() int {
	return len(s)
}

// IDs returns the ids in ascending order.
func (s JobIDSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SavedJobs stores a bookmark set per user. Writes replace the whole set;
// concurrent writers from different processes can lose updates.
type SavedJobs struct {
	kv     KV
	logger *zap.Logger
}

func NewSavedJobs(kv KV, logger *zap.Logger) *SavedJobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedJobs{kv: kv, logger: logger}
}

func savedJobsKey(userID int64) string {
	return savedJobsPrefix + strconv.FormatInt(userID, 10)
}

// Get returns the saved set for the user. Missing or unreadable state yields an empty set.
func (r *SavedJobs) Get(ctx context.Context, userID int64) JobIDSet {
	key := savedJobsKey(userID)

	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.Warn("reading saved jobs", zap.String("key", key), zap.Error(err))
		return NewJobIDSet()
	}

	if !ok || strings.TrimSpace(raw) == "" {
		return NewJobIDSet()
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		r.logger.Warn("parsing saved jobs", zap.String("key", key), zap.Error(err))
		return NewJobIDSet()
	}

	return NewJobIDSet(ids...)
}

// Set overwrites the user's saved set.
func (r *SavedJobs) Set(ctx context.Context, userID int64, ids JobIDSet) error {
	data, err := json.Marshal(ids.IDs())
	if err != nil {
		return fmt.Errorf("marshal saved jobs: %w", err)
	}

	if err := r.kv.Set(ctx, savedJobsKey(userID), string(data)); err != nil {
		return fmt.Errorf("store saved jobs: %w", err)
	}

	return nil
}

// Toggle flips the saved flag of a job and reports whether it is now saved.
func (r *SavedJobs) Toggle(ctx context.Context, userID, jobID int64) (bool, error) {
	ids := r.Get(ctx, userID)

	saved := !ids.Has(jobID)
	if saved {
		ids.Add(jobID)
	} else {
		ids.Delete(jobID)
	}

	if err := r.Set(ctx, userID, ids); err != nil {
		return !saved, err
	}

	return saved, nil
}

// Add saves a job. Saving an already saved job is a no-op.
func (r *SavedJobs) Add(ctx context.Context, userID, jobID int64) error {
	ids := r.Get(ctx, userID)
	if ids.Has(jobID) {
		return nil
	}
	ids.Add(jobID)
	return r.Set(ctx, userID, ids)
}

// Remove unsaves a job. Removing a job that is not saved is a no-op.
func (r *SavedJobs) Remove(ctx context.Context, userID, jobID int64) error {
	ids := r.Get(ctx, userID)
	if !ids.Has(jobID) {
		return nil
	}
	ids.Delete(jobID)
	return r.Set(ctx, userID, ids)
}
