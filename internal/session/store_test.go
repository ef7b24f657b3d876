package session

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type failingKV struct {
	err error
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f *failingKV) Set(context.Context, string, string) error         { return f.err }
func (f *failingKV) Remove(context.Context, string) error              { return f.err }

func int64Ptr(v int64) *int64 { return &v }

func TestStoredUserDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kv   KV
	}{
		{
			name: "absent key",
			kv:   NewMemoryKV(),
		},
		{
			name: "malformed json",
			kv:   kvWith(t, userKey, "{not json"),
		},
		{
			name: "wrong json shape",
			kv:   kvWith(t, userKey, `[1,2,3]`),
		},
		{
			name: "blank value",
			kv:   kvWith(t, userKey, "  "),
		},
		{
			name: "read failure",
			kv:   &failingKV{err: errors.New("disk gone")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := New(tt.kv, zap.NewNop())
			user := store.StoredUser(context.Background())
			if user != (User{}) {
				t.Fatalf("expected empty user, got %+v", user)
			}
			if user.Authenticated() {
				t.Fatalf("empty user must not be authenticated")
			}
			if got := store.State(context.Background()); got != Anonymous {
				t.Fatalf("expected anonymous state, got %s", got)
			}
		})
	}
}

func TestStoredUserReadsLoginPayload(t *testing.T) {
	t.Parallel()

	kv := kvWith(t, userKey, `{"message":"Login successful","userId":7,"role":"FREELANCER","fullName":"Ada","email":"ada@example.com","profileCompleteness":80}`)
	store := New(kv, nil)

	user := store.StoredUser(context.Background())
	if !user.Authenticated() || user.ID() != 7 {
		t.Fatalf("unexpected user id: %+v", user)
	}
	if user.Role != "FREELANCER" || user.FullName != "Ada" || user.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.ProfileCompleteness == nil || *user.ProfileCompleteness != 80 {
		t.Fatalf("unexpected profile completeness: %v", user.ProfileCompleteness)
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := New(NewMemoryKV(), zap.NewNop())

	if got := store.State(ctx); got != Anonymous {
		t.Fatalf("expected anonymous, got %s", got)
	}

	if err := store.SaveUser(ctx, User{UserID: int64Ptr(3), Role: "CLIENT"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.State(ctx); got != Authenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}
	if got := store.StoredUser(ctx).Role; got != "CLIENT" {
		t.Fatalf("unexpected role: %q", got)
	}

	if err := store.ClearUser(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.State(ctx); got != Anonymous {
		t.Fatalf("expected anonymous after logout, got %s", got)
	}
}

func TestSaveUserRequiresID(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryKV(), zap.NewNop())
	if err := store.SaveUser(context.Background(), User{Email: "x@example.com"}); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}

func TestSaveUserWrapsWriteError(t *testing.T) {
	t.Parallel()

	store := New(&failingKV{err: errors.New("read-only")}, zap.NewNop())
	err := store.SaveUser(context.Background(), User{UserID: int64Ptr(1)})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "store user: read-only" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func kvWith(t *testing.T, key, value string) *MemoryKV {
	t.Helper()
	kv := NewMemoryKV()
	if err := kv.Set(context.Background(), key, value); err != nil {
		t.Fatalf("seeding kv: %v", err)
	}
	return kv
}
