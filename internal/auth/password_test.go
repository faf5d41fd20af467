package auth_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tablica-app/backend/internal/auth"
	"github.com/tablica-app/backend/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *auth.PasswordAuthenticator {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return auth.NewPasswordAuthenticator(store)
}

func TestRegisterHashesPassword(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "alice", "pw123456")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "pw123456" {
		t.Error("password stored in plaintext")
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "alice", "pw123456"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := a.Register(ctx, "alice", "different-pw")
	if !errors.Is(err, auth.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	a := newAuthenticator(t)

	_, err := a.Register(context.Background(), "alice", "short")
	if !errors.Is(err, auth.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	registered, err := a.Register(ctx, "alice", "pw123456")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "alice", "pw123456")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %s, got %s", registered.ID, user.ID)
		}
	})

	// Wrong password and unknown username must fail with the same error so
	// the API cannot be used to probe for registered usernames.
	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "alice", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "nobody", "pw123456"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
