package inkwell

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Authenticate(testAdminPassword, time.Hour)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if id == "" {
		t.Fatal("Authenticate returned an empty session id")
	}

	actor, err := s.CurrentUser(id)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if actor == nil {
		t.Fatal("expected an actor for a fresh session")
	}
	if actor.Name != "admin" {
		t.Errorf("actor.Name = %q, want %q", actor.Name, "admin")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Authenticate("wrong", time.Hour); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthenticateNoCredentialConfigured(t *testing.T) {
	db := t.TempDir() + "/test.db"
	s, err := NewStore(db, AuthConfig{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	// With no credential configured every password is rejected, including
	// the empty one.
	if _, err := s.Authenticate("", time.Hour); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthenticateBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	db := t.TempDir() + "/test.db"
	s, err := NewStore(db, AuthConfig{PasswordHash: string(hash)})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if _, err := s.Authenticate("s3cret", time.Hour); err != nil {
		t.Errorf("Authenticate with correct password failed: %v", err)
	}
	if _, err := s.Authenticate("nope", time.Hour); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestDistinctSessionIDs(t *testing.T) {
	s := setupTestStore(t)

	a, err := s.Authenticate(testAdminPassword, time.Hour)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	b, err := s.Authenticate(testAdminPassword, time.Hour)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if a == b {
		t.Error("two logins produced the same session id")
	}

	// Both sessions are valid independently.
	for _, id := range []string{a, b} {
		actor, err := s.CurrentUser(id)
		if err != nil || actor == nil {
			t.Errorf("CurrentUser(%s) = %v, %v", id, actor, err)
		}
	}
}

func TestDestroySession(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Authenticate(testAdminPassword, time.Hour)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if err := s.DestroySession(id); err != nil {
		t.Fatalf("DestroySession failed: %v", err)
	}

	actor, err := s.CurrentUser(id)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if actor != nil {
		t.Error("destroyed session still resolves to an actor")
	}

	// Destroying again is a no-op, not an error.
	if err := s.DestroySession(id); err != nil {
		t.Errorf("second DestroySession failed: %v", err)
	}
}

func TestCurrentUserUnknownSession(t *testing.T) {
	s := setupTestStore(t)

	actor, err := s.CurrentUser("no-such-session")
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if actor != nil {
		t.Error("unknown session id resolved to an actor")
	}
}

func TestExpiredSession(t *testing.T) {
	s := setupTestStore(t)

	// A non-positive timeout produces a session that is already expired.
	id, err := s.Authenticate(testAdminPassword, -time.Minute)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	actor, err := s.CurrentUser(id)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if actor != nil {
		t.Error("expired session resolved to an actor")
	}
}

func TestLoginPurgesExpiredSessions(t *testing.T) {
	s := setupTestStore(t)

	expired, err := s.Authenticate(testAdminPassword, -time.Minute)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if _, err := s.Authenticate(testAdminPassword, time.Hour); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE session_id = ?`, expired).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Error("expired session row should be purged on the next login")
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	s := setupTestStore(t)

	expired, err := s.Authenticate(testAdminPassword, -time.Minute)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	live, err := s.Authenticate(testAdminPassword, time.Hour)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if err := s.PurgeExpiredSessions(); err != nil {
		t.Fatalf("PurgeExpiredSessions failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE session_id = ?`, expired).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Error("expired session survived the purge")
	}
	actor, err := s.CurrentUser(live)
	if err != nil || actor == nil {
		t.Errorf("live session lost in purge: %v, %v", actor, err)
	}
}
