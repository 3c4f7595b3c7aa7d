package inkwell

import (
	"crypto/subtle"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// adminName is the fixed identity attached to every authenticated session.
const adminName = "admin"

// Authenticate verifies the admin credential and, on success, creates a new
// session valid for the given timeout and returns its opaque id. Every
// successful login also purges expired session rows. A wrong credential
// returns ErrAuthenticationFailed.
//
// The purge and the insert are two independent statements, not a transaction:
// a failure between them leaves expired rows purged but no session created,
// and surfaces as a storage error.
func (s *Store) Authenticate(password string, timeout time.Duration) (string, error) {
	expires := nowUTC().Add(timeout)
	if !s.verifyPassword(password) {
		return "", ErrAuthenticationFailed
	}
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE expires <= ?`, fmtTime(nowUTC())); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO sessions (session_id, expires) VALUES (?, ?)`, id, fmtTime(expires)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) verifyPassword(password string) bool {
	if s.auth.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.auth.PasswordHash), []byte(password)) == nil
	}
	if s.auth.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.auth.Password)) == 1
}

// DestroySession deletes the session row. Deleting a session that does not
// exist is not an error.
func (s *Store) DestroySession(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID)
	return err
}

// CurrentUser returns the admin identity when a session row exists with the
// given id and an expiry strictly in the future, and nil otherwise. Validity
// is checked against the database on every call, never cached, and the
// session's expiry is not extended.
func (s *Store) CurrentUser(sessionID string) (*Actor, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM sessions WHERE session_id = ? AND expires > ?`,
		sessionID, fmtTime(nowUTC())).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Actor{Name: adminName}, nil
}

// PurgeExpiredSessions removes every session whose expiry has passed.
func (s *Store) PurgeExpiredSessions() error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE expires <= ?`, fmtTime(nowUTC()))
	return err
}

// StartSessionSweeper runs a periodic purge of expired sessions in addition
// to the lazy purge on login. Returns a stop function.
func (s *Store) StartSessionSweeper(interval time.Duration, log *zap.Logger) func() {
	if log == nil {
		log = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.PurgeExpiredSessions(); err != nil {
					log.Warn("session sweep failed", zap.Error(err))
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
