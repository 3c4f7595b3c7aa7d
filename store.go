package inkwell

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"
)

// Store wraps a SQLite database and provides CRUD operations for articles,
// pages, counters, admin sessions, and binary assets. Every method is an
// independent operation against the shared connection; the storage engine's
// own isolation is the only coordination between concurrent callers.
type Store struct {
	db   *sql.DB
	auth AuthConfig
}

// AuthConfig configures admin authentication for a Store. When PasswordHash
// is set it takes precedence and Password is ignored. With the zero value,
// Authenticate always fails.
type AuthConfig struct {
	Password     string // plaintext admin secret, compared in constant time
	PasswordHash string // optional bcrypt hash of the admin secret
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates missing tables.
func NewStore(path string, auth AuthConfig) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, auth: auth}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    teaser TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    published_at TEXT
);

CREATE TABLE IF NOT EXISTS pages (
    page_id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS counters (
    counter_id TEXT PRIMARY KEY,
    count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    expires TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS assets (
    asset_id TEXT PRIMARY KEY,
    mime_type TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    size INTEGER NOT NULL,
    data BLOB NOT NULL
);
`)
	return err
}

// Timestamps are stored as RFC 3339 UTC strings with second precision so that
// SQL comparison and ordering over them match chronological order.

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseNullTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	return parseTime(s.String)
}
