package inkwell

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested article, page, or asset does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrUnauthorized is returned when a mutating operation is called without an
// authenticated actor.
var ErrUnauthorized = errors.New("inkwell: unauthorized")

// ErrAuthenticationFailed is returned by Authenticate on a wrong credential.
var ErrAuthenticationFailed = errors.New("inkwell: authentication failed")
