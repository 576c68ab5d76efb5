package domain

import (
	"github.com/whistlebase/whistlebase/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidSession indicates a missing, malformed, expired or forged session token.
	ErrInvalidSession = errors.Wrap(errors.ErrUnauthorized, "invalid session")

	// ErrMemberLocked indicates too many consecutive failed logins.
	ErrMemberLocked = errors.Wrap(errors.ErrLocked, "member is locked")
)
