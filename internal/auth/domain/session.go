// Package domain defines member sessions.
//
// A session is issued at login and carries a fresh random session key. The session key
// never touches durable storage: it lives only inside the signed session token and is
// used client-side to cache the unwrapped organization private key.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// Session is an authenticated member session.
type Session struct {
	ID             uuid.UUID
	MemberID       uuid.UUID
	OrganizationID uuid.UUID
	Role           string
	SessionKey     []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
}

// EncodedSessionKey returns the session key in standard base64, the encoding browser
// WebCrypto clients import raw keys from.
func (s *Session) EncodedSessionKey() string {
	return cryptoDomain.EncodeWeb(s.SessionKey)
}

// Close zeroes the session key.
func (s *Session) Close() {
	cryptoDomain.Zero(s.SessionKey)
}

// LoginInput carries member credentials.
type LoginInput struct {
	Email    string
	Password string //nolint:gosec // plaintext only in transit
}

// LoginOutput is returned by a successful login. It carries everything the client needs
// to unwrap the organization private key: the wrapped tuple for the password step and
// the session token whose key protects the cached result.
type LoginOutput struct {
	SessionToken      string
	ExpiresAt         time.Time
	MemberID          uuid.UUID
	OrganizationID    uuid.UUID
	PublicKey         string
	WrappedPrivateKey cryptoDomain.EncodedWrappedPrivateKey
}
