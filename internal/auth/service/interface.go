// Package service provides member password hashing and session token signing.
package service

import (
	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
)

// PasswordService hashes and verifies member login passwords. The login password
// hash is independent of the key derived from the same password client-side to wrap
// the organization private key.
type PasswordService interface {
	// HashPassword returns an encoded Argon2id hash.
	HashPassword(plain string) (string, error)

	// ComparePassword reports whether plain matches hash.
	ComparePassword(plain, hash string) bool
}

// SessionTokenService signs and verifies session tokens.
type SessionTokenService interface {
	// Issue signs session into a compact token.
	Issue(session *authDomain.Session) (string, error)

	// Parse verifies a token and returns its session. Any failure is ErrInvalidSession.
	Parse(token string) (*authDomain.Session, error)
}
