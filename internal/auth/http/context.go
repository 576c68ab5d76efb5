// Package http provides the login endpoints and the session middleware.
package http

import (
	"context"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
)

type sessionKey struct{}

// WithSession stores an authenticated session in the context.
func WithSession(ctx context.Context, session *authDomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession retrieves the authenticated session from the context.
// Returns (nil, false) on anonymous requests.
func GetSession(ctx context.Context) (*authDomain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*authDomain.Session)
	return session, ok && session != nil
}
