// Package usecase implements member login and session authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

// OrganizationReader loads the organization a member belongs to.
type OrganizationReader interface {
	Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error)
}

// MemberRepository is the subset of member persistence used by login.
type MemberRepository interface {
	GetByEmail(ctx context.Context, email string) (*orgDomain.Member, error)
	Update(ctx context.Context, member *orgDomain.Member) error
}

// LoginUseCase authenticates members and verifies their sessions.
type LoginUseCase interface {
	// Login verifies credentials and issues a session carrying a fresh session key.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate verifies a session token.
	Authenticate(ctx context.Context, token string) (*authDomain.Session, error)
}
