// Package usecase implements organization signup and public key lookup.
package usecase

import (
	"context"

	"github.com/google/uuid"

	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

// OrganizationRepository defines persistence operations for organizations.
// Implementations must support transaction-aware operations via context propagation.
type OrganizationRepository interface {
	// Create stores a new organization. Returns ErrOrganizationExists on a name clash.
	Create(ctx context.Context, org *orgDomain.Organization) error

	// Get retrieves an organization by ID. Returns ErrOrganizationNotFound if not found.
	Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error)
}

// MemberRepository defines persistence operations for organization members.
type MemberRepository interface {
	// Create stores a new member. Returns ErrEmailTaken if the email is registered.
	Create(ctx context.Context, member *orgDomain.Member) error

	// Update persists lockout state changes.
	Update(ctx context.Context, member *orgDomain.Member) error

	// Get retrieves a member by ID. Returns ErrMemberNotFound if not found.
	Get(ctx context.Context, memberID uuid.UUID) (*orgDomain.Member, error)

	// GetByEmail retrieves a member by normalized email. Returns ErrMemberNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*orgDomain.Member, error)
}

// PasswordHasher hashes member passwords for storage.
type PasswordHasher interface {
	HashPassword(plain string) (string, error)
}

// OrganizationUseCase defines organization operations.
type OrganizationUseCase interface {
	// Signup creates an organization with its first admin member. The organization
	// keypair is generated and wrapped client-side; Signup only validates the encodings
	// and key sizes before storing them.
	Signup(ctx context.Context, input *orgDomain.SignupInput) (*orgDomain.SignupOutput, error)

	// Get retrieves an organization by ID.
	Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error)

	// GetPublicKey returns the encoded organization public key reporters seal to.
	GetPublicKey(ctx context.Context, orgID uuid.UUID) (string, error)
}
