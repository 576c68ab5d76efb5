// Package usecase manages reporting channels and resolves access codes for reporters.
package usecase

import (
	"context"

	"github.com/google/uuid"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

// ChannelRepository defines persistence operations for channels.
// Implementations must support transaction-aware operations via context propagation.
type ChannelRepository interface {
	// Create stores a new channel. Returns ErrAccessCodeTaken on an access code clash.
	Create(ctx context.Context, ch *channelsDomain.Channel) error

	// Update persists the mutable fields of an organization's channel.
	Update(ctx context.Context, ch *channelsDomain.Channel) error

	// Delete removes an organization's channel. Returns ErrChannelHasCases when cases
	// reference it.
	Delete(ctx context.Context, orgID, channelID uuid.UUID) error

	// Get retrieves a channel by ID. Returns ErrChannelNotFound if not found.
	Get(ctx context.Context, channelID uuid.UUID) (*channelsDomain.Channel, error)

	// GetByAccessCode retrieves a channel by access code regardless of its state.
	GetByAccessCode(ctx context.Context, accessCode string) (*channelsDomain.Channel, error)

	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*channelsDomain.Channel, error)
	AccessCodeExists(ctx context.Context, accessCode string) (bool, error)
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error)
}

// OrganizationReader loads the organization behind a channel.
type OrganizationReader interface {
	Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error)
}

// ChannelUseCase defines channel operations.
type ChannelUseCase interface {
	// Create adds a channel to an organization, generating an access code when none is
	// given.
	Create(ctx context.Context, input *channelsDomain.CreateChannelInput) (*channelsDomain.Channel, error)

	// Get returns one of the organization's channels.
	Get(ctx context.Context, orgID, channelID uuid.UUID) (*channelsDomain.Channel, error)

	// List returns the organization's channels, newest first.
	List(ctx context.Context, orgID uuid.UUID) ([]*channelsDomain.Channel, error)

	Update(ctx context.Context, input *channelsDomain.UpdateChannelInput) (*channelsDomain.Channel, error)
	Delete(ctx context.Context, orgID, channelID uuid.UUID) error

	// CheckAccessCode reports whether code is well formed and unused.
	CheckAccessCode(ctx context.Context, code string) (bool, error)

	// GenerateAccessCode returns a random access code no channel uses yet.
	GenerateAccessCode(ctx context.Context) (string, error)

	// Resolve maps an access code to an active channel and the organization public key.
	// Unknown codes and inactive channels both yield ErrChannelNotFound.
	Resolve(ctx context.Context, code string) (*channelsDomain.ReportingChannel, error)

	// Counts summarizes the organization's channels.
	Counts(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error)
}
