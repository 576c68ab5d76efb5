package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

const maxAccessCodeAttempts = 50

type channelUseCase struct {
	channelRepo ChannelRepository
	orgReader   OrganizationReader
	random      io.Reader
}

func (c *channelUseCase) Create(
	ctx context.Context,
	input *channelsDomain.CreateChannelInput,
) (*channelsDomain.Channel, error) {
	accessCode := input.AccessCode
	if accessCode == "" {
		generated, err := c.GenerateAccessCode(ctx)
		if err != nil {
			return nil, err
		}
		accessCode = generated
	} else if !channelsDomain.ValidAccessCode(accessCode) {
		return nil, channelsDomain.ErrInvalidAccessCode
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now().UTC()
	ch := &channelsDomain.Channel{
		ID:                uuid.Must(uuid.NewV7()),
		OrganizationID:    input.OrganizationID,
		Title:             input.Title,
		Description:       input.Description,
		AccessCode:        accessCode,
		SubmissionMessage: input.SubmissionMessage,
		IsActive:          isActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := c.channelRepo.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *channelUseCase) Get(ctx context.Context, orgID, channelID uuid.UUID) (*channelsDomain.Channel, error) {
	ch, err := c.channelRepo.Get(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch.OrganizationID != orgID {
		return nil, channelsDomain.ErrChannelNotFound
	}
	return ch, nil
}

func (c *channelUseCase) List(ctx context.Context, orgID uuid.UUID) ([]*channelsDomain.Channel, error) {
	return c.channelRepo.ListByOrganization(ctx, orgID)
}

func (c *channelUseCase) Update(
	ctx context.Context,
	input *channelsDomain.UpdateChannelInput,
) (*channelsDomain.Channel, error) {
	if input.AccessCode != nil && !channelsDomain.ValidAccessCode(*input.AccessCode) {
		return nil, channelsDomain.ErrInvalidAccessCode
	}

	ch, err := c.Get(ctx, input.OrganizationID, input.ID)
	if err != nil {
		return nil, err
	}
	if !input.Apply(ch) {
		return ch, nil
	}

	ch.UpdatedAt = time.Now().UTC()
	if err := c.channelRepo.Update(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *channelUseCase) Delete(ctx context.Context, orgID, channelID uuid.UUID) error {
	return c.channelRepo.Delete(ctx, orgID, channelID)
}

func (c *channelUseCase) CheckAccessCode(ctx context.Context, code string) (bool, error) {
	if !channelsDomain.ValidAccessCode(code) {
		return false, channelsDomain.ErrInvalidAccessCode
	}
	exists, err := c.channelRepo.AccessCodeExists(ctx, code)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (c *channelUseCase) GenerateAccessCode(ctx context.Context) (string, error) {
	for range maxAccessCodeAttempts {
		code, err := channelsDomain.GenerateAccessCode(c.random)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to read random bytes")
		}
		exists, err := c.channelRepo.AccessCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", channelsDomain.ErrAccessCodeExhausted
}

func (c *channelUseCase) Resolve(ctx context.Context, code string) (*channelsDomain.ReportingChannel, error) {
	if !channelsDomain.ValidAccessCode(code) {
		return nil, channelsDomain.ErrChannelNotFound
	}
	ch, err := c.channelRepo.GetByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !ch.IsActive {
		return nil, channelsDomain.ErrChannelNotFound
	}
	org, err := c.orgReader.Get(ctx, ch.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &channelsDomain.ReportingChannel{Channel: ch, OrganizationPublicKey: org.EncodedPublicKey()}, nil
}

func (c *channelUseCase) Counts(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error) {
	return c.channelRepo.CountByOrganization(ctx, orgID)
}

// NewChannelUseCase creates a ChannelUseCase that draws access codes from crypto/rand.
func NewChannelUseCase(channelRepo ChannelRepository, orgReader OrganizationReader) ChannelUseCase {
	return &channelUseCase{
		channelRepo: channelRepo,
		orgReader:   orgReader,
	}
}
