// Package mocks provides testify mocks for the channel use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

// MockChannelRepository is a mock implementation of usecase.ChannelRepository.
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) Create(ctx context.Context, ch *channelsDomain.Channel) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockChannelRepository) Update(ctx context.Context, ch *channelsDomain.Channel) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *MockChannelRepository) Delete(ctx context.Context, orgID, channelID uuid.UUID) error {
	args := m.Called(ctx, orgID, channelID)
	return args.Error(0)
}

func (m *MockChannelRepository) Get(ctx context.Context, channelID uuid.UUID) (*channelsDomain.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByAccessCode(
	ctx context.Context,
	accessCode string,
) (*channelsDomain.Channel, error) {
	args := m.Called(ctx, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelRepository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
) ([]*channelsDomain.Channel, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelRepository) AccessCodeExists(ctx context.Context, accessCode string) (bool, error) {
	args := m.Called(ctx, accessCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockChannelRepository) CountByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
) (*channelsDomain.Counts, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Counts), args.Error(1)
}

// MockOrganizationReader is a mock implementation of usecase.OrganizationReader.
type MockOrganizationReader struct {
	mock.Mock
}

func (m *MockOrganizationReader) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Organization), args.Error(1)
}

// MockChannelUseCase is a mock implementation of usecase.ChannelUseCase.
type MockChannelUseCase struct {
	mock.Mock
}

func (m *MockChannelUseCase) Create(
	ctx context.Context,
	input *channelsDomain.CreateChannelInput,
) (*channelsDomain.Channel, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Get(ctx context.Context, orgID, channelID uuid.UUID) (*channelsDomain.Channel, error) {
	args := m.Called(ctx, orgID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) List(ctx context.Context, orgID uuid.UUID) ([]*channelsDomain.Channel, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Update(
	ctx context.Context,
	input *channelsDomain.UpdateChannelInput,
) (*channelsDomain.Channel, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Delete(ctx context.Context, orgID, channelID uuid.UUID) error {
	args := m.Called(ctx, orgID, channelID)
	return args.Error(0)
}

func (m *MockChannelUseCase) CheckAccessCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockChannelUseCase) GenerateAccessCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockChannelUseCase) Resolve(ctx context.Context, code string) (*channelsDomain.ReportingChannel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.ReportingChannel), args.Error(1)
}

func (m *MockChannelUseCase) Counts(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Counts), args.Error(1)
}
