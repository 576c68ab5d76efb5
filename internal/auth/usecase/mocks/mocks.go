// Package mocks provides testify mocks for the auth use case and service interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

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

// MockMemberRepository is a mock implementation of usecase.MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*orgDomain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orgDomain.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *orgDomain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockPasswordService is a mock implementation of service.PasswordService.
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) ComparePassword(plain, hash string) bool {
	args := m.Called(plain, hash)
	return args.Bool(0)
}

// MockSessionTokenService is a mock implementation of service.SessionTokenService.
type MockSessionTokenService struct {
	mock.Mock
}

func (m *MockSessionTokenService) Issue(session *authDomain.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionTokenService) Parse(token string) (*authDomain.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// MockLoginUseCase is a mock implementation of usecase.LoginUseCase.
type MockLoginUseCase struct {
	mock.Mock
}

func (m *MockLoginUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.LoginOutput), args.Error(1)
}

func (m *MockLoginUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}
