package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	databaseMocks "github.com/whistlebase/whistlebase/internal/database/mocks"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	metricsMocks "github.com/whistlebase/whistlebase/internal/metrics/mocks"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
	"github.com/whistlebase/whistlebase/internal/organization/usecase/mocks"
)

type orgFixture struct {
	tx      *databaseMocks.MockTxManager
	orgs    *mocks.MockOrganizationRepository
	members *mocks.MockMemberRepository
	hasher  *mocks.MockPasswordHasher
	uc      OrganizationUseCase
}

func newOrgFixture() *orgFixture {
	f := &orgFixture{
		tx:      &databaseMocks.MockTxManager{},
		orgs:    &mocks.MockOrganizationRepository{},
		members: &mocks.MockMemberRepository{},
		hasher:  &mocks.MockPasswordHasher{},
	}
	f.uc = NewOrganizationUseCase(f.tx, f.orgs, f.members, f.hasher)
	return f
}

func (f *orgFixture) assertExpectations(t *testing.T) {
	f.tx.AssertExpectations(t)
	f.orgs.AssertExpectations(t)
	f.members.AssertExpectations(t)
	f.hasher.AssertExpectations(t)
}

func validSignupInput() *orgDomain.SignupInput {
	return &orgDomain.SignupInput{
		Name:                "Acme",
		Country:             "DE",
		AdminEmail:          " Admin@Acme.example ",
		AdminPassword:       "correct horse battery staple",
		PublicKey:           cryptoDomain.EncodeSodium(bytes.Repeat([]byte{7}, 32)),
		EncryptedPrivateKey: cryptoDomain.EncodeSodium(bytes.Repeat([]byte{8}, 48)),
		Salt:                cryptoDomain.EncodeSodium(bytes.Repeat([]byte{9}, 16)),
		Nonce:               cryptoDomain.EncodeSodium(bytes.Repeat([]byte{10}, 24)),
	}
}

func TestOrganizationUseCase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newOrgFixture()
		input := validSignupInput()

		f.hasher.On("HashPassword", input.AdminPassword).Return("$argon2id$hash", nil).Once()
		f.tx.On("WithTx", ctx).Return(nil).Once()

		var storedOrg *orgDomain.Organization
		f.orgs.On("Create", ctx, mock.AnythingOfType("*domain.Organization")).
			Run(func(args mock.Arguments) { storedOrg = args.Get(1).(*orgDomain.Organization) }).
			Return(nil).
			Once()
		var storedMember *orgDomain.Member
		f.members.On("Create", ctx, mock.AnythingOfType("*domain.Member")).
			Run(func(args mock.Arguments) { storedMember = args.Get(1).(*orgDomain.Member) }).
			Return(nil).
			Once()

		output, err := f.uc.Signup(ctx, input)
		require.NoError(t, err)

		require.NotNil(t, storedOrg)
		require.NotNil(t, storedMember)
		assert.Equal(t, storedOrg.ID, output.OrganizationID)
		assert.Equal(t, storedMember.ID, output.MemberID)
		assert.Equal(t, bytes.Repeat([]byte{7}, 32), storedOrg.PublicKey)
		assert.Len(t, storedOrg.Salt, 16)
		assert.Len(t, storedOrg.Nonce, 24)
		assert.Equal(t, storedOrg.ID, storedMember.OrganizationID)
		assert.Equal(t, "admin@acme.example", storedMember.Email)
		assert.Equal(t, "$argon2id$hash", storedMember.PasswordHash)
		assert.Equal(t, orgDomain.RoleAdmin, storedMember.Role)
		f.assertExpectations(t)
	})

	t.Run("Error_PublicKeyWrongSize", func(t *testing.T) {
		f := newOrgFixture()
		input := validSignupInput()
		input.PublicKey = cryptoDomain.EncodeSodium([]byte("short"))

		_, err := f.uc.Signup(ctx, input)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("Error_SaltWrongSize", func(t *testing.T) {
		f := newOrgFixture()
		input := validSignupInput()
		input.Salt = cryptoDomain.EncodeSodium([]byte("salt"))

		_, err := f.uc.Signup(ctx, input)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEncoding)
		f.assertExpectations(t)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		f := newOrgFixture()
		input := validSignupInput()

		f.hasher.On("HashPassword", input.AdminPassword).Return("hash", nil).Once()
		f.tx.On("WithTx", ctx).Return(nil).Once()
		f.orgs.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.members.On("Create", ctx, mock.Anything).Return(orgDomain.ErrEmailTaken).Once()

		_, err := f.uc.Signup(ctx, input)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.assertExpectations(t)
	})

	t.Run("Error_HashFailure", func(t *testing.T) {
		f := newOrgFixture()
		input := validSignupInput()
		f.hasher.On("HashPassword", input.AdminPassword).Return("", assert.AnError).Once()

		_, err := f.uc.Signup(ctx, input)
		assert.ErrorIs(t, err, assert.AnError)
		f.assertExpectations(t)
	})
}

func TestOrganizationUseCase_GetPublicKey(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newOrgFixture()
		f.orgs.On("Get", ctx, orgID).
			Return(&orgDomain.Organization{ID: orgID, PublicKey: bytes.Repeat([]byte{1}, 32)}, nil).
			Once()

		publicKey, err := f.uc.GetPublicKey(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.EncodeSodium(bytes.Repeat([]byte{1}, 32)), publicKey)
		f.assertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newOrgFixture()
		f.orgs.On("Get", ctx, orgID).Return(nil, orgDomain.ErrOrganizationNotFound).Once()

		_, err := f.uc.GetPublicKey(ctx, orgID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.assertExpectations(t)
	})
}

func TestOrganizationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success_RecordsSuccess", func(t *testing.T) {
		next := &mocks.MockOrganizationUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		next.On("GetPublicKey", ctx, orgID).Return("pk", nil).Once()
		m.ExpectOperation("organizations", "public_key_get", "success")

		publicKey, err := NewOrganizationUseCaseWithMetrics(next, m).GetPublicKey(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, "pk", publicKey)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsError", func(t *testing.T) {
		next := &mocks.MockOrganizationUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		next.On("Signup", ctx, mock.Anything).Return(nil, assert.AnError).Once()
		m.ExpectOperation("organizations", "signup", "error")

		_, err := NewOrganizationUseCaseWithMetrics(next, m).Signup(ctx, validSignupInput())
		assert.ErrorIs(t, err, assert.AnError)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Get", func(t *testing.T) {
		next := &mocks.MockOrganizationUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		next.On("Get", ctx, orgID).Return(&orgDomain.Organization{ID: orgID}, nil).Once()
		m.ExpectOperation("organizations", "organization_get", "success")

		org, err := NewOrganizationUseCaseWithMetrics(next, m).Get(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, orgID, org.ID)
		m.AssertExpectations(t)
	})
}
