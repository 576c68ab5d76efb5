package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

type organizationUseCase struct {
	txManager  database.TxManager
	orgRepo    OrganizationRepository
	memberRepo MemberRepository
	hasher     PasswordHasher
}

// Signup validates the client-produced key material and stores the organization and its
// admin in one transaction.
func (o *organizationUseCase) Signup(
	ctx context.Context,
	input *orgDomain.SignupInput,
) (*orgDomain.SignupOutput, error) {
	publicKey, err := cryptoDomain.DecodeKey(input.PublicKey, cryptoDomain.PublicKeySize)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid public key")
	}

	wrapped, err := cryptoDomain.EncodedWrappedPrivateKey{
		Ciphertext: input.EncryptedPrivateKey,
		Salt:       input.Salt,
		Nonce:      input.Nonce,
	}.Decode()
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid wrapped private key")
	}

	passwordHash, err := o.hasher.HashPassword(input.AdminPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := &orgDomain.Organization{
		ID:                  uuid.Must(uuid.NewV7()),
		Name:                input.Name,
		Country:             input.Country,
		PublicKey:           publicKey,
		EncryptedPrivateKey: wrapped.Ciphertext,
		Salt:                wrapped.Salt,
		Nonce:               wrapped.Nonce,
		CreatedAt:           now,
	}
	admin := &orgDomain.Member{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: org.ID,
		Email:          orgDomain.NormalizeEmail(input.AdminEmail),
		PasswordHash:   passwordHash,
		Role:           orgDomain.RoleAdmin,
		CreatedAt:      now,
	}

	err = o.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := o.orgRepo.Create(ctx, org); err != nil {
			return err
		}
		return o.memberRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	return &orgDomain.SignupOutput{OrganizationID: org.ID, MemberID: admin.ID}, nil
}

func (o *organizationUseCase) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	return o.orgRepo.Get(ctx, orgID)
}

func (o *organizationUseCase) GetPublicKey(ctx context.Context, orgID uuid.UUID) (string, error) {
	org, err := o.orgRepo.Get(ctx, orgID)
	if err != nil {
		return "", err
	}
	return org.EncodedPublicKey(), nil
}

// NewOrganizationUseCase creates an OrganizationUseCase.
func NewOrganizationUseCase(
	txManager database.TxManager,
	orgRepo OrganizationRepository,
	memberRepo MemberRepository,
	hasher PasswordHasher,
) OrganizationUseCase {
	return &organizationUseCase{
		txManager:  txManager,
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		hasher:     hasher,
	}
}
