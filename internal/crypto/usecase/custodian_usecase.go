package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
)

type custodianUseCase struct {
	keyPairs cryptoService.KeyPairGenerator
	sealer   cryptoService.ContentSealer
	password cryptoService.PasswordKeyWrapper
	session  cryptoService.SessionKeyCustodian
}

// ProvisionOrganizationKey runs once at signup. The plaintext private key is zeroed
// before returning; only the wrapped form leaves this function.
func (c *custodianUseCase) ProvisionOrganizationKey(ctx context.Context, password []byte) (*ProvisionedKey, error) {
	keyPair, err := c.keyPairs.GenerateKeyPair(ctx)
	if err != nil {
		return nil, err
	}
	defer keyPair.Close()

	wrapped, err := c.password.Wrap(ctx, password, keyPair.PrivateKey)
	if err != nil {
		return nil, err
	}

	return &ProvisionedKey{PublicKey: keyPair.PublicKey, Wrapped: wrapped}, nil
}

// Unlock runs once per login. A wrong password fails with ErrDecryptionFailed.
func (c *custodianUseCase) Unlock(ctx context.Context, input *UnlockInput) (*cryptoDomain.SessionCachedKey, error) {
	if input == nil || input.Wrapped == nil || len(input.SessionKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}

	privateKey, err := c.password.Unwrap(ctx, input.Password, input.Wrapped)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(privateKey)

	if len(input.PublicKey) > 0 {
		derived, err := c.keyPairs.PublicKeyFromPrivate(privateKey)
		if err != nil {
			return nil, err
		}
		if subtle.ConstantTimeCompare(derived, input.PublicKey) != 1 {
			return nil, fmt.Errorf("%w: unwrapped key does not match organization public key", cryptoDomain.ErrDecryptionFailed)
		}
	}

	return c.session.CacheKey(ctx, privateKey, input.SessionKey)
}

// Recover returns the plaintext private key cached for this session.
func (c *custodianUseCase) Recover(
	ctx context.Context,
	cached *cryptoDomain.SessionCachedKey,
	sessionKey []byte,
) ([]byte, error) {
	return c.session.RecoverKey(ctx, cached, sessionKey)
}

// OpenCase decrypts case content as the organization.
func (c *custodianUseCase) OpenCase(
	ctx context.Context,
	envelope *cryptoDomain.SealedEnvelope,
	privateKey, publicKey []byte,
) ([]byte, error) {
	return c.sealer.Open(ctx, envelope, privateKey, publicKey)
}

// DeriveContentKey recovers the case content key as the organization.
func (c *custodianUseCase) DeriveContentKey(
	ctx context.Context,
	envelope *cryptoDomain.SealedEnvelope,
	privateKey, publicKey []byte,
) ([]byte, error) {
	return c.sealer.DeriveContentKey(ctx, envelope, privateKey, publicKey)
}

// NewCustodianUseCase creates a new CustodianUseCase.
func NewCustodianUseCase(
	keyPairs cryptoService.KeyPairGenerator,
	sealer cryptoService.ContentSealer,
	password cryptoService.PasswordKeyWrapper,
	session cryptoService.SessionKeyCustodian,
) CustodianUseCase {
	return &custodianUseCase{
		keyPairs: keyPairs,
		sealer:   sealer,
		password: password,
		session:  session,
	}
}
