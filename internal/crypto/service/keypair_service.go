package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/cloudflare/circl/dh/x25519"
	"golang.org/x/crypto/nacl/box"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// KeyPairService issues Curve25519 keypairs suitable for anonymous sealed boxes
// (libsodium crypto_box_keypair). One keypair is generated per organization at signup
// and one per case at submission.
type KeyPairService struct {
	provider *Provider
}

// NewKeyPairService creates a new KeyPairService.
func NewKeyPairService(provider *Provider) *KeyPairService {
	return &KeyPairService{provider: provider}
}

// GenerateKeyPair returns a fresh keypair.
//
// The only failure mode is the entropy source, which is fatal and reported as
// ErrRandomnessFailure.
func (s *KeyPairService) GenerateKeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}

	pub, priv, err := box.GenerateKey(s.provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
	}
	defer cryptoDomain.Zero(priv[:])

	return &cryptoDomain.KeyPair{
		PublicKey:  append([]byte(nil), pub[:]...),
		PrivateKey: append([]byte(nil), priv[:]...),
	}, nil
}

// PublicKeyFromPrivate derives the X25519 public key for privateKey.
func (s *KeyPairService) PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	if len(privateKey) != cryptoDomain.PrivateKeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	var secret, public x25519.Key
	copy(secret[:], privateKey)
	defer cryptoDomain.Zero(secret[:])

	x25519.KeyGen(&public, &secret)
	return append([]byte(nil), public[:]...), nil
}

// ValidateKeyPair checks that kp's private key derives its public key.
// A mismatch is reported as ErrMissingKeyMaterial since the pair cannot open anything
// sealed to the public half.
func (s *KeyPairService) ValidateKeyPair(kp *cryptoDomain.KeyPair) error {
	if kp == nil || len(kp.PrivateKey) == 0 {
		return cryptoDomain.ErrMissingKeyMaterial
	}
	if len(kp.PublicKey) != cryptoDomain.PublicKeySize {
		return cryptoDomain.ErrInvalidKeySize
	}
	derived, err := s.PublicKeyFromPrivate(kp.PrivateKey)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(derived, kp.PublicKey) != 1 {
		return fmt.Errorf("%w: private key does not match public key", cryptoDomain.ErrMissingKeyMaterial)
	}
	return nil
}
