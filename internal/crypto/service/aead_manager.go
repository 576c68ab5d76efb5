package service

import (
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD cipher instances.
// Every cipher it creates draws its nonces from the Provider.
type AEADManagerService struct {
	provider *Provider
}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager(provider *Provider) *AEADManagerService {
	return &AEADManagerService{provider: provider}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedAlgorithm if algorithm is unknown.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.XChaCha20Poly1305:
		return NewXChaCha20Poly1305(key, am.provider)
	case cryptoDomain.AESGCM:
		return NewAESGCM(key, am.provider)
	case cryptoDomain.XSalsa20Poly1305:
		return NewSecretbox(key, am.provider)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
