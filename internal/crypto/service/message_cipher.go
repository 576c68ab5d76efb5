package service

import (
	"context"
	"fmt"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// MessageCipherService encrypts follow-up conversation messages under the content key of
// their case, using the same XChaCha20-Poly1305 scheme as the case content.
//
// The content key is reused for every message of a case, so each call draws a fresh
// random nonce.
type MessageCipherService struct {
	provider    *Provider
	aeadManager AEADManager
}

// NewMessageCipher creates a new MessageCipherService.
func NewMessageCipher(provider *Provider, aeadManager AEADManager) *MessageCipherService {
	return &MessageCipherService{provider: provider, aeadManager: aeadManager}
}

// EncryptMessage encrypts text and returns "<base64 ciphertext>:<base64 nonce>".
//
// Returns ErrMissingKeyMaterial when contentKey is empty.
func (s *MessageCipherService) EncryptMessage(ctx context.Context, text string, contentKey []byte) (string, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return "", err
	}
	if len(contentKey) == 0 {
		return "", cryptoDomain.ErrMissingKeyMaterial
	}

	cipher, err := s.aeadManager.CreateCipher(contentKey, cryptoDomain.XChaCha20Poly1305)
	if err != nil {
		return "", err
	}
	ciphertext, nonce, err := cipher.Encrypt([]byte(text), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
	}

	return cryptoDomain.EncryptedPayload{
		Algorithm:  cryptoDomain.XChaCha20Poly1305,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}.String(), nil
}

// DecryptMessage reverses EncryptMessage.
//
// Returns:
//   - ErrMalformedEncoding if encoded is not a valid "<ciphertext>:<nonce>" string
//   - ErrMissingKeyMaterial if contentKey is empty
//   - ErrDecryptionFailed on any authentication failure
func (s *MessageCipherService) DecryptMessage(ctx context.Context, encoded string, contentKey []byte) (string, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return "", err
	}
	payload, err := cryptoDomain.ParseEncryptedPayload(encoded)
	if err != nil {
		return "", err
	}
	if len(contentKey) == 0 {
		return "", cryptoDomain.ErrMissingKeyMaterial
	}

	cipher, err := s.aeadManager.CreateCipher(contentKey, payload.Algorithm)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := cipher.Decrypt(payload.Ciphertext, payload.Nonce, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
