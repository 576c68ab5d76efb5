package service

import (
	"context"
	"fmt"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// AttachmentCipherService encrypts attachment payloads under a case content key with
// AES-256-GCM and a random 96-bit IV per file. The IV is returned separately and must be
// stored next to the blob's metadata, never concatenated into the blob.
type AttachmentCipherService struct {
	provider    *Provider
	aeadManager AEADManager
}

// NewAttachmentCipher creates a new AttachmentCipherService.
func NewAttachmentCipher(provider *Provider, aeadManager AEADManager) *AttachmentCipherService {
	return &AttachmentCipherService{provider: provider, aeadManager: aeadManager}
}

// EncryptFile encrypts data under contentKey.
func (s *AttachmentCipherService) EncryptFile(
	ctx context.Context,
	data, contentKey []byte,
) (*cryptoDomain.EncryptedAttachment, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if len(contentKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}

	cipher, err := s.aeadManager.CreateCipher(contentKey, cryptoDomain.AESGCM)
	if err != nil {
		return nil, err
	}
	ciphertext, iv, err := cipher.Encrypt(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
	}
	return &cryptoDomain.EncryptedAttachment{Ciphertext: ciphertext, IV: iv}, nil
}

// DecryptFile decrypts an attachment. Only the matching content key together with the
// exact stored IV succeeds; anything else yields ErrDecryptionFailed.
func (s *AttachmentCipherService) DecryptFile(ctx context.Context, ciphertext, contentKey, iv []byte) ([]byte, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if len(contentKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}

	cipher, err := s.aeadManager.CreateCipher(contentKey, cryptoDomain.AESGCM)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return cipher.Decrypt(ciphertext, iv, nil)
}
