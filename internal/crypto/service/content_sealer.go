package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/nacl/box"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// ContentSealerService implements dual-recipient content sealing.
//
// Content is encrypted once with XChaCha20-Poly1305 under a random 256-bit content key.
// The content key is then sealed with an anonymous sealed box (libsodium crypto_box_seal)
// to the reporter's case public key and, independently, to the organization public key.
// Neither sealed box reveals who produced it.
//
// Guarantee: a party holding either matching private key recovers the same content key
// and therefore the same plaintext. Any failure aborts the whole operation; a partially
// sealed envelope is never returned.
type ContentSealerService struct {
	provider    *Provider
	aeadManager AEADManager
}

// NewContentSealer creates a new ContentSealerService.
func NewContentSealer(provider *Provider, aeadManager AEADManager) *ContentSealerService {
	return &ContentSealerService{provider: provider, aeadManager: aeadManager}
}

// GenerateContentKey returns a random 256-bit content key.
func (s *ContentSealerService) GenerateContentKey(ctx context.Context) ([]byte, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	return s.provider.RandomBytes(cryptoDomain.KeySize)
}

// Seal encrypts plaintext and seals the content key to both recipients.
//
// Parameters:
//   - plaintext: The case content
//   - contentKey: A 32-byte key, or nil to generate a fresh one
//   - reporterPublicKey: The case public key generated for this submission
//   - orgPublicKey: The organization's long-term public key
//
// Returns:
//   - The sealed envelope
//   - ErrInvalidKeySize if any key has the wrong length
//   - ErrRandomnessFailure if the entropy source fails
//
// Example:
//
//	env, err := sealer.Seal(ctx, []byte("incident details"), nil, casePair.PublicKey, orgPublicKey)
//	if err != nil {
//	    return err
//	}
//	encoded := env.Encode()
func (s *ContentSealerService) Seal(
	ctx context.Context,
	plaintext, contentKey, reporterPublicKey, orgPublicKey []byte,
) (*cryptoDomain.SealedEnvelope, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}

	reporterKey, err := cryptoDomain.ToKeyArray(reporterPublicKey)
	if err != nil {
		return nil, fmt.Errorf("reporter public key: %w", err)
	}
	orgKey, err := cryptoDomain.ToKeyArray(orgPublicKey)
	if err != nil {
		return nil, fmt.Errorf("organization public key: %w", err)
	}

	if contentKey == nil {
		contentKey, err = s.provider.RandomBytes(cryptoDomain.KeySize)
		if err != nil {
			return nil, err
		}
		defer cryptoDomain.Zero(contentKey)
	}

	cipher, err := s.aeadManager.CreateCipher(contentKey, cryptoDomain.XChaCha20Poly1305)
	if err != nil {
		return nil, err
	}
	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
	}

	env := &cryptoDomain.SealedEnvelope{
		Content: cryptoDomain.EncryptedPayload{
			Algorithm:  cryptoDomain.XChaCha20Poly1305,
			Ciphertext: ciphertext,
			Nonce:      nonce,
		},
	}

	var g errgroup.Group
	g.Go(func() error {
		sealed, err := box.SealAnonymous(nil, contentKey, reporterKey, s.provider)
		if err != nil {
			return fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
		}
		env.SealedKeyForReporter = sealed
		return nil
	})
	g.Go(func() error {
		sealed, err := box.SealAnonymous(nil, contentKey, orgKey, s.provider)
		if err != nil {
			return fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
		}
		env.SealedKeyForOrg = sealed
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return env, nil
}

// Open recovers the case plaintext with either recipient's keypair.
//
// Any authentication failure (wrong keypair, tampered content, nonce or sealed key)
// yields ErrDecryptionFailed and never a partial plaintext.
func (s *ContentSealerService) Open(
	ctx context.Context,
	envelope *cryptoDomain.SealedEnvelope,
	privateKey, publicKey []byte,
) ([]byte, error) {
	contentKey, err := s.DeriveContentKey(ctx, envelope, privateKey, publicKey)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(contentKey)

	cipher, err := s.aeadManager.CreateCipher(contentKey, envelope.Content.Algorithm)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return cipher.Decrypt(envelope.Content.Ciphertext, envelope.Content.Nonce, nil)
}

// DeriveContentKey opens the sealed content key addressed to publicKey.
//
// The envelope does not record which sealed field belongs to which recipient, so both
// are tried. A sealed box only authenticates under its own recipient keypair, which
// makes the trial unambiguous.
//
// Returns:
//   - The 32-byte content key
//   - ErrMissingKeyMaterial if privateKey is empty
//   - ErrDecryptionFailed if neither sealed key opens
func (s *ContentSealerService) DeriveContentKey(
	ctx context.Context,
	envelope *cryptoDomain.SealedEnvelope,
	privateKey, publicKey []byte,
) ([]byte, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if len(privateKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}
	if envelope == nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	priv, err := cryptoDomain.ToKeyArray(privateKey)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(priv[:])
	pub, err := cryptoDomain.ToKeyArray(publicKey)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	for _, sealed := range [][]byte{envelope.SealedKeyForReporter, envelope.SealedKeyForOrg} {
		if len(sealed) != cryptoDomain.SealedKeySize {
			continue
		}
		if key, ok := box.OpenAnonymous(nil, sealed, pub, priv); ok {
			return key, nil
		}
	}
	return nil, cryptoDomain.ErrDecryptionFailed
}
