// Package service implements the sealed-content protocol primitives: keypair issuance,
// dual-recipient content sealing, message and attachment ciphers, and the two key
// custody wrappers that protect an organization private key.
package service

import (
	"context"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyPairGenerator issues Curve25519 keypairs.
type KeyPairGenerator interface {
	// GenerateKeyPair returns a fresh keypair.
	GenerateKeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error)

	// PublicKeyFromPrivate derives the public key matching privateKey.
	PublicKeyFromPrivate(privateKey []byte) ([]byte, error)
}

// ContentSealer encrypts case content once and seals the content key to two recipients.
type ContentSealer interface {
	// GenerateContentKey returns a random 256-bit content key.
	GenerateContentKey(ctx context.Context) ([]byte, error)

	// Seal encrypts plaintext under contentKey (generated when nil) and seals the key
	// to both public keys.
	Seal(
		ctx context.Context,
		plaintext, contentKey, reporterPublicKey, orgPublicKey []byte,
	) (*cryptoDomain.SealedEnvelope, error)

	// Open recovers the plaintext using either recipient's keypair.
	Open(ctx context.Context, envelope *cryptoDomain.SealedEnvelope, privateKey, publicKey []byte) ([]byte, error)

	// DeriveContentKey recovers the bare content key using either recipient's keypair.
	DeriveContentKey(
		ctx context.Context,
		envelope *cryptoDomain.SealedEnvelope,
		privateKey, publicKey []byte,
	) ([]byte, error)
}

// MessageEncrypter encrypts conversation messages under a case content key.
type MessageEncrypter interface {
	// EncryptMessage returns "<base64 ciphertext>:<base64 nonce>".
	EncryptMessage(ctx context.Context, text string, contentKey []byte) (string, error)

	// DecryptMessage reverses EncryptMessage.
	DecryptMessage(ctx context.Context, encoded string, contentKey []byte) (string, error)
}

// FileEncrypter encrypts attachment payloads under a case content key.
type FileEncrypter interface {
	// EncryptFile encrypts data with a fresh random IV.
	EncryptFile(ctx context.Context, data, contentKey []byte) (*cryptoDomain.EncryptedAttachment, error)

	// DecryptFile decrypts an attachment given its separately stored IV.
	DecryptFile(ctx context.Context, ciphertext, contentKey, iv []byte) ([]byte, error)
}

// PasswordKeyWrapper protects a private key at rest under a password-derived key.
type PasswordKeyWrapper interface {
	// Wrap encrypts privateKey under a key derived from password and a fresh salt.
	Wrap(ctx context.Context, password, privateKey []byte) (*cryptoDomain.WrappedPrivateKey, error)

	// Unwrap recovers the private key. A wrong password yields ErrDecryptionFailed.
	Unwrap(ctx context.Context, password []byte, wrapped *cryptoDomain.WrappedPrivateKey) ([]byte, error)
}

// SessionKeyCustodian caches a plaintext private key under a per-login session key.
type SessionKeyCustodian interface {
	// GenerateSessionKey returns a random 256-bit session key.
	GenerateSessionKey(ctx context.Context) ([]byte, error)

	// CacheKey encrypts privateKey under sessionKey.
	CacheKey(ctx context.Context, privateKey, sessionKey []byte) (*cryptoDomain.SessionCachedKey, error)

	// RecoverKey reverses CacheKey. Any other session key yields ErrDecryptionFailed.
	RecoverKey(ctx context.Context, cached *cryptoDomain.SessionCachedKey, sessionKey []byte) ([]byte, error)
}
