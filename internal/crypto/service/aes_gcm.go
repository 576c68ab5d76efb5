package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// It protects attachments and the session-cached organization private key. Output is
// the same as the WebCrypto AES-GCM encrypt operation with a 96-bit IV and a 128-bit
// tag, so browser clients and this package interoperate.
//
// Security properties:
//   - 256-bit key
//   - 12-byte IV, randomly generated per encryption
//   - 16-byte authentication tag appended to the ciphertext
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// Parameters:
//   - key: A 32-byte (256-bit) encryption key
//   - rand: Entropy source for IVs
//
// Returns:
//   - A new AESGCMCipher instance ready for encryption/decryption
//   - ErrInvalidKeySize if the key is not 32 bytes
func NewAESGCM(key []byte, rand io.Reader) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead, rand: rand}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional authenticated data.
//
// A unique 12-byte IV is randomly generated for each encryption operation. With GCM it
// is critical that IVs are never reused with the same key.
//
// Returns:
//   - ciphertext: The encrypted data with authentication tag appended
//   - nonce: The randomly generated 12-byte IV used for this encryption
//   - err: Any error encountered during IV generation
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := io.ReadFull(a.rand, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided IV and AAD.
//
// The authentication tag is verified before any plaintext is returned. A wrong key, a
// wrong or malformed IV and a modified ciphertext all yield ErrDecryptionFailed.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
