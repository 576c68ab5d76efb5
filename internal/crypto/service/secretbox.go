package service

import (
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// SecretboxCipher implements the AEAD interface using NaCl secretbox
// (XSalsa20-Poly1305), matching libsodium's crypto_secretbox_easy.
//
// Secretbox has no additional authenticated data; a non-empty aad is rejected.
type SecretboxCipher struct {
	key  [32]byte
	rand io.Reader
}

// NewSecretbox creates a new secretbox cipher instance. The key must be 32 bytes.
func NewSecretbox(key []byte, rand io.Reader) (*SecretboxCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	c := &SecretboxCipher{rand: rand}
	copy(c.key[:], key)
	return c, nil
}

// Encrypt seals plaintext with a fresh random 24-byte nonce.
func (c *SecretboxCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	if len(aad) > 0 {
		return nil, nil, fmt.Errorf("%w: secretbox does not support additional data", cryptoDomain.ErrUnsupportedAlgorithm)
	}

	var n [24]byte
	if _, err := io.ReadFull(c.rand, n[:]); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = secretbox.Seal(nil, plaintext, &n, &c.key)
	return ciphertext, n[:], nil
}

// Decrypt opens a secretbox. Any failure is reported as ErrDecryptionFailed.
func (c *SecretboxCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(aad) > 0 || len(nonce) != 24 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	var n [24]byte
	copy(n[:], nonce)
	plaintext, ok := secretbox.Open(nil, ciphertext, &n, &c.key)
	if !ok {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// Close zeros the key held by the cipher.
func (c *SecretboxCipher) Close() {
	cryptoDomain.Zero(c.key[:])
}
