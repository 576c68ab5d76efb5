package service

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// XChaCha20Poly1305Cipher implements the AEAD interface using XChaCha20-Poly1305.
//
// The extended 24-byte nonce makes random nonces safe even when a single content key
// encrypts a long conversation, which is how case content and every follow-up message
// are protected. Output is compatible with libsodium's
// crypto_aead_xchacha20poly1305_ietf_encrypt.
type XChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewXChaCha20Poly1305 creates a new XChaCha20-Poly1305 cipher instance.
//
// The key must be exactly 32 bytes. Nonces are drawn from rand.
func NewXChaCha20Poly1305(key []byte, rand io.Reader) (*XChaCha20Poly1305Cipher, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create XChaCha20-Poly1305 cipher: %w", err)
	}

	return &XChaCha20Poly1305Cipher{aead: aead, rand: rand}, nil
}

// Encrypt encrypts plaintext with a fresh random 24-byte nonce.
//
// Returns the ciphertext (with the Poly1305 tag appended) and the nonce.
func (c *XChaCha20Poly1305Cipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = c.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt authenticates and decrypts ciphertext. Any failure, including a nonce of the
// wrong size, is reported as ErrDecryptionFailed.
func (c *XChaCha20Poly1305Cipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
