package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

func TestAEADManagerService_CreateCipher(t *testing.T) {
	manager := NewAEADManager(newTestProvider(t))
	validKey := make([]byte, 32)
	_, err := rand.Read(validKey)
	require.NoError(t, err)

	t.Run("create XChaCha20-Poly1305 cipher", func(t *testing.T) {
		cipher, err := manager.CreateCipher(validKey, cryptoDomain.XChaCha20Poly1305)
		require.NoError(t, err)
		_, ok := cipher.(*XChaCha20Poly1305Cipher)
		assert.True(t, ok, "cipher should be of type *XChaCha20Poly1305Cipher")
	})

	t.Run("create AES-GCM cipher", func(t *testing.T) {
		cipher, err := manager.CreateCipher(validKey, cryptoDomain.AESGCM)
		require.NoError(t, err)
		_, ok := cipher.(*AESGCMCipher)
		assert.True(t, ok, "cipher should be of type *AESGCMCipher")
	})

	t.Run("create secretbox cipher", func(t *testing.T) {
		cipher, err := manager.CreateCipher(validKey, cryptoDomain.XSalsa20Poly1305)
		require.NoError(t, err)
		_, ok := cipher.(*SecretboxCipher)
		assert.True(t, ok, "cipher should be of type *SecretboxCipher")
	})

	t.Run("create cipher with unsupported algorithm", func(t *testing.T) {
		_, err := manager.CreateCipher(validKey, cryptoDomain.Algorithm(0x42))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("create cipher with invalid key size - too short", func(t *testing.T) {
		_, err := manager.CreateCipher(make([]byte, 16), cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("create cipher with invalid key size - too long", func(t *testing.T) {
		_, err := manager.CreateCipher(make([]byte, 64), cryptoDomain.XChaCha20Poly1305)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestAEAD_EncryptDecrypt(t *testing.T) {
	manager := NewAEADManager(newTestProvider(t))
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	for _, alg := range []cryptoDomain.Algorithm{
		cryptoDomain.XChaCha20Poly1305,
		cryptoDomain.AESGCM,
		cryptoDomain.XSalsa20Poly1305,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			cipher, err := manager.CreateCipher(key, alg)
			require.NoError(t, err)

			plaintext := []byte("Hello, World!")
			ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
			require.NoError(t, err)
			assert.Len(t, nonce, alg.NonceSize())
			assert.Len(t, ciphertext, len(plaintext)+16)

			decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)

			t.Run("fresh nonce per call", func(t *testing.T) {
				_, nonce2, err := cipher.Encrypt(plaintext, nil)
				require.NoError(t, err)
				assert.NotEqual(t, nonce, nonce2)
			})

			t.Run("empty plaintext", func(t *testing.T) {
				ct, n, err := cipher.Encrypt(nil, nil)
				require.NoError(t, err)
				out, err := cipher.Decrypt(ct, n, nil)
				require.NoError(t, err)
				assert.Empty(t, out)
			})

			t.Run("tampered ciphertext", func(t *testing.T) {
				tampered := bytes.Clone(ciphertext)
				tampered[0] ^= 0x01
				_, err := cipher.Decrypt(tampered, nonce, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("tampered nonce", func(t *testing.T) {
				tampered := bytes.Clone(nonce)
				tampered[len(tampered)-1] ^= 0x80
				_, err := cipher.Decrypt(ciphertext, tampered, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("nonce of wrong size", func(t *testing.T) {
				_, err := cipher.Decrypt(ciphertext, nonce[:5], nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("wrong key", func(t *testing.T) {
				other := bytes.Clone(key)
				other[0] ^= 0xFF
				wrong, err := manager.CreateCipher(other, alg)
				require.NoError(t, err)
				_, err = wrong.Decrypt(ciphertext, nonce, nil)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})
		})
	}
}

func TestAEAD_AdditionalData(t *testing.T) {
	manager := NewAEADManager(newTestProvider(t))
	key := make([]byte, 32)

	t.Run("aead ciphers bind aad", func(t *testing.T) {
		for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.XChaCha20Poly1305, cryptoDomain.AESGCM} {
			cipher, err := manager.CreateCipher(key, alg)
			require.NoError(t, err)

			ct, nonce, err := cipher.Encrypt([]byte("data"), []byte("case-1"))
			require.NoError(t, err)

			_, err = cipher.Decrypt(ct, nonce, []byte("case-2"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		}
	})

	t.Run("secretbox rejects aad", func(t *testing.T) {
		cipher, err := manager.CreateCipher(key, cryptoDomain.XSalsa20Poly1305)
		require.NoError(t, err)

		_, _, err = cipher.Encrypt([]byte("data"), []byte("aad"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestAEAD_RandomnessFailure(t *testing.T) {
	key := make([]byte, 32)
	p := NewProvider(WithRandReader(failingReader{}))

	ciphers := []AEAD{}
	c1, err := NewXChaCha20Poly1305(key, p)
	require.NoError(t, err)
	c2, err := NewAESGCM(key, p)
	require.NoError(t, err)
	c3, err := NewSecretbox(key, p)
	require.NoError(t, err)
	ciphers = append(ciphers, c1, c2, c3)

	for _, c := range ciphers {
		_, _, err := c.Encrypt([]byte("x"), nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrRandomnessFailure)
	}
}

func TestSecretboxCipher_Close(t *testing.T) {
	key := bytes.Repeat([]byte{9}, 32)
	c, err := NewSecretbox(key, newTestProvider(t))
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, [32]byte{}, c.key)
	assert.Equal(t, bytes.Repeat([]byte{9}, 32), key, "caller's key is not modified")
}
