package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

func TestAttachmentCipherService(t *testing.T) {
	ctx := context.Background()
	provider := newTestProvider(t)
	cipher := NewAttachmentCipher(provider, NewAEADManager(provider))
	key, err := provider.RandomBytes(cryptoDomain.KeySize)
	require.NoError(t, err)
	file := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 1024)

	encrypted, err := cipher.EncryptFile(ctx, file, key)
	require.NoError(t, err)
	assert.Len(t, encrypted.IV, cryptoDomain.AttachmentIVSize)
	assert.False(t, bytes.Contains(encrypted.Ciphertext, encrypted.IV), "iv is not embedded in the blob")

	t.Run("matching key and iv", func(t *testing.T) {
		out, err := cipher.DecryptFile(ctx, encrypted.Ciphertext, key, encrypted.IV)
		require.NoError(t, err)
		assert.Equal(t, file, out)
	})

	t.Run("stored iv round trips through its encoding", func(t *testing.T) {
		iv, err := cryptoDomain.DecodeAttachmentIV(encrypted.EncodedIV())
		require.NoError(t, err)
		out, err := cipher.DecryptFile(ctx, encrypted.Ciphertext, key, iv)
		require.NoError(t, err)
		assert.Equal(t, file, out)
	})

	t.Run("any other iv fails", func(t *testing.T) {
		other := bytes.Clone(encrypted.IV)
		other[0] ^= 0x01
		_, err := cipher.DecryptFile(ctx, encrypted.Ciphertext, key, other)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		_, err = cipher.DecryptFile(ctx, encrypted.Ciphertext, key, encrypted.IV[:8])
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("other key fails", func(t *testing.T) {
		other, err := provider.RandomBytes(cryptoDomain.KeySize)
		require.NoError(t, err)
		_, err = cipher.DecryptFile(ctx, encrypted.Ciphertext, other, encrypted.IV)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("fresh iv per file", func(t *testing.T) {
		again, err := cipher.EncryptFile(ctx, file, key)
		require.NoError(t, err)
		assert.NotEqual(t, encrypted.IV, again.IV)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := cipher.EncryptFile(ctx, file, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrMissingKeyMaterial)
		_, err = cipher.DecryptFile(ctx, encrypted.Ciphertext, nil, encrypted.IV)
		assert.ErrorIs(t, err, cryptoDomain.ErrMissingKeyMaterial)
	})
}
