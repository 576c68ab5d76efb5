package validation

import (
	"bytes"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

func TestSodiumBytes(t *testing.T) {
	key := cryptoDomain.EncodeSodium(bytes.Repeat([]byte{0xFB}, 32))
	rule := SodiumBytes(32)

	assert.NoError(t, validation.Validate(key, rule))
	assert.NoError(t, validation.Validate("", rule))
	assert.Error(t, validation.Validate(cryptoDomain.EncodeSodium([]byte{1}), rule))
	assert.Error(t, validation.Validate(cryptoDomain.EncodeWeb(bytes.Repeat([]byte{0xFB}, 32)), rule), "padded standard base64 is rejected")
	assert.Error(t, validation.Validate(1, rule))

	assert.NoError(t, validation.Validate(key, SodiumBase64))
	assert.Error(t, validation.Validate("a+b/", SodiumBase64))
}

func TestEncryptedPayload(t *testing.T) {
	payload := cryptoDomain.EncryptedPayload{
		Algorithm:  cryptoDomain.XChaCha20Poly1305,
		Ciphertext: []byte("ciphertext"),
		Nonce:      bytes.Repeat([]byte{1}, 24),
	}.String()

	assert.NoError(t, validation.Validate(payload, EncryptedPayload))
	assert.NoError(t, validation.Validate("", EncryptedPayload))
	assert.Error(t, validation.Validate("plain text", EncryptedPayload))
	assert.Error(t, validation.Validate(payload+":x", EncryptedPayload))
}

func TestAttachmentIV(t *testing.T) {
	assert.NoError(t, validation.Validate(cryptoDomain.EncodeWeb(make([]byte, 12)), AttachmentIV))
	assert.Error(t, validation.Validate(cryptoDomain.EncodeWeb(make([]byte, 16)), AttachmentIV))
	assert.Error(t, validation.Validate("???", AttachmentIV))
}
