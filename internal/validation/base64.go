// Package validation provides custom validation rules for the application.
package validation

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// SodiumBytes validates that a string is unpadded URL-safe base64 decoding to exactly
// size bytes. Use it for public keys, salts and sealed content keys.
func SodiumBytes(size int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_sodium_base64_type", "must be a string")
		}
		if s == "" {
			return nil
		}
		b, err := cryptoDomain.DecodeSodium(s)
		if err != nil {
			return validation.NewError("validation_sodium_base64", "must be valid url-safe base64 without padding")
		}
		if len(b) != size {
			return validation.NewError("validation_sodium_size", "has an invalid decoded length")
		}
		return nil
	})
}

// SodiumBase64 validates that a string is unpadded URL-safe base64 of any length.
var SodiumBase64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_sodium_base64_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := cryptoDomain.DecodeSodium(s); err != nil {
		return validation.NewError("validation_sodium_base64", "must be valid url-safe base64 without padding")
	}
	return nil
})

// EncryptedPayload validates the "<base64 ciphertext>:<base64 nonce>" text form.
var EncryptedPayload = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_encrypted_payload_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if !cryptoDomain.IsEncodedPayload(s) {
		return validation.NewError("validation_encrypted_payload", "must be an encrypted payload in ciphertext:nonce form")
	}
	return nil
})

// AttachmentIV validates a standard base64 AES-GCM IV.
var AttachmentIV = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_iv_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := cryptoDomain.DecodeAttachmentIV(s); err != nil {
		return validation.NewError("validation_iv", "must be a base64-encoded 12 byte iv")
	}
	return nil
})
