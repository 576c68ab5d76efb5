// Package dto provides data transfer objects for organization HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// SignupRequest creates an organization and its first admin. The keypair is generated
// and the private key wrapped under the admin password on the client.
type SignupRequest struct {
	Name                string `json:"name"`
	Country             string `json:"country"`
	AdminEmail          string `json:"admin_email"`
	AdminPassword       string `json:"admin_password"` //nolint:gosec // request field
	PublicKey           string `json:"public_key"`
	EncryptedPrivateKey string `json:"encrypted_private_key"`
	Salt                string `json:"salt"`
	Nonce               string `json:"nonce"`
}

// Validate checks if the signup request is valid.
func (r *SignupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Country,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(2, 64),
		),
		validation.Field(&r.AdminEmail,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.AdminPassword,
			validation.Required,
			customValidation.PasswordStrength{
				MinLength:     12,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&r.PublicKey,
			validation.Required,
			customValidation.SodiumBytes(cryptoDomain.PublicKeySize),
		),
		validation.Field(&r.EncryptedPrivateKey,
			validation.Required,
			customValidation.SodiumBase64,
		),
		validation.Field(&r.Salt,
			validation.Required,
			customValidation.SodiumBytes(cryptoDomain.SaltSize),
		),
		validation.Field(&r.Nonce,
			validation.Required,
			customValidation.SodiumBytes(cryptoDomain.XSalsa20Poly1305.NonceSize()),
		),
	)
}

// ToInput converts the request into a use case input.
func (r *SignupRequest) ToInput() *orgDomain.SignupInput {
	return &orgDomain.SignupInput{
		Name:                r.Name,
		Country:             r.Country,
		AdminEmail:          r.AdminEmail,
		AdminPassword:       r.AdminPassword,
		PublicKey:           r.PublicKey,
		EncryptedPrivateKey: r.EncryptedPrivateKey,
		Salt:                r.Salt,
		Nonce:               r.Nonce,
	}
}
