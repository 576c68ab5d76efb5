// Package dto provides data transfer objects for the login endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// LoginRequest contains member credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request body
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 1024),
		),
	)
}

// ToInput converts the request to a use case input.
func (r *LoginRequest) ToInput() *authDomain.LoginInput {
	return &authDomain.LoginInput{Email: r.Email, Password: r.Password}
}
