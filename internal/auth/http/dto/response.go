package dto

import (
	"time"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	SessionToken        string    `json:"session_token"`
	ExpiresAt           time.Time `json:"expires_at"`
	MemberID            string    `json:"member_id"`
	OrganizationID      string    `json:"organization_id"`
	PublicKey           string    `json:"public_key"`
	EncryptedPrivateKey string    `json:"encrypted_private_key"`
	Salt                string    `json:"salt"`
	Nonce               string    `json:"nonce"`
}

// MapLoginOutputToResponse converts a login output to its response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		SessionToken:        output.SessionToken,
		ExpiresAt:           output.ExpiresAt,
		MemberID:            output.MemberID.String(),
		OrganizationID:      output.OrganizationID.String(),
		PublicKey:           output.PublicKey,
		EncryptedPrivateKey: output.WrappedPrivateKey.Ciphertext,
		Salt:                output.WrappedPrivateKey.Salt,
		Nonce:               output.WrappedPrivateKey.Nonce,
	}
}

// SessionKeyResponse carries the per-login session key in standard base64.
type SessionKeyResponse struct {
	SessionKey string    `json:"session_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}
