// Package domain defines organizations and their members.
//
// An organization owns one long-lived Curve25519 keypair. The public half is stored in
// plaintext so reporters can seal case content to it. The private half is stored only
// as a password-wrapped tuple produced client-side at signup; the server never sees it
// in plaintext.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// Organization is the at-rest organization record.
type Organization struct {
	ID                  uuid.UUID
	Name                string
	Country             string
	PublicKey           []byte // raw 32-byte Curve25519 public key
	EncryptedPrivateKey []byte
	Salt                []byte
	Nonce               []byte
	CreatedAt           time.Time
}

// WrappedPrivateKey returns the stored wrapped private key tuple.
func (o *Organization) WrappedPrivateKey() *cryptoDomain.WrappedPrivateKey {
	return &cryptoDomain.WrappedPrivateKey{
		Ciphertext: o.EncryptedPrivateKey,
		Salt:       o.Salt,
		Nonce:      o.Nonce,
	}
}

// EncodedPublicKey returns the public key in its wire encoding.
func (o *Organization) EncodedPublicKey() string {
	return cryptoDomain.EncodeSodium(o.PublicKey)
}

// SignupInput carries a new organization and its first admin. Key material arrives
// already encoded by the client.
type SignupInput struct {
	Name                string
	Country             string
	AdminEmail          string
	AdminPassword       string //nolint:gosec // plaintext only in transit, hashed before storage
	PublicKey           string
	EncryptedPrivateKey string
	Salt                string
	Nonce               string
}

// SignupOutput identifies the records created by a signup.
type SignupOutput struct {
	OrganizationID uuid.UUID
	MemberID       uuid.UUID
}
