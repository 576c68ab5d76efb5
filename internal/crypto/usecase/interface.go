// Package usecase orchestrates the sealed-content protocol for its two parties.
//
// ReporterUseCase covers the anonymous side: generating a case keypair, sealing a
// submission to the reporter and the organization, issuing the one-time access token,
// and later reopening the case with nothing but that token.
//
// CustodianUseCase covers the organization side: provisioning the long-term keypair
// at signup, unlocking it with the admin password at login, caching it under the
// per-login session key, and opening cases with it.
package usecase

import (
	"context"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// Submission is the result of sealing a new case on the reporter's side.
type Submission struct {
	// KeyPair is the ephemeral case keypair. Only the public half is sent to the
	// server; the private half must end up in the access token and nowhere else.
	KeyPair  *cryptoDomain.KeyPair
	Envelope *cryptoDomain.SealedEnvelope
}

// OpenedCase is a case decrypted by one of its recipients.
type OpenedCase struct {
	CaseID     string
	Plaintext  []byte
	ContentKey []byte
}

// Close zeros the content key.
func (o *OpenedCase) Close() {
	if o != nil {
		cryptoDomain.Zero(o.ContentKey)
	}
}

// ProvisionedKey is an organization keypair ready to be stored: the public key in the
// clear and the private key wrapped under the admin password.
type ProvisionedKey struct {
	PublicKey []byte
	Wrapped   *cryptoDomain.WrappedPrivateKey
}

// UnlockInput carries what a client holds right after a successful login.
type UnlockInput struct {
	Password   []byte
	PublicKey  []byte
	Wrapped    *cryptoDomain.WrappedPrivateKey
	SessionKey []byte
}

// ReporterUseCase defines the anonymous reporter's operations.
type ReporterUseCase interface {
	// Submit generates a case keypair and seals content to it and to orgPublicKey.
	Submit(ctx context.Context, content, orgPublicKey []byte) (*Submission, error)

	// IssueAccessToken packages the case keypair and case id into the reporter's token.
	IssueAccessToken(caseID string, keyPair *cryptoDomain.KeyPair) (string, error)

	// Open decrypts a case envelope using only the access token.
	Open(ctx context.Context, token string, envelope *cryptoDomain.SealedEnvelope) (*OpenedCase, error)

	// DeriveContentKey recovers the case content key using only the access token.
	DeriveContentKey(ctx context.Context, token string, envelope *cryptoDomain.SealedEnvelope) ([]byte, error)
}

// CustodianUseCase defines the organization's key custody operations.
type CustodianUseCase interface {
	// ProvisionOrganizationKey generates the organization keypair and wraps its private
	// key under password.
	ProvisionOrganizationKey(ctx context.Context, password []byte) (*ProvisionedKey, error)

	// Unlock unwraps the private key with the password, checks it against the public
	// key and caches it under the session key.
	Unlock(ctx context.Context, input *UnlockInput) (*cryptoDomain.SessionCachedKey, error)

	// Recover returns the cached private key for the current session.
	Recover(ctx context.Context, cached *cryptoDomain.SessionCachedKey, sessionKey []byte) ([]byte, error)

	// OpenCase decrypts a case envelope with the organization keypair.
	OpenCase(
		ctx context.Context,
		envelope *cryptoDomain.SealedEnvelope,
		privateKey, publicKey []byte,
	) ([]byte, error)

	// DeriveContentKey recovers the case content key with the organization keypair.
	DeriveContentKey(
		ctx context.Context,
		envelope *cryptoDomain.SealedEnvelope,
		privateKey, publicKey []byte,
	) ([]byte, error)
}
