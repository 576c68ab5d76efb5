package usecase

import (
	"context"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
)

type reporterUseCase struct {
	keyPairs cryptoService.KeyPairGenerator
	sealer   cryptoService.ContentSealer
}

// Submit generates a fresh case keypair and seals content for both recipients.
// The case keypair is never reused across submissions.
func (r *reporterUseCase) Submit(ctx context.Context, content, orgPublicKey []byte) (*Submission, error) {
	keyPair, err := r.keyPairs.GenerateKeyPair(ctx)
	if err != nil {
		return nil, err
	}

	envelope, err := r.sealer.Seal(ctx, content, nil, keyPair.PublicKey, orgPublicKey)
	if err != nil {
		keyPair.Close()
		return nil, err
	}

	return &Submission{KeyPair: keyPair, Envelope: envelope}, nil
}

// IssueAccessToken builds the token "<len><publicKey><caseID><privateKey>".
func (r *reporterUseCase) IssueAccessToken(caseID string, keyPair *cryptoDomain.KeyPair) (string, error) {
	if keyPair == nil || len(keyPair.PrivateKey) == 0 {
		return "", cryptoDomain.ErrMissingKeyMaterial
	}
	return cryptoDomain.NewCaseAccessToken(keyPair.EncodedPublicKey(), caseID, keyPair.EncodedPrivateKey())
}

// Open decrypts a case with the keypair carried in token.
func (r *reporterUseCase) Open(
	ctx context.Context,
	token string,
	envelope *cryptoDomain.SealedEnvelope,
) (*OpenedCase, error) {
	parsed, keyPair, err := r.keyPairFromToken(token)
	if err != nil {
		return nil, err
	}
	defer keyPair.Close()

	contentKey, err := r.sealer.DeriveContentKey(ctx, envelope, keyPair.PrivateKey, keyPair.PublicKey)
	if err != nil {
		return nil, err
	}
	plaintext, err := r.sealer.Open(ctx, envelope, keyPair.PrivateKey, keyPair.PublicKey)
	if err != nil {
		cryptoDomain.Zero(contentKey)
		return nil, err
	}

	return &OpenedCase{CaseID: parsed.CaseID, Plaintext: plaintext, ContentKey: contentKey}, nil
}

// DeriveContentKey recovers the content key with the keypair carried in token.
func (r *reporterUseCase) DeriveContentKey(
	ctx context.Context,
	token string,
	envelope *cryptoDomain.SealedEnvelope,
) ([]byte, error) {
	_, keyPair, err := r.keyPairFromToken(token)
	if err != nil {
		return nil, err
	}
	defer keyPair.Close()

	return r.sealer.DeriveContentKey(ctx, envelope, keyPair.PrivateKey, keyPair.PublicKey)
}

func (r *reporterUseCase) keyPairFromToken(token string) (cryptoDomain.CaseAccessToken, *cryptoDomain.KeyPair, error) {
	if token == "" {
		return cryptoDomain.CaseAccessToken{}, nil, cryptoDomain.ErrMissingKeyMaterial
	}
	parsed, err := cryptoDomain.ParseCaseAccessToken(token)
	if err != nil {
		return cryptoDomain.CaseAccessToken{}, nil, err
	}
	keyPair, err := parsed.KeyPair()
	if err != nil {
		return cryptoDomain.CaseAccessToken{}, nil, err
	}
	return parsed, keyPair, nil
}

// NewReporterUseCase creates a new ReporterUseCase.
func NewReporterUseCase(
	keyPairs cryptoService.KeyPairGenerator,
	sealer cryptoService.ContentSealer,
) ReporterUseCase {
	return &reporterUseCase{keyPairs: keyPairs, sealer: sealer}
}
