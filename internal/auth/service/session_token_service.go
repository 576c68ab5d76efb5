package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

const (
	sessionIssuer = "whistlebase"

	// MinSigningKeySize is the smallest accepted HMAC signing key.
	MinSigningKeySize = 32
)

type sessionClaims struct {
	OrganizationID string `json:"org"`
	Role           string `json:"role"`
	SessionKey     string `json:"sk"`
	jwt.RegisteredClaims
}

type sessionTokenService struct {
	signingKey []byte
	now        func() time.Time
}

func (s *sessionTokenService) Issue(session *authDomain.Session) (string, error) {
	claims := sessionClaims{
		OrganizationID: session.OrganizationID.String(),
		Role:           session.Role,
		SessionKey:     session.EncodedSessionKey(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Issuer:    sessionIssuer,
			Subject:   session.MemberID.String(),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign session token")
	}
	return token, nil
}

func (s *sessionTokenService) Parse(token string) (*authDomain.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, authDomain.ErrInvalidSession
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, authDomain.ErrInvalidSession
	}
	memberID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrInvalidSession
	}
	orgID, err := uuid.Parse(claims.OrganizationID)
	if err != nil {
		return nil, authDomain.ErrInvalidSession
	}
	sessionKey, err := cryptoDomain.DecodeWeb(claims.SessionKey)
	if err != nil || len(sessionKey) != cryptoDomain.KeySize {
		return nil, authDomain.ErrInvalidSession
	}

	session := &authDomain.Session{
		ID:             id,
		MemberID:       memberID,
		OrganizationID: orgID,
		Role:           claims.Role,
		SessionKey:     sessionKey,
		ExpiresAt:      claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// NewSessionTokenService creates an HS256 SessionTokenService. The signing key is the
// standard base64 encoding of at least MinSigningKeySize random bytes.
func NewSessionTokenService(encodedSigningKey string) (SessionTokenService, error) {
	key, err := cryptoDomain.DecodeWeb(encodedSigningKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session signing key must be base64")
	}
	if len(key) < MinSigningKeySize {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session signing key must be at least 32 bytes")
	}
	return &sessionTokenService{signingKey: key, now: time.Now}, nil
}
