package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	authService "github.com/whistlebase/whistlebase/internal/auth/service"
	"github.com/whistlebase/whistlebase/internal/config"
	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

type loginUseCase struct {
	config          *config.Config
	orgReader       OrganizationReader
	memberRepo      MemberRepository
	passwordService authService.PasswordService
	tokenService    authService.SessionTokenService
	custodian       cryptoService.SessionKeyCustodian
	now             func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string
}

// compareDummy spends one password comparison against a throwaway hash so that an
// unknown email costs the same as a wrong password.
func (l *loginUseCase) compareDummy(password string) {
	l.dummyHashOnce.Do(func() {
		hash, err := l.passwordService.HashPassword(uuid.NewString())
		if err == nil {
			l.dummyHash = hash
		}
	})
	l.passwordService.ComparePassword(password, l.dummyHash)
}

// Login authenticates a member by email and password.
//
// Unknown emails and wrong passwords both return ErrInvalidCredentials. Consecutive
// failures are counted on the member record; reaching Config.LockoutMaxAttempts locks
// the member for Config.LockoutDuration and returns ErrMemberLocked.
//
// On success a fresh 256-bit session key is minted and embedded in the signed session
// token. The response also carries the organization's wrapped private key so the client
// can unwrap it with the password and re-cache it under the session key.
func (l *loginUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	member, err := l.memberRepo.GetByEmail(ctx, orgDomain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, orgDomain.ErrMemberNotFound) {
			l.compareDummy(input.Password)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := l.now().UTC()
	if member.IsLocked(now) {
		return nil, authDomain.ErrMemberLocked
	}

	if !l.passwordService.ComparePassword(input.Password, member.PasswordHash) {
		locked := member.RecordFailedLogin(now, l.config.LockoutMaxAttempts, l.config.LockoutDuration)
		if err := l.memberRepo.Update(ctx, member); err != nil {
			return nil, err
		}
		if locked {
			return nil, authDomain.ErrMemberLocked
		}
		return nil, authDomain.ErrInvalidCredentials
	}

	if member.FailedAttempts > 0 || member.LockedUntil != nil {
		member.ResetFailedLogins()
		if err := l.memberRepo.Update(ctx, member); err != nil {
			return nil, err
		}
	}

	org, err := l.orgReader.Get(ctx, member.OrganizationID)
	if err != nil {
		return nil, err
	}

	sessionKey, err := l.custodian.GenerateSessionKey(ctx)
	if err != nil {
		return nil, err
	}
	session := &authDomain.Session{
		ID:             uuid.Must(uuid.NewV7()),
		MemberID:       member.ID,
		OrganizationID: member.OrganizationID,
		Role:           string(member.Role),
		SessionKey:     sessionKey,
		IssuedAt:       now,
		ExpiresAt:      now.Add(l.config.SessionExpiration),
	}
	defer session.Close()

	token, err := l.tokenService.Issue(session)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		SessionToken:      token,
		ExpiresAt:         session.ExpiresAt,
		MemberID:          member.ID,
		OrganizationID:    org.ID,
		PublicKey:         org.EncodedPublicKey(),
		WrappedPrivateKey: org.WrappedPrivateKey().Encode(),
	}, nil
}

// Authenticate parses and verifies a session token. Tokens are self-contained, so no
// storage lookup happens here.
func (l *loginUseCase) Authenticate(_ context.Context, token string) (*authDomain.Session, error) {
	if token == "" {
		return nil, authDomain.ErrInvalidSession
	}
	return l.tokenService.Parse(token)
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(
	cfg *config.Config,
	orgReader OrganizationReader,
	memberRepo MemberRepository,
	passwordService authService.PasswordService,
	tokenService authService.SessionTokenService,
	custodian cryptoService.SessionKeyCustodian,
) LoginUseCase {
	return &loginUseCase{
		config:          cfg,
		orgReader:       orgReader,
		memberRepo:      memberRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		custodian:       custodian,
		now:             time.Now,
	}
}
