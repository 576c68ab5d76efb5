package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

// KDFProfile holds Argon2id cost parameters.
type KDFProfile struct {
	Name      string
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

var (
	// KDFInteractive matches libsodium's OPSLIMIT_INTERACTIVE/MEMLIMIT_INTERACTIVE and is
	// tuned for sub-second derivation on a client.
	KDFInteractive = KDFProfile{Name: "interactive", Time: 2, MemoryKiB: 64 * 1024, Threads: 1}

	// KDFModerate matches libsodium's OPSLIMIT_MODERATE/MEMLIMIT_MODERATE.
	KDFModerate = KDFProfile{Name: "moderate", Time: 3, MemoryKiB: 256 * 1024, Threads: 1}
)

// ParseKDFProfile resolves a profile name. An empty name selects KDFInteractive.
func ParseKDFProfile(name string) (KDFProfile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KDFInteractive.Name:
		return KDFInteractive, nil
	case KDFModerate.Name:
		return KDFModerate, nil
	default:
		return KDFProfile{}, fmt.Errorf("%w: unknown kdf profile %q", apperrors.ErrInvalidInput, name)
	}
}

func (p KDFProfile) deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Threads, cryptoDomain.KeySize)
}

// keyWrap is the shared "encrypt a key under another key" step of both custody
// wrappers. The wrappers differ only in where the wrapping key comes from and which
// AEAD they use.
type keyWrap struct {
	aeadManager AEADManager
	alg         cryptoDomain.Algorithm
}

func (w keyWrap) wrap(wrappingKey, key []byte) (ciphertext, nonce []byte, err error) {
	cipher, err := w.aeadManager.CreateCipher(wrappingKey, w.alg)
	if err != nil {
		return nil, nil, err
	}
	ciphertext, nonce, err = cipher.Encrypt(key, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
	}
	return ciphertext, nonce, nil
}

func (w keyWrap) unwrap(wrappingKey, ciphertext, nonce []byte) ([]byte, error) {
	cipher, err := w.aeadManager.CreateCipher(wrappingKey, w.alg)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return cipher.Decrypt(ciphertext, nonce, nil)
}

// PasswordKeyWrapService protects a private key at rest.
//
// A 256-bit key is derived from the password and a random 128-bit salt with Argon2id,
// then the private key is sealed with secretbox (XSalsa20-Poly1305) under a random
// 192-bit nonce. This matches libsodium's crypto_pwhash + crypto_secretbox_easy, so a
// record wrapped by a browser client unwraps here and vice versa.
//
// The KDF profile is not stored in the record; every deployment must keep using the
// profile its records were wrapped with.
type PasswordKeyWrapService struct {
	provider *Provider
	profile  KDFProfile
	keyWrap  keyWrap
}

// NewPasswordKeyWrap creates a new PasswordKeyWrapService using the given KDF profile.
func NewPasswordKeyWrap(provider *Provider, aeadManager AEADManager, profile KDFProfile) *PasswordKeyWrapService {
	return &PasswordKeyWrapService{
		provider: provider,
		profile:  profile,
		keyWrap:  keyWrap{aeadManager: aeadManager, alg: cryptoDomain.XSalsa20Poly1305},
	}
}

// Wrap encrypts privateKey under a key derived from password.
//
// Returns:
//   - The wrapped key tuple (ciphertext, salt, nonce)
//   - ErrInvalidInput if password is empty
//   - ErrMissingKeyMaterial if privateKey is empty
//   - ErrRandomnessFailure if salt or nonce generation fails
func (s *PasswordKeyWrapService) Wrap(
	ctx context.Context,
	password, privateKey []byte,
) (*cryptoDomain.WrappedPrivateKey, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password must not be empty", apperrors.ErrInvalidInput)
	}
	if len(privateKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}

	salt, err := s.provider.RandomBytes(cryptoDomain.SaltSize)
	if err != nil {
		return nil, err
	}
	derived := s.profile.deriveKey(password, salt)
	defer cryptoDomain.Zero(derived)

	ciphertext, nonce, err := s.keyWrap.wrap(derived, privateKey)
	if err != nil {
		return nil, err
	}
	return &cryptoDomain.WrappedPrivateKey{Ciphertext: ciphertext, Salt: salt, Nonce: nonce}, nil
}

// Unwrap re-derives the key from password and the stored salt and opens the private
// key. A wrong password surfaces as ErrDecryptionFailed, never as a garbage key.
func (s *PasswordKeyWrapService) Unwrap(
	ctx context.Context,
	password []byte,
	wrapped *cryptoDomain.WrappedPrivateKey,
) ([]byte, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if wrapped == nil || len(wrapped.Salt) != cryptoDomain.SaltSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	derived := s.profile.deriveKey(password, wrapped.Salt)
	defer cryptoDomain.Zero(derived)

	return s.keyWrap.unwrap(derived, wrapped.Ciphertext, wrapped.Nonce)
}

// SessionKeyCustodyService caches a plaintext private key for the lifetime of a login.
//
// The private key is sealed with AES-256-GCM under a random per-login session key that
// only lives inside the signed session token. Once the session ends the session key is
// gone and the cached ciphertext can no longer be opened; the user has to unwrap with
// the password again.
type SessionKeyCustodyService struct {
	provider *Provider
	keyWrap  keyWrap
}

// NewSessionKeyCustody creates a new SessionKeyCustodyService.
func NewSessionKeyCustody(provider *Provider, aeadManager AEADManager) *SessionKeyCustodyService {
	return &SessionKeyCustodyService{
		provider: provider,
		keyWrap:  keyWrap{aeadManager: aeadManager, alg: cryptoDomain.AESGCM},
	}
}

// GenerateSessionKey returns a random 256-bit session key.
func (s *SessionKeyCustodyService) GenerateSessionKey(ctx context.Context) ([]byte, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	return s.provider.RandomBytes(cryptoDomain.KeySize)
}

// CacheKey encrypts privateKey under sessionKey.
func (s *SessionKeyCustodyService) CacheKey(
	ctx context.Context,
	privateKey, sessionKey []byte,
) (*cryptoDomain.SessionCachedKey, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if len(privateKey) == 0 || len(sessionKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}

	ciphertext, iv, err := s.keyWrap.wrap(sessionKey, privateKey)
	if err != nil {
		return nil, err
	}
	return &cryptoDomain.SessionCachedKey{Ciphertext: ciphertext, IV: iv}, nil
}

// RecoverKey decrypts a cached private key.
//
// Returns:
//   - ErrMissingKeyMaterial if the session key or cached key is absent
//   - ErrDecryptionFailed if sessionKey is not the key the cache was made with
func (s *SessionKeyCustodyService) RecoverKey(
	ctx context.Context,
	cached *cryptoDomain.SessionCachedKey,
	sessionKey []byte,
) ([]byte, error) {
	if err := s.provider.Ready(ctx); err != nil {
		return nil, err
	}
	if cached == nil || len(sessionKey) == 0 {
		return nil, cryptoDomain.ErrMissingKeyMaterial
	}
	return s.keyWrap.unwrap(sessionKey, cached.Ciphertext, cached.IV)
}
