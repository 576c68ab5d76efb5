// Package mocks provides mock implementations of the crypto service interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// MockKeyPairGenerator is a mock implementation of KeyPairGenerator.
type MockKeyPairGenerator struct {
	mock.Mock
}

// GenerateKeyPair mocks the GenerateKeyPair method.
func (m *MockKeyPairGenerator) GenerateKeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyPair), args.Error(1)
}

// PublicKeyFromPrivate mocks the PublicKeyFromPrivate method.
func (m *MockKeyPairGenerator) PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	args := m.Called(privateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockContentSealer is a mock implementation of ContentSealer.
type MockContentSealer struct {
	mock.Mock
}

// GenerateContentKey mocks the GenerateContentKey method.
func (m *MockContentSealer) GenerateContentKey(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Seal mocks the Seal method.
func (m *MockContentSealer) Seal(
	ctx context.Context,
	plaintext, contentKey, reporterPublicKey, orgPublicKey []byte,
) (*cryptoDomain.SealedEnvelope, error) {
	args := m.Called(ctx, plaintext, contentKey, reporterPublicKey, orgPublicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.SealedEnvelope), args.Error(1)
}

// Open mocks the Open method.
func (m *MockContentSealer) Open(
	ctx context.Context,
	envelope *cryptoDomain.SealedEnvelope,
	privateKey, publicKey []byte,
) ([]byte, error) {
	args := m.Called(ctx, envelope, privateKey, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DeriveContentKey mocks the DeriveContentKey method.
func (m *MockContentSealer) DeriveContentKey(
	ctx context.Context,
	envelope *cryptoDomain.SealedEnvelope,
	privateKey, publicKey []byte,
) ([]byte, error) {
	args := m.Called(ctx, envelope, privateKey, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPasswordKeyWrapper is a mock implementation of PasswordKeyWrapper.
type MockPasswordKeyWrapper struct {
	mock.Mock
}

// Wrap mocks the Wrap method.
func (m *MockPasswordKeyWrapper) Wrap(
	ctx context.Context,
	password, privateKey []byte,
) (*cryptoDomain.WrappedPrivateKey, error) {
	args := m.Called(ctx, password, privateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.WrappedPrivateKey), args.Error(1)
}

// Unwrap mocks the Unwrap method.
func (m *MockPasswordKeyWrapper) Unwrap(
	ctx context.Context,
	password []byte,
	wrapped *cryptoDomain.WrappedPrivateKey,
) ([]byte, error) {
	args := m.Called(ctx, password, wrapped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSessionKeyCustodian is a mock implementation of SessionKeyCustodian.
type MockSessionKeyCustodian struct {
	mock.Mock
}

// GenerateSessionKey mocks the GenerateSessionKey method.
func (m *MockSessionKeyCustodian) GenerateSessionKey(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// CacheKey mocks the CacheKey method.
func (m *MockSessionKeyCustodian) CacheKey(
	ctx context.Context,
	privateKey, sessionKey []byte,
) (*cryptoDomain.SessionCachedKey, error) {
	args := m.Called(ctx, privateKey, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.SessionCachedKey), args.Error(1)
}

// RecoverKey mocks the RecoverKey method.
func (m *MockSessionKeyCustodian) RecoverKey(
	ctx context.Context,
	cached *cryptoDomain.SessionCachedKey,
	sessionKey []byte,
) ([]byte, error) {
	args := m.Called(ctx, cached, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
