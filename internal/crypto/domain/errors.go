package domain

import (
	"github.com/whistlebase/whistlebase/internal/errors"
)

// Cryptographic error taxonomy.
//
// Every failure to authenticate ciphertext collapses to ErrDecryptionFailed so that
// callers cannot learn whether a wrong key, a flipped bit or corrupted storage caused
// it. Encoding problems are detected before any cryptographic work is attempted and
// are reported as ErrMalformedEncoding.
var (
	// ErrRandomnessFailure indicates the entropy source could not produce bytes.
	// It is fatal for the operation in progress and is never retried.
	ErrRandomnessFailure = errors.New("randomness failure")

	// ErrProviderNotReady indicates the crypto provider failed its readiness self-test.
	ErrProviderNotReady = errors.New("crypto provider not ready")

	// ErrDecryptionFailed indicates an authentication tag mismatch or an
	// undecryptable payload. The message is intentionally generic.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "cannot decrypt")

	// ErrMalformedEncoding indicates bad base64, a missing or repeated separator, a
	// truncated binary frame or an inconsistent token length prefix.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMalformedEncoding = errors.Wrap(errors.ErrInvalidInput, "malformed encoding")

	// ErrMissingKeyMaterial indicates an operation was invoked without the private or
	// session key it needs. Users see it as an expired session.
	//
	// HTTP Status: 401 Unauthorized
	ErrMissingKeyMaterial = errors.Wrap(errors.ErrUnauthorized, "session expired, please re-authenticate")

	// ErrInvalidKeySize indicates a key of the wrong length.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedAlgorithm indicates an unknown algorithm tag.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedVersion indicates a binary frame with an unknown version byte.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported frame version")

	// ErrTokenFieldTooLong indicates the first access token field does not fit the
	// three digit length prefix.
	ErrTokenFieldTooLong = errors.Wrap(errors.ErrInvalidInput, "access token field exceeds 999 bytes")
)
