package domain

import (
	"encoding/base64"
	"fmt"
)

// Two base64 variants are in use. Material produced by the sodium-compatible primitives
// (keys, sealed keys, content and message payloads, the wrapped organization key) uses
// unpadded URL-safe base64. Material produced by the AES-GCM primitives (attachment IVs,
// the session-cached key and the session key itself) uses standard padded base64.
var (
	SodiumEncoding = base64.RawURLEncoding
	WebEncoding    = base64.StdEncoding
)

// EncodeSodium encodes b with SodiumEncoding.
func EncodeSodium(b []byte) string {
	return SodiumEncoding.EncodeToString(b)
}

// DecodeSodium decodes s with SodiumEncoding, returning ErrMalformedEncoding on failure.
func DecodeSodium(s string) ([]byte, error) {
	b, err := SodiumEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return b, nil
}

// EncodeWeb encodes b with WebEncoding.
func EncodeWeb(b []byte) string {
	return WebEncoding.EncodeToString(b)
}

// DecodeWeb decodes s with WebEncoding, returning ErrMalformedEncoding on failure.
func DecodeWeb(s string) ([]byte, error) {
	b, err := WebEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return b, nil
}

// DecodeKey decodes a sodium-encoded key and checks that it is exactly size bytes long.
//
// Returns:
//   - ErrMalformedEncoding if s is not valid base64
//   - ErrInvalidKeySize if the decoded key has the wrong length
func DecodeKey(s string, size int) ([]byte, error) {
	b, err := DecodeSodium(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		Zero(b)
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, size, len(b))
	}
	return b, nil
}

// ToKeyArray copies a 32-byte slice into the fixed array form used by the NaCl APIs.
func ToKeyArray(b []byte) (*[32]byte, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidKeySize, len(b))
	}
	var k [32]byte
	copy(k[:], b)
	return &k, nil
}
