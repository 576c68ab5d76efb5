package domain

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// EncryptedPayload is an AEAD ciphertext together with the nonce it was sealed under.
//
// It has two serializations:
//   - Text: "<base64 ciphertext>:<base64 nonce>", the wire format shared with clients.
//     The text form carries no algorithm tag and always means XChaCha20Poly1305.
//   - Binary: a versioned frame used for storage:
//     version(1) ‖ algorithm(1) ‖ nonce length(2, big endian) ‖ nonce ‖ ciphertext
type EncryptedPayload struct {
	Algorithm  Algorithm
	Ciphertext []byte
	Nonce      []byte
}

const frameHeaderSize = 4

// String serializes the payload to its text form.
func (p EncryptedPayload) String() string {
	return EncodeSodium(p.Ciphertext) + ":" + EncodeSodium(p.Nonce)
}

// ParseEncryptedPayload parses the text form "<base64 ciphertext>:<base64 nonce>".
//
// The input must contain exactly one ':' separator and the nonce must have the
// XChaCha20-Poly1305 nonce size. All problems are reported as ErrMalformedEncoding
// before any cryptographic work happens.
//
// Example:
//
//	payload, err := ParseEncryptedPayload(stored)
//	if err != nil {
//	    return err
//	}
//	plaintext, err := cipher.Decrypt(payload.Ciphertext, payload.Nonce)
func ParseEncryptedPayload(encoded string) (EncryptedPayload, error) {
	if strings.Count(encoded, ":") != 1 {
		return EncryptedPayload{}, fmt.Errorf("%w: expected exactly one ':' separator", ErrMalformedEncoding)
	}
	ctPart, noncePart, _ := strings.Cut(encoded, ":")
	if ctPart == "" || noncePart == "" {
		return EncryptedPayload{}, fmt.Errorf("%w: empty ciphertext or nonce", ErrMalformedEncoding)
	}

	ciphertext, err := DecodeSodium(ctPart)
	if err != nil {
		return EncryptedPayload{}, err
	}
	nonce, err := DecodeSodium(noncePart)
	if err != nil {
		return EncryptedPayload{}, err
	}
	if len(nonce) != XChaCha20Poly1305.NonceSize() {
		return EncryptedPayload{}, fmt.Errorf(
			"%w: nonce must be %d bytes, got %d",
			ErrMalformedEncoding,
			XChaCha20Poly1305.NonceSize(),
			len(nonce),
		)
	}

	return EncryptedPayload{
		Algorithm:  XChaCha20Poly1305,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}, nil
}

// IsEncodedPayload reports whether s looks like a text payload without decoding it fully.
func IsEncodedPayload(s string) bool {
	_, err := ParseEncryptedPayload(s)
	return err == nil
}

// MarshalBinary encodes the payload as a version 1 binary frame.
func (p EncryptedPayload) MarshalBinary() ([]byte, error) {
	if !p.Algorithm.Valid() {
		return nil, ErrUnsupportedAlgorithm
	}
	if len(p.Nonce) > 0xFFFF {
		return nil, fmt.Errorf("%w: nonce too long", ErrMalformedEncoding)
	}

	out := make([]byte, frameHeaderSize, frameHeaderSize+len(p.Nonce)+len(p.Ciphertext))
	out[0] = FrameVersion1
	out[1] = byte(p.Algorithm)
	binary.BigEndian.PutUint16(out[2:4], uint16(len(p.Nonce)))
	out = append(out, p.Nonce...)
	out = append(out, p.Ciphertext...)
	return out, nil
}

// UnmarshalBinary decodes a binary frame produced by MarshalBinary.
//
// Returns:
//   - ErrUnsupportedVersion for an unknown version byte
//   - ErrUnsupportedAlgorithm for an unknown algorithm tag
//   - ErrMalformedEncoding for truncated frames or a nonce length that does not
//     match the algorithm
func (p *EncryptedPayload) UnmarshalBinary(data []byte) error {
	if len(data) < frameHeaderSize {
		return fmt.Errorf("%w: frame too short", ErrMalformedEncoding)
	}
	if data[0] != FrameVersion1 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}
	alg := Algorithm(data[1])
	if !alg.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, data[1])
	}
	nonceLen := int(binary.BigEndian.Uint16(data[2:4]))
	if nonceLen != alg.NonceSize() {
		return fmt.Errorf("%w: nonce length %d does not match %s", ErrMalformedEncoding, nonceLen, alg)
	}
	if len(data) < frameHeaderSize+nonceLen {
		return fmt.Errorf("%w: frame truncated", ErrMalformedEncoding)
	}

	body := data[frameHeaderSize:]
	p.Algorithm = alg
	p.Nonce = append([]byte(nil), body[:nonceLen]...)
	p.Ciphertext = append([]byte(nil), body[nonceLen:]...)
	return nil
}
