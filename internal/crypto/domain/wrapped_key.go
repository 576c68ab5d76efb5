package domain

import "fmt"

// WrappedPrivateKey is an organization private key encrypted under a key derived from
// the admin's password. It is the only form in which the private key is persisted.
type WrappedPrivateKey struct {
	Ciphertext []byte
	Salt       []byte
	Nonce      []byte
}

// EncodedWrappedPrivateKey is the at-rest text form of a WrappedPrivateKey.
type EncodedWrappedPrivateKey struct {
	Ciphertext string `json:"encrypted_private_key"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
}

// Encode converts the wrapped key to its text form.
func (w *WrappedPrivateKey) Encode() EncodedWrappedPrivateKey {
	return EncodedWrappedPrivateKey{
		Ciphertext: EncodeSodium(w.Ciphertext),
		Salt:       EncodeSodium(w.Salt),
		Nonce:      EncodeSodium(w.Nonce),
	}
}

// Decode parses the text form and validates the salt and nonce sizes.
func (e EncodedWrappedPrivateKey) Decode() (*WrappedPrivateKey, error) {
	ct, err := DecodeSodium(e.Ciphertext)
	if err != nil {
		return nil, err
	}
	salt, err := DecodeSodium(e.Salt)
	if err != nil {
		return nil, err
	}
	nonce, err := DecodeSodium(e.Nonce)
	if err != nil {
		return nil, err
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrMalformedEncoding, SaltSize, len(salt))
	}
	if len(nonce) != XSalsa20Poly1305.NonceSize() {
		return nil, fmt.Errorf(
			"%w: nonce must be %d bytes, got %d",
			ErrMalformedEncoding,
			XSalsa20Poly1305.NonceSize(),
			len(nonce),
		)
	}
	if len(ct) == 0 {
		return nil, fmt.Errorf("%w: empty ciphertext", ErrMalformedEncoding)
	}
	return &WrappedPrivateKey{Ciphertext: ct, Salt: salt, Nonce: nonce}, nil
}

// SessionCachedKey is a plaintext private key encrypted under a per-login session key
// with AES-256-GCM, suitable for transient client-side storage.
type SessionCachedKey struct {
	Ciphertext []byte
	IV         []byte
}

// EncodedSessionCachedKey is the text form of a SessionCachedKey.
type EncodedSessionCachedKey struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
}

// Encode converts the cached key to standard base64 text.
func (s *SessionCachedKey) Encode() EncodedSessionCachedKey {
	return EncodedSessionCachedKey{
		Ciphertext: EncodeWeb(s.Ciphertext),
		IV:         EncodeWeb(s.IV),
	}
}

// Decode parses the text form and validates the IV size.
func (e EncodedSessionCachedKey) Decode() (*SessionCachedKey, error) {
	ct, err := DecodeWeb(e.Ciphertext)
	if err != nil {
		return nil, err
	}
	iv, err := DecodeWeb(e.IV)
	if err != nil {
		return nil, err
	}
	if len(iv) != AESGCM.NonceSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformedEncoding, AESGCM.NonceSize(), len(iv))
	}
	return &SessionCachedKey{Ciphertext: ct, IV: iv}, nil
}
