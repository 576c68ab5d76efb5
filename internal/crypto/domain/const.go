package domain

// Algorithm identifies the authenticated cipher that produced an EncryptedPayload.
//
// The numeric value is written as the algorithm tag of the binary frame, so existing
// values must never be renumbered.
type Algorithm byte

const (
	// XChaCha20Poly1305 is the IETF XChaCha20-Poly1305 AEAD with a 192-bit random nonce.
	// It protects case content and conversation messages.
	XChaCha20Poly1305 Algorithm = 0x01

	// AESGCM is AES-256-GCM with a 96-bit random IV. It protects attachments and the
	// session-cached organization private key.
	AESGCM Algorithm = 0x02

	// XSalsa20Poly1305 is the NaCl secretbox construction with a 192-bit random nonce.
	// It protects the organization private key under a password-derived key.
	XSalsa20Poly1305 Algorithm = 0x03
)

// String returns the conventional name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case XChaCha20Poly1305:
		return "xchacha20-poly1305"
	case AESGCM:
		return "aes-256-gcm"
	case XSalsa20Poly1305:
		return "xsalsa20-poly1305"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a == XChaCha20Poly1305 || a == AESGCM || a == XSalsa20Poly1305
}

// NonceSize returns the nonce length in bytes required by the algorithm.
func (a Algorithm) NonceSize() int {
	switch a {
	case XChaCha20Poly1305, XSalsa20Poly1305:
		return 24
	case AESGCM:
		return 12
	default:
		return 0
	}
}

const (
	// KeySize is the size of every symmetric key in the protocol (content keys,
	// password-derived keys, session keys).
	KeySize = 32

	// PublicKeySize and PrivateKeySize are the Curve25519 key sizes.
	PublicKeySize  = 32
	PrivateKeySize = 32

	// SealedKeySize is the size of a sealed-box holding a content key:
	// ephemeral public key (32) + Poly1305 tag (16) + key (32).
	SealedKeySize = 32 + 16 + KeySize

	// SaltSize is the Argon2id salt length (libsodium crypto_pwhash_SALTBYTES).
	SaltSize = 16

	// AttachmentIVSize is the AES-GCM IV length used for attachments.
	AttachmentIVSize = 12

	// FrameVersion1 is the only binary frame version understood by this package.
	FrameVersion1 byte = 0x01

	// MaxTokenFieldLength is the largest first field an access token can carry,
	// bounded by its three decimal digit length prefix.
	MaxTokenFieldLength = 999

	// TokenLengthPrefixSize is the width of the access token length prefix.
	TokenLengthPrefixSize = 3
)
