// Package domain defines the data model of the sealed-content protocol.
//
// A case is encrypted once under a random content key. The content key is sealed
// independently to two recipients (the anonymous reporter's ephemeral case keypair and
// the organization's long-term keypair), so either party can recover it without any
// shared secret channel. The organization's private key is only ever stored wrapped
// under a password-derived key, and cached client-side wrapped under a per-login
// session key.
package domain

// KeyPair is a Curve25519 key exchange keypair.
//
// Organization keypairs are long-lived. Case keypairs are generated per submission;
// only the public half is stored with the case while the private half lives solely
// inside the reporter's access token.
type KeyPair struct {
	PublicKey  []byte // 32 bytes
	PrivateKey []byte // 32 bytes, never persisted in plaintext
}

// EncodedPublicKey returns the sodium-encoded public key.
func (k *KeyPair) EncodedPublicKey() string {
	return EncodeSodium(k.PublicKey)
}

// EncodedPrivateKey returns the sodium-encoded private key.
func (k *KeyPair) EncodedPrivateKey() string {
	return EncodeSodium(k.PrivateKey)
}

// Close zeros the private key.
func (k *KeyPair) Close() {
	if k == nil {
		return
	}
	Zero(k.PrivateKey)
}

// DecodeKeyPair decodes a sodium-encoded keypair and validates both key sizes.
func DecodeKeyPair(publicKey, privateKey string) (*KeyPair, error) {
	pub, err := DecodeKey(publicKey, PublicKeySize)
	if err != nil {
		return nil, err
	}
	priv, err := DecodeKey(privateKey, PrivateKeySize)
	if err != nil {
		return nil, err
	}
	return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}
