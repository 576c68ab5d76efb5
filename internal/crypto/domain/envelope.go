package domain

import "fmt"

// Recipient names one of the two parties a content key is sealed to.
type Recipient string

const (
	RecipientReporter     Recipient = "reporter"
	RecipientOrganization Recipient = "organization"
)

// SealedEnvelope is an encrypted case.
//
// Content is encrypted once under a random content key. The content key is sealed
// to the reporter's case public key and to the organization public key. Opening either
// sealed key with the matching private key yields the identical content key.
type SealedEnvelope struct {
	Content              EncryptedPayload
	SealedKeyForReporter []byte
	SealedKeyForOrg      []byte
}

// SealedKeyFor returns the sealed content key addressed to r.
func (e *SealedEnvelope) SealedKeyFor(r Recipient) []byte {
	switch r {
	case RecipientReporter:
		return e.SealedKeyForReporter
	case RecipientOrganization:
		return e.SealedKeyForOrg
	default:
		return nil
	}
}

// EncodedEnvelope is the text form of a SealedEnvelope as exchanged with clients and
// exported for offline decryption.
type EncodedEnvelope struct {
	Content              string `json:"content"`
	SealedKeyForReporter string `json:"sealed_key_for_reporter"`
	SealedKeyForOrg      string `json:"sealed_key_for_org"`
}

// Encode converts the envelope to its text form.
func (e *SealedEnvelope) Encode() EncodedEnvelope {
	return EncodedEnvelope{
		Content:              e.Content.String(),
		SealedKeyForReporter: EncodeSodium(e.SealedKeyForReporter),
		SealedKeyForOrg:      EncodeSodium(e.SealedKeyForOrg),
	}
}

// Decode parses the text form. Sealed keys must decode to SealedKeySize bytes.
func (e EncodedEnvelope) Decode() (*SealedEnvelope, error) {
	content, err := ParseEncryptedPayload(e.Content)
	if err != nil {
		return nil, err
	}
	forReporter, err := decodeSealedKey(e.SealedKeyForReporter)
	if err != nil {
		return nil, err
	}
	forOrg, err := decodeSealedKey(e.SealedKeyForOrg)
	if err != nil {
		return nil, err
	}
	return &SealedEnvelope{
		Content:              content,
		SealedKeyForReporter: forReporter,
		SealedKeyForOrg:      forOrg,
	}, nil
}

func decodeSealedKey(s string) ([]byte, error) {
	b, err := DecodeSodium(s)
	if err != nil {
		return nil, err
	}
	if len(b) != SealedKeySize {
		return nil, fmt.Errorf("%w: sealed key must be %d bytes, got %d", ErrMalformedEncoding, SealedKeySize, len(b))
	}
	return b, nil
}

// ValidateSealedKey checks that s is a sodium-encoded sealed content key.
func ValidateSealedKey(s string) error {
	_, err := decodeSealedKey(s)
	return err
}
