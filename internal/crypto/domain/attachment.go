package domain

import "fmt"

// EncryptedAttachment is a file encrypted under a case content key with AES-256-GCM.
// The IV is stored and transmitted separately from the ciphertext blob.
type EncryptedAttachment struct {
	Ciphertext []byte
	IV         []byte
}

// EncodedIV returns the IV in standard base64.
func (a EncryptedAttachment) EncodedIV() string {
	return EncodeWeb(a.IV)
}

// DecodeAttachmentIV decodes a standard base64 attachment IV and checks its length.
func DecodeAttachmentIV(s string) ([]byte, error) {
	iv, err := DecodeWeb(s)
	if err != nil {
		return nil, err
	}
	if len(iv) != AttachmentIVSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformedEncoding, AttachmentIVSize, len(iv))
	}
	return iv, nil
}
