package domain

import (
	"fmt"
	"strings"
	"time"
)

// TokenParts are the two fields carried by an access token.
type TokenParts struct {
	Field1 string
	Field2 string
}

// MergeToken concatenates two fields into one opaque token:
// a three digit zero-padded decimal length of field1, then field1, then field2.
//
// Returns:
//   - ErrTokenFieldTooLong if field1 is longer than 999 bytes
//   - ErrMalformedEncoding if either field is empty
//
// Example:
//
//	token, _ := MergeToken("abc", "xyz")
//	// token == "003abcxyz"
func MergeToken(field1, field2 string) (string, error) {
	if field1 == "" || field2 == "" {
		return "", fmt.Errorf("%w: token fields must not be empty", ErrMalformedEncoding)
	}
	if len(field1) > MaxTokenFieldLength {
		return "", fmt.Errorf("%w: got %d bytes", ErrTokenFieldTooLong, len(field1))
	}
	return fmt.Sprintf("%03d%s%s", len(field1), field1, field2), nil
}

// SplitToken reverses MergeToken. It reports false when the prefix is not three
// decimal digits, when the claimed length runs past the end of the token, or when
// either resulting field is empty.
func SplitToken(token string) (TokenParts, bool) {
	if len(token) < TokenLengthPrefixSize {
		return TokenParts{}, false
	}
	n := 0
	for _, c := range token[:TokenLengthPrefixSize] {
		if c < '0' || c > '9' {
			return TokenParts{}, false
		}
		n = n*10 + int(c-'0')
	}
	rest := token[TokenLengthPrefixSize:]
	if n > len(rest) {
		return TokenParts{}, false
	}
	parts := TokenParts{Field1: rest[:n], Field2: rest[n:]}
	if parts.Field1 == "" || parts.Field2 == "" {
		return TokenParts{}, false
	}
	return parts, true
}

// CaseAccessToken is the decoded form of a reporter's case access token. The reporter
// is its sole custodian: it is shown once at submission and never stored server-side.
type CaseAccessToken struct {
	PublicKey  string // sodium-encoded case public key
	CaseID     string
	PrivateKey string // sodium-encoded case private key
}

// EncodedPublicKeyLength is the length of a sodium-encoded public key. The public key
// is the fixed-width head of an access token's first field.
var EncodedPublicKeyLength = SodiumEncoding.EncodedLen(PublicKeySize)

// NewCaseAccessToken builds the opaque reporter credential for a case.
// The first field is the encoded public key immediately followed by the case id and
// the second is the private key.
func NewCaseAccessToken(publicKey, caseID, privateKey string) (string, error) {
	if len(publicKey) != EncodedPublicKeyLength {
		return "", fmt.Errorf("%w: public key must be %d characters, got %d",
			ErrMalformedEncoding, EncodedPublicKeyLength, len(publicKey))
	}
	if caseID == "" {
		return "", fmt.Errorf("%w: case id is required", ErrMalformedEncoding)
	}
	return MergeToken(publicKey+caseID, privateKey)
}

// ParseCaseAccessToken decodes a token produced by NewCaseAccessToken.
// Any structural problem is reported as ErrMalformedEncoding.
func ParseCaseAccessToken(token string) (CaseAccessToken, error) {
	parts, ok := SplitToken(strings.TrimSpace(token))
	if !ok || len(parts.Field1) <= EncodedPublicKeyLength {
		return CaseAccessToken{}, fmt.Errorf("%w: invalid access token", ErrMalformedEncoding)
	}
	return CaseAccessToken{
		PublicKey:  parts.Field1[:EncodedPublicKeyLength],
		CaseID:     parts.Field1[EncodedPublicKeyLength:],
		PrivateKey: parts.Field2,
	}, nil
}

// KeyPair decodes the token's key material.
func (t CaseAccessToken) KeyPair() (*KeyPair, error) {
	return DecodeKeyPair(t.PublicKey, t.PrivateKey)
}

// KeyDownloadContent renders the one-time reference file offered to a reporter after
// submission.
func KeyDownloadContent(token, caseID, channelTitle, accessCode string, createdAt time.Time) string {
	var b strings.Builder
	b.WriteString("WhistleBase Case Reference\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Channel: %s\n", channelTitle)
	fmt.Fprintf(&b, "Case ID: %s\n", caseID)
	fmt.Fprintf(&b, "Access Code: %s\n", accessCode)
	fmt.Fprintf(&b, "Reference Key: %s\n", token)
	fmt.Fprintf(&b, "Created: %s\n\n", createdAt.UTC().Format(time.RFC3339))
	b.WriteString("IMPORTANT SECURITY NOTICE:\n")
	b.WriteString("- Save this reference key securely\n")
	b.WriteString("- You will need it to check your case status\n")
	b.WriteString("- Do not share this key with others\n")
	b.WriteString("- WhistleBase cannot recover this key if lost\n\n")
	b.WriteString("This key ensures your anonymity while allowing you to track your case.\n")
	return b.String()
}
