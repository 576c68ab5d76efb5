// Package domain defines cases, their encrypted conversation and attachment metadata.
//
// The server never sees plaintext. A case stores the content ciphertext and the content
// key sealed once to the reporter's case public key and once to the organization public
// key. Messages are encrypted client-side under the same content key; attachments are
// AES-GCM blobs whose IV is kept next to their metadata.
package domain

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// Status is a case's workflow status.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Justification records the organization's finding on a case.
type Justification string

const (
	JustificationNone        Justification = "NONE"
	JustificationJustified   Justification = "JUSTIFIED"
	JustificationUnjustified Justification = "UNJUSTIFIED"
)

// Valid reports whether j is a known justification.
func (j Justification) Valid() bool {
	return j == JustificationNone || j == JustificationJustified || j == JustificationUnjustified
}

// Case is a sealed report submitted to an organization.
type Case struct {
	ID                uuid.UUID
	OrganizationID    uuid.UUID
	ChannelID         uuid.UUID
	Category          string
	ReporterPublicKey []byte
	Envelope          cryptoDomain.SealedEnvelope
	Status            Status
	Justification     Justification
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EncodedReporterPublicKey returns the reporter public key in sodium encoding.
func (c *Case) EncodedReporterPublicKey() string {
	return cryptoDomain.EncodeSodium(c.ReporterPublicKey)
}

// OwnedBy reports whether publicKey is the case's reporter public key. The comparison
// runs in constant time.
func (c *Case) OwnedBy(publicKey []byte) bool {
	return len(publicKey) == len(c.ReporterPublicKey) &&
		subtle.ConstantTimeCompare(publicKey, c.ReporterPublicKey) == 1
}

// SubmitCaseInput carries a client-sealed case. Reporters may generate the case ID
// themselves so that it can be embedded in their access token before submission; a
// nil ID is assigned by the server.
type SubmitCaseInput struct {
	ID                *uuid.UUID
	AccessCode        string
	Category          string
	ReporterPublicKey string
	Envelope          cryptoDomain.EncodedEnvelope
}

// UpdateStatusInput changes a case's status and optionally its justification.
type UpdateStatusInput struct {
	CaseID        uuid.UUID
	Status        Status
	Justification *Justification
}

// CaseDetail is a case with its conversation and case-level attachments.
type CaseDetail struct {
	Case        *Case
	Messages    []*MessageDetail
	Attachments []*Attachment
}

// Stats summarizes an organization's cases.
type Stats struct {
	TotalCases       int64
	OpenCases        int64
	ClosedCases      int64
	JustifiedCases   int64
	UnjustifiedCases int64
	TotalChannels    int64
	ActiveChannels   int64
}
