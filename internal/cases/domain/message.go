package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// SenderType identifies who wrote a message.
type SenderType string

const (
	SenderAnonymous SenderType = "ANONYMOUS"
	SenderAdmin     SenderType = "ADMIN"
)

// Message is one encrypted entry in a case conversation.
type Message struct {
	ID         uuid.UUID
	CaseID     uuid.UUID
	SenderType SenderType
	SenderID   *uuid.UUID
	Payload    cryptoDomain.EncryptedPayload
	CreatedAt  time.Time
}

// MessageDetail is a message with the attachments sent alongside it.
type MessageDetail struct {
	Message     *Message
	Attachments []*Attachment
}

// SendMessageInput carries a client-encrypted message.
type SendMessageInput struct {
	CaseID        uuid.UUID
	Actor         Actor
	Message       string
	AttachmentIDs []uuid.UUID
}
