// Package usecase orchestrates case submission, conversation and attachments.
//
// The server side of the protocol only validates encodings and enforces who may see a
// case; all encryption and decryption happens on clients.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
)

// CaseRepository defines case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *casesDomain.Case) error
	Get(ctx context.Context, caseID uuid.UUID) (*casesDomain.Case, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*casesDomain.Case, error)
	UpdateStatus(ctx context.Context, c *casesDomain.Case) error
	Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error)
}

// MessageRepository defines conversation message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *casesDomain.Message) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*casesDomain.Message, error)
}

// AttachmentRepository defines attachment metadata persistence.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *casesDomain.Attachment) error
	Get(ctx context.Context, attachmentID uuid.UUID) (*casesDomain.Attachment, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*casesDomain.Attachment, error)
	// LinkToMessage attaches unlinked attachments of caseID to messageID and returns the
	// number of rows changed.
	LinkToMessage(ctx context.Context, caseID, messageID uuid.UUID, attachmentIDs []uuid.UUID) (int64, error)
}

// BlobStore keeps attachment ciphertexts.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, maxSize int64) (int64, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ChannelReader resolves the channel a case is submitted through.
type ChannelReader interface {
	GetByAccessCode(ctx context.Context, accessCode string) (*channelsDomain.Channel, error)
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error)
}

// CaseUseCase defines case business logic.
type CaseUseCase interface {
	// Submit stores a client-sealed case in the organization behind an active channel's
	// access code. Anonymous.
	Submit(ctx context.Context, input *casesDomain.SubmitCaseInput) (*casesDomain.Case, error)

	// Get returns the case with its conversation if actor may see it.
	Get(ctx context.Context, caseID uuid.UUID, actor casesDomain.Actor) (*casesDomain.CaseDetail, error)

	// List returns the organization's cases, newest first.
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*casesDomain.Case, error)

	// UpdateStatus changes a case's status. Members only.
	UpdateStatus(
		ctx context.Context,
		input *casesDomain.UpdateStatusInput,
		actor casesDomain.Actor,
	) (*casesDomain.Case, error)

	// Stats summarizes the organization's cases and channels.
	Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error)

	// SendMessage appends an encrypted message, linking previously uploaded attachments.
	SendMessage(ctx context.Context, input *casesDomain.SendMessageInput) (*casesDomain.MessageDetail, error)

	// UploadAttachment stores an encrypted file and its metadata.
	UploadAttachment(ctx context.Context, input *casesDomain.UploadAttachmentInput) (*casesDomain.Attachment, error)

	// DownloadAttachment returns an attachment ciphertext with its IV.
	DownloadAttachment(
		ctx context.Context,
		caseID, attachmentID uuid.UUID,
		actor casesDomain.Actor,
	) (*casesDomain.AttachmentContent, error)
}
