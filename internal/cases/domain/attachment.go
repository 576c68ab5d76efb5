package domain

import (
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// Attachment is the metadata of an encrypted file. The ciphertext lives in blob
// storage under StorageKey.
type Attachment struct {
	ID             uuid.UUID
	CaseID         uuid.UUID
	OrganizationID uuid.UUID
	MessageID      *uuid.UUID
	FileName       string
	MimeType       string
	Size           int64
	StorageKey     string
	IV             []byte
	UploadedBy     *uuid.UUID
	CreatedAt      time.Time
}

// StorageKeyFor returns the blob key of an attachment.
func StorageKeyFor(caseID, attachmentID uuid.UUID) string {
	return path.Join("cases", caseID.String(), attachmentID.String())
}

// UploadAttachmentInput carries an encrypted file upload. Size is the ciphertext size
// announced by the client; the stored size is the number of bytes actually read.
type UploadAttachmentInput struct {
	CaseID   uuid.UUID
	Actor    Actor
	FileName string
	MimeType string
	IV       string
	Size     int64
	Body     io.Reader
}

// AttachmentContent is a downloaded attachment ciphertext with its metadata.
type AttachmentContent struct {
	Attachment *Attachment
	Ciphertext []byte
}
