// Package dto provides data transfer objects for case HTTP requests and responses.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// MaxAttachmentsPerMessage bounds the attachment IDs accepted with one message.
const MaxAttachmentsPerMessage = 20

// SubmitCaseRequest carries a sealed envelope built on the reporter's device. The
// server never sees the content key or either private key. ID is optional; reporters
// that embed the case ID in their access token generate it before submitting.
type SubmitCaseRequest struct {
	ID                   string `json:"id,omitempty"`
	Category             string `json:"category"`
	ReporterPublicKey    string `json:"reporter_public_key"`
	Content              string `json:"content"`
	SealedKeyForReporter string `json:"sealed_key_for_reporter"`
	SealedKeyForOrg      string `json:"sealed_key_for_org"`
}

// Validate checks if the submit request is valid.
func (r *SubmitCaseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, customValidation.UUID),
		validation.Field(&r.Category,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.ReporterPublicKey,
			validation.Required,
			customValidation.SodiumBytes(cryptoDomain.PublicKeySize),
		),
		validation.Field(&r.Content,
			validation.Required,
			customValidation.EncryptedPayload,
		),
		validation.Field(&r.SealedKeyForReporter,
			validation.Required,
			customValidation.SodiumBytes(cryptoDomain.SealedKeySize),
		),
		validation.Field(&r.SealedKeyForOrg,
			validation.Required,
			customValidation.SodiumBytes(cryptoDomain.SealedKeySize),
		),
	)
}

// ToInput converts the request into a use case input for the channel behind
// accessCode.
func (r *SubmitCaseRequest) ToInput(accessCode string) *casesDomain.SubmitCaseInput {
	input := &casesDomain.SubmitCaseInput{
		AccessCode:        accessCode,
		Category:          r.Category,
		ReporterPublicKey: r.ReporterPublicKey,
		Envelope: cryptoDomain.EncodedEnvelope{
			Content:              r.Content,
			SealedKeyForReporter: r.SealedKeyForReporter,
			SealedKeyForOrg:      r.SealedKeyForOrg,
		},
	}
	if id, err := uuid.Parse(r.ID); err == nil {
		input.ID = &id
	}
	return input
}

// UpdateStatusRequest changes a case's status. Justification is optional and left
// untouched when omitted.
type UpdateStatusRequest struct {
	Status        string  `json:"status"`
	Justification *string `json:"justification,omitempty"`
}

// Validate checks if the status update is valid.
func (r *UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(string(casesDomain.StatusOpen), string(casesDomain.StatusClosed)),
		),
		validation.Field(&r.Justification,
			validation.NilOrNotEmpty,
			validation.In(
				string(casesDomain.JustificationNone),
				string(casesDomain.JustificationJustified),
				string(casesDomain.JustificationUnjustified),
			),
		),
	)
}

// ToInput converts the request into a use case input.
func (r *UpdateStatusRequest) ToInput(caseID uuid.UUID) *casesDomain.UpdateStatusInput {
	input := &casesDomain.UpdateStatusInput{
		CaseID: caseID,
		Status: casesDomain.Status(r.Status),
	}
	if r.Justification != nil {
		j := casesDomain.Justification(*r.Justification)
		input.Justification = &j
	}
	return input
}

// SendMessageRequest carries an encrypted message and the IDs of attachments uploaded
// for it beforehand.
type SendMessageRequest struct {
	Message       string   `json:"message"`
	AttachmentIDs []string `json:"attachment_ids,omitempty"`
}

// Validate checks if the message request is valid.
func (r *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message,
			validation.Required,
			customValidation.EncryptedPayload,
		),
		validation.Field(&r.AttachmentIDs,
			validation.Length(0, MaxAttachmentsPerMessage),
			validation.Each(validation.Required, customValidation.UUID),
		),
	)
}

// ToInput converts the request into a use case input. Call Validate first: IDs that
// do not parse are skipped.
func (r *SendMessageRequest) ToInput(caseID uuid.UUID, actor casesDomain.Actor) *casesDomain.SendMessageInput {
	ids := make([]uuid.UUID, 0, len(r.AttachmentIDs))
	for _, s := range r.AttachmentIDs {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return &casesDomain.SendMessageInput{
		CaseID:        caseID,
		Actor:         actor,
		Message:       r.Message,
		AttachmentIDs: ids,
	}
}

// UploadAttachmentRequest holds the form fields of a multipart attachment upload. The
// file part itself is streamed separately.
type UploadAttachmentRequest struct {
	IV       string `form:"iv"`
	FileName string `form:"file_name"`
	MimeType string `form:"mime_type"`
}

// Validate checks if the upload fields are valid.
func (r *UploadAttachmentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IV,
			validation.Required,
			customValidation.AttachmentIV,
		),
		validation.Field(&r.FileName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.MimeType,
			validation.Length(0, 255),
		),
	)
}
