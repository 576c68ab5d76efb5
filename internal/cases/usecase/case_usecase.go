package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

// minAttachmentSize is the AES-GCM tag length; anything shorter cannot be a ciphertext.
const minAttachmentSize = 16

type caseUseCase struct {
	txManager         database.TxManager
	caseRepo          CaseRepository
	messageRepo       MessageRepository
	attachmentRepo    AttachmentRepository
	channelReader     ChannelReader
	blobStore         BlobStore
	maxAttachmentSize int64
	logger            *slog.Logger
}

// authorize loads a case and checks that actor may see it. Members see their own
// organization's cases; reporters see the case bound to their public key. Every
// mismatch is reported as ErrCaseNotFound.
func (u *caseUseCase) authorize(
	ctx context.Context,
	caseID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.Case, error) {
	c, err := u.caseRepo.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if actor.IsMember() {
		if c.OrganizationID != actor.OrganizationID {
			return nil, casesDomain.ErrCaseNotFound
		}
		return c, nil
	}

	publicKey, err := cryptoDomain.DecodeKey(actor.ReporterPublicKey, cryptoDomain.PublicKeySize)
	if err != nil || !c.OwnedBy(publicKey) {
		return nil, casesDomain.ErrCaseNotFound
	}
	return c, nil
}

// Submit validates a sealed envelope and stores it as a new open case.
//
// The envelope is opaque to the server: only the encodings, the nonce size and the
// sealed key sizes are checked. The reporter public key must be unused. The access code
// must belong to an active channel, which fixes the case's organization.
func (u *caseUseCase) Submit(
	ctx context.Context,
	input *casesDomain.SubmitCaseInput,
) (*casesDomain.Case, error) {
	reporterPublicKey, err := cryptoDomain.DecodeKey(input.ReporterPublicKey, cryptoDomain.PublicKeySize)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid reporter public key")
	}

	envelope, err := input.Envelope.Decode()
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid envelope")
	}

	caseID := uuid.Must(uuid.NewV7())
	if input.ID != nil {
		if *input.ID == uuid.Nil {
			return nil, casesDomain.ErrInvalidCaseID
		}
		caseID = *input.ID
	}

	if !channelsDomain.ValidAccessCode(input.AccessCode) {
		return nil, channelsDomain.ErrChannelNotFound
	}
	channel, err := u.channelReader.GetByAccessCode(ctx, input.AccessCode)
	if err != nil {
		return nil, err
	}
	if !channel.IsActive {
		return nil, channelsDomain.ErrChannelNotFound
	}

	now := time.Now().UTC()
	c := &casesDomain.Case{
		ID:                caseID,
		OrganizationID:    channel.OrganizationID,
		ChannelID:         channel.ID,
		Category:          input.Category,
		ReporterPublicKey: reporterPublicKey,
		Envelope:          *envelope,
		Status:            casesDomain.StatusOpen,
		Justification:     casesDomain.JustificationNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.caseRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a case with messages in chronological order. Attachments linked to a
// message are grouped under it; the rest are returned as case-level attachments.
func (u *caseUseCase) Get(
	ctx context.Context,
	caseID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.CaseDetail, error) {
	c, err := u.authorize(ctx, caseID, actor)
	if err != nil {
		return nil, err
	}

	messages, err := u.messageRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	attachments, err := u.attachmentRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	byMessage := make(map[uuid.UUID][]*casesDomain.Attachment)
	detail := &casesDomain.CaseDetail{
		Case:        c,
		Messages:    make([]*casesDomain.MessageDetail, 0, len(messages)),
		Attachments: make([]*casesDomain.Attachment, 0),
	}
	for _, a := range attachments {
		if a.MessageID == nil {
			detail.Attachments = append(detail.Attachments, a)
			continue
		}
		byMessage[*a.MessageID] = append(byMessage[*a.MessageID], a)
	}
	for _, m := range messages {
		linked := byMessage[m.ID]
		if linked == nil {
			linked = make([]*casesDomain.Attachment, 0)
		}
		detail.Messages = append(detail.Messages, &casesDomain.MessageDetail{Message: m, Attachments: linked})
	}
	return detail, nil
}

func (u *caseUseCase) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]*casesDomain.Case, error) {
	return u.caseRepo.ListByOrganization(ctx, orgID, offset, limit)
}

// UpdateStatus sets the status and, when given, the justification of a case.
// Reporters receive ErrForbidden.
func (u *caseUseCase) UpdateStatus(
	ctx context.Context,
	input *casesDomain.UpdateStatusInput,
	actor casesDomain.Actor,
) (*casesDomain.Case, error) {
	if !actor.IsMember() {
		return nil, apperrors.ErrForbidden
	}
	if !input.Status.Valid() {
		return nil, casesDomain.ErrInvalidStatus
	}
	if input.Justification != nil && !input.Justification.Valid() {
		return nil, casesDomain.ErrInvalidStatus
	}

	c, err := u.authorize(ctx, input.CaseID, actor)
	if err != nil {
		return nil, err
	}

	c.Status = input.Status
	if input.Justification != nil {
		c.Justification = *input.Justification
	}
	c.UpdatedAt = time.Now().UTC()

	if err := u.caseRepo.UpdateStatus(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *caseUseCase) Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error) {
	stats, err := u.caseRepo.Stats(ctx, orgID)
	if err != nil {
		return nil, err
	}
	counts, err := u.channelReader.CountByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	stats.TotalChannels = counts.Total
	stats.ActiveChannels = counts.Active
	return stats, nil
}

// SendMessage stores an encrypted message from a reporter or a member. Attachment IDs
// must name unlinked attachments previously uploaded to the same case; the message and
// the links are written in one transaction.
func (u *caseUseCase) SendMessage(
	ctx context.Context,
	input *casesDomain.SendMessageInput,
) (*casesDomain.MessageDetail, error) {
	c, err := u.authorize(ctx, input.CaseID, input.Actor)
	if err != nil {
		return nil, err
	}

	payload, err := cryptoDomain.ParseEncryptedPayload(input.Message)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid message")
	}

	attachmentIDs := uniqueIDs(input.AttachmentIDs)
	message := &casesDomain.Message{
		ID:         uuid.Must(uuid.NewV7()),
		CaseID:     c.ID,
		SenderType: input.Actor.SenderType(),
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
	if input.Actor.IsMember() {
		senderID := input.Actor.MemberID
		message.SenderID = &senderID
	}

	detail := &casesDomain.MessageDetail{
		Message:     message,
		Attachments: make([]*casesDomain.Attachment, 0, len(attachmentIDs)),
	}
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.messageRepo.Create(ctx, message); err != nil {
			return err
		}
		if len(attachmentIDs) == 0 {
			return nil
		}

		linked, err := u.attachmentRepo.LinkToMessage(ctx, c.ID, message.ID, attachmentIDs)
		if err != nil {
			return err
		}
		if linked != int64(len(attachmentIDs)) {
			return casesDomain.ErrAttachmentNotLinkable
		}

		for _, id := range attachmentIDs {
			a, err := u.attachmentRepo.Get(ctx, id)
			if err != nil {
				return err
			}
			detail.Attachments = append(detail.Attachments, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// UploadAttachment streams an encrypted file to blob storage and records its metadata.
// The IV must be a standard base64 AES-GCM IV. If the metadata cannot be stored the
// blob is removed again.
func (u *caseUseCase) UploadAttachment(
	ctx context.Context,
	input *casesDomain.UploadAttachmentInput,
) (*casesDomain.Attachment, error) {
	c, err := u.authorize(ctx, input.CaseID, input.Actor)
	if err != nil {
		return nil, err
	}

	iv, err := cryptoDomain.DecodeAttachmentIV(input.IV)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid attachment iv")
	}
	if u.maxAttachmentSize > 0 && input.Size > u.maxAttachmentSize {
		return nil, casesDomain.ErrAttachmentTooLarge
	}

	attachment := &casesDomain.Attachment{
		ID:             uuid.Must(uuid.NewV7()),
		CaseID:         c.ID,
		OrganizationID: c.OrganizationID,
		FileName:       input.FileName,
		MimeType:       input.MimeType,
		IV:             iv,
		CreatedAt:      time.Now().UTC(),
	}
	attachment.StorageKey = casesDomain.StorageKeyFor(c.ID, attachment.ID)
	if input.Actor.IsMember() {
		uploadedBy := input.Actor.MemberID
		attachment.UploadedBy = &uploadedBy
	}

	size, err := u.blobStore.Put(ctx, attachment.StorageKey, input.Body, u.maxAttachmentSize)
	if err != nil {
		return nil, err
	}
	if size < minAttachmentSize {
		u.discardBlob(ctx, attachment.StorageKey)
		return nil, apperrors.Wrap(cryptoDomain.ErrMalformedEncoding, "attachment is too short to be a ciphertext")
	}
	attachment.Size = size

	if err := u.attachmentRepo.Create(ctx, attachment); err != nil {
		u.discardBlob(ctx, attachment.StorageKey)
		return nil, err
	}
	return attachment, nil
}

func (u *caseUseCase) discardBlob(ctx context.Context, key string) {
	if err := u.blobStore.Delete(context.WithoutCancel(ctx), key); err != nil {
		u.logger.Error("failed to discard attachment blob",
			slog.String("storage_key", key),
			slog.Any("error", err))
	}
}

// DownloadAttachment returns the ciphertext of an attachment of a visible case.
func (u *caseUseCase) DownloadAttachment(
	ctx context.Context,
	caseID, attachmentID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.AttachmentContent, error) {
	if _, err := u.authorize(ctx, caseID, actor); err != nil {
		return nil, err
	}

	attachment, err := u.attachmentRepo.Get(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if attachment.CaseID != caseID {
		return nil, casesDomain.ErrAttachmentNotFound
	}

	ciphertext, err := u.blobStore.Get(ctx, attachment.StorageKey)
	if err != nil {
		if errors.Is(err, casesDomain.ErrAttachmentNotFound) {
			u.logger.Warn("attachment blob missing",
				slog.String("attachment_id", attachment.ID.String()))
		}
		return nil, err
	}
	return &casesDomain.AttachmentContent{Attachment: attachment, Ciphertext: ciphertext}, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// NewCaseUseCase creates a CaseUseCase. A maxAttachmentSize of zero disables the
// upload size limit.
func NewCaseUseCase(
	txManager database.TxManager,
	caseRepo CaseRepository,
	messageRepo MessageRepository,
	attachmentRepo AttachmentRepository,
	channelReader ChannelReader,
	blobStore BlobStore,
	maxAttachmentSize int64,
	logger *slog.Logger,
) CaseUseCase {
	return &caseUseCase{
		txManager:         txManager,
		caseRepo:          caseRepo,
		messageRepo:       messageRepo,
		attachmentRepo:    attachmentRepo,
		channelReader:     channelReader,
		blobStore:         blobStore,
		maxAttachmentSize: maxAttachmentSize,
		logger:            logger,
	}
}
