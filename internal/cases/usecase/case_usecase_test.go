package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/cases/storage"
	"github.com/whistlebase/whistlebase/internal/cases/usecase/mocks"
	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	databaseMocks "github.com/whistlebase/whistlebase/internal/database/mocks"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

const testMaxAttachmentSize = 1024

type caseFixture struct {
	tx          *databaseMocks.MockTxManager
	cases       *mocks.MockCaseRepository
	messages    *mocks.MockMessageRepository
	attachments *mocks.MockAttachmentRepository
	channels    *mocks.MockChannelReader
	blobs       *mocks.MockBlobStore
	uc          CaseUseCase
}

func newCaseFixture() *caseFixture {
	f := &caseFixture{
		tx:          &databaseMocks.MockTxManager{},
		cases:       &mocks.MockCaseRepository{},
		messages:    &mocks.MockMessageRepository{},
		attachments: &mocks.MockAttachmentRepository{},
		channels:    &mocks.MockChannelReader{},
		blobs:       &mocks.MockBlobStore{},
	}
	f.uc = NewCaseUseCase(
		f.tx, f.cases, f.messages, f.attachments, f.channels, f.blobs,
		testMaxAttachmentSize, slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func (f *caseFixture) assertExpectations(t *testing.T) {
	f.tx.AssertExpectations(t)
	f.cases.AssertExpectations(t)
	f.messages.AssertExpectations(t)
	f.attachments.AssertExpectations(t)
	f.channels.AssertExpectations(t)
	f.blobs.AssertExpectations(t)
}

func encodedPayload(seed byte) string {
	return cryptoDomain.EncryptedPayload{
		Ciphertext: bytes.Repeat([]byte{seed}, 40),
		Nonce:      bytes.Repeat([]byte{seed + 1}, 24),
	}.String()
}

func testEnvelope() cryptoDomain.EncodedEnvelope {
	return cryptoDomain.EncodedEnvelope{
		Content:              encodedPayload(1),
		SealedKeyForReporter: cryptoDomain.EncodeSodium(bytes.Repeat([]byte{5}, cryptoDomain.SealedKeySize)),
		SealedKeyForOrg:      cryptoDomain.EncodeSodium(bytes.Repeat([]byte{6}, cryptoDomain.SealedKeySize)),
	}
}

var reporterKey = bytes.Repeat([]byte{0x11}, 32)

func testCase(orgID uuid.UUID) *casesDomain.Case {
	return &casesDomain.Case{
		ID:                uuid.Must(uuid.NewV7()),
		OrganizationID:    orgID,
		Category:          "fraud",
		ReporterPublicKey: reporterKey,
		Status:            casesDomain.StatusOpen,
		Justification:     casesDomain.JustificationNone,
	}
}

func reporter() casesDomain.Actor {
	return casesDomain.ReporterActor(cryptoDomain.EncodeSodium(reporterKey))
}

func TestCaseUseCase_Submit(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	channel := &channelsDomain.Channel{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: orgID,
		AccessCode:     "ACME2024",
		IsActive:       true,
	}

	input := func() *casesDomain.SubmitCaseInput {
		return &casesDomain.SubmitCaseInput{
			AccessCode:        "ACME2024",
			Category:          "fraud",
			ReporterPublicKey: cryptoDomain.EncodeSodium(reporterKey),
			Envelope:          testEnvelope(),
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newCaseFixture()
		f.channels.On("GetByAccessCode", ctx, "ACME2024").Return(channel, nil).Once()
		f.cases.On("Create", ctx, mock.AnythingOfType("*domain.Case")).Return(nil).Once()

		c, err := f.uc.Submit(ctx, input())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.Equal(t, orgID, c.OrganizationID)
		assert.Equal(t, channel.ID, c.ChannelID)
		assert.Equal(t, reporterKey, c.ReporterPublicKey)
		assert.Equal(t, casesDomain.StatusOpen, c.Status)
		assert.Equal(t, casesDomain.JustificationNone, c.Justification)
		assert.Equal(t, cryptoDomain.XChaCha20Poly1305, c.Envelope.Content.Algorithm)
		assert.Len(t, c.Envelope.SealedKeyForOrg, cryptoDomain.SealedKeySize)
		assert.Equal(t, testEnvelope(), c.Envelope.Encode())
		f.assertExpectations(t)
	})

	t.Run("Success_ClientGeneratedID", func(t *testing.T) {
		f := newCaseFixture()
		caseID := uuid.Must(uuid.NewV7())
		in := input()
		in.ID = &caseID
		f.channels.On("GetByAccessCode", ctx, "ACME2024").Return(channel, nil).Once()
		f.cases.On("Create", ctx, mock.MatchedBy(func(c *casesDomain.Case) bool { return c.ID == caseID })).
			Return(nil).
			Once()

		c, err := f.uc.Submit(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, caseID, c.ID)
		f.assertExpectations(t)
	})

	t.Run("Error_NilClientID", func(t *testing.T) {
		f := newCaseFixture()
		in := input()
		in.ID = &uuid.Nil

		_, err := f.uc.Submit(ctx, in)
		assert.ErrorIs(t, err, casesDomain.ErrInvalidCaseID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("Error_BadReporterKey", func(t *testing.T) {
		f := newCaseFixture()
		in := input()
		in.ReporterPublicKey = cryptoDomain.EncodeSodium([]byte("short"))

		_, err := f.uc.Submit(ctx, in)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		f.assertExpectations(t)
	})

	t.Run("Error_ContentMissingSeparator", func(t *testing.T) {
		f := newCaseFixture()
		in := input()
		in.Envelope.Content = "no-separator"

		_, err := f.uc.Submit(ctx, in)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEncoding)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("Error_SealedKeyWrongSize", func(t *testing.T) {
		f := newCaseFixture()
		in := input()
		in.Envelope.SealedKeyForOrg = cryptoDomain.EncodeSodium(bytes.Repeat([]byte{6}, 48))

		_, err := f.uc.Submit(ctx, in)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEncoding)
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownAccessCode", func(t *testing.T) {
		f := newCaseFixture()
		f.channels.On("GetByAccessCode", ctx, "ACME2024").Return(nil, channelsDomain.ErrChannelNotFound).Once()

		_, err := f.uc.Submit(ctx, input())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.assertExpectations(t)
	})

	t.Run("Error_MalformedAccessCode", func(t *testing.T) {
		f := newCaseFixture()
		in := input()
		in.AccessCode = "ACME 2024"

		_, err := f.uc.Submit(ctx, in)
		assert.ErrorIs(t, err, channelsDomain.ErrChannelNotFound)
		f.assertExpectations(t)
	})

	t.Run("Error_InactiveChannel", func(t *testing.T) {
		f := newCaseFixture()
		inactive := *channel
		inactive.IsActive = false
		f.channels.On("GetByAccessCode", ctx, "ACME2024").Return(&inactive, nil).Once()

		_, err := f.uc.Submit(ctx, input())
		assert.ErrorIs(t, err, channelsDomain.ErrChannelNotFound)
		f.assertExpectations(t)
	})

	t.Run("Error_PublicKeyReused", func(t *testing.T) {
		f := newCaseFixture()
		f.channels.On("GetByAccessCode", ctx, "ACME2024").Return(channel, nil).Once()
		f.cases.On("Create", ctx, mock.Anything).Return(casesDomain.ErrCaseExists).Once()

		_, err := f.uc.Submit(ctx, input())
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.assertExpectations(t)
	})
}

func TestCaseUseCase_Stats(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("IncludesChannelCounts", func(t *testing.T) {
		f := newCaseFixture()
		f.cases.On("Stats", ctx, orgID).Return(&casesDomain.Stats{TotalCases: 4, OpenCases: 3, ClosedCases: 1}, nil).Once()
		f.channels.On("CountByOrganization", ctx, orgID).Return(&channelsDomain.Counts{Total: 3, Active: 2}, nil).Once()

		stats, err := f.uc.Stats(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, &casesDomain.Stats{
			TotalCases:     4,
			OpenCases:      3,
			ClosedCases:    1,
			TotalChannels:  3,
			ActiveChannels: 2,
		}, stats)
		f.assertExpectations(t)
	})

	t.Run("Error_ChannelCounts", func(t *testing.T) {
		f := newCaseFixture()
		f.cases.On("Stats", ctx, orgID).Return(&casesDomain.Stats{}, nil).Once()
		f.channels.On("CountByOrganization", ctx, orgID).Return(nil, assert.AnError).Once()

		_, err := f.uc.Stats(ctx, orgID)
		assert.ErrorIs(t, err, assert.AnError)
		f.assertExpectations(t)
	})
}

func TestCaseUseCase_Get(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success_GroupsAttachments", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		m1 := &casesDomain.Message{ID: uuid.Must(uuid.NewV7()), CaseID: c.ID}
		m2 := &casesDomain.Message{ID: uuid.Must(uuid.NewV7()), CaseID: c.ID}
		caseLevel := &casesDomain.Attachment{ID: uuid.Must(uuid.NewV7()), CaseID: c.ID}
		linked := &casesDomain.Attachment{ID: uuid.Must(uuid.NewV7()), CaseID: c.ID, MessageID: &m2.ID}

		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.messages.On("ListByCase", ctx, c.ID).Return([]*casesDomain.Message{m1, m2}, nil).Once()
		f.attachments.On("ListByCase", ctx, c.ID).Return([]*casesDomain.Attachment{caseLevel, linked}, nil).Once()

		detail, err := f.uc.Get(ctx, c.ID, reporter())
		require.NoError(t, err)
		assert.Equal(t, c, detail.Case)
		require.Len(t, detail.Messages, 2)
		assert.Empty(t, detail.Messages[0].Attachments)
		assert.NotNil(t, detail.Messages[0].Attachments)
		assert.Equal(t, []*casesDomain.Attachment{linked}, detail.Messages[1].Attachments)
		assert.Equal(t, []*casesDomain.Attachment{caseLevel}, detail.Attachments)
		f.assertExpectations(t)
	})

	t.Run("Success_Member", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.messages.On("ListByCase", ctx, c.ID).Return([]*casesDomain.Message{}, nil).Once()
		f.attachments.On("ListByCase", ctx, c.ID).Return([]*casesDomain.Attachment{}, nil).Once()

		_, err := f.uc.Get(ctx, c.ID, casesDomain.MemberActor(uuid.Must(uuid.NewV7()), orgID))
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("Error_WrongReporterKey", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		other := casesDomain.ReporterActor(cryptoDomain.EncodeSodium(bytes.Repeat([]byte{0x22}, 32)))
		_, err := f.uc.Get(ctx, c.ID, other)
		assert.ErrorIs(t, err, casesDomain.ErrCaseNotFound)
		f.assertExpectations(t)
	})

	t.Run("Error_MalformedReporterKey", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		_, err := f.uc.Get(ctx, c.ID, casesDomain.ReporterActor("!!"))
		assert.ErrorIs(t, err, casesDomain.ErrCaseNotFound)
		f.assertExpectations(t)
	})

	t.Run("Error_OtherOrganization", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		actor := casesDomain.MemberActor(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
		_, err := f.uc.Get(ctx, c.ID, actor)
		assert.ErrorIs(t, err, casesDomain.ErrCaseNotFound)
		f.assertExpectations(t)
	})
}

func TestCaseUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	member := casesDomain.MemberActor(uuid.Must(uuid.NewV7()), orgID)

	t.Run("Success", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		justified := casesDomain.JustificationJustified
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.cases.On("UpdateStatus", ctx, c).Return(nil).Once()

		updated, err := f.uc.UpdateStatus(ctx, &casesDomain.UpdateStatusInput{
			CaseID:        c.ID,
			Status:        casesDomain.StatusClosed,
			Justification: &justified,
		}, member)
		require.NoError(t, err)
		assert.Equal(t, casesDomain.StatusClosed, updated.Status)
		assert.Equal(t, casesDomain.JustificationJustified, updated.Justification)
		assert.False(t, updated.UpdatedAt.IsZero())
		f.assertExpectations(t)
	})

	t.Run("Success_KeepsJustification", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		c.Justification = casesDomain.JustificationUnjustified
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.cases.On("UpdateStatus", ctx, c).Return(nil).Once()

		updated, err := f.uc.UpdateStatus(ctx, &casesDomain.UpdateStatusInput{
			CaseID: c.ID,
			Status: casesDomain.StatusOpen,
		}, member)
		require.NoError(t, err)
		assert.Equal(t, casesDomain.JustificationUnjustified, updated.Justification)
		f.assertExpectations(t)
	})

	t.Run("Error_Reporter", func(t *testing.T) {
		f := newCaseFixture()

		_, err := f.uc.UpdateStatus(ctx, &casesDomain.UpdateStatusInput{
			CaseID: uuid.Must(uuid.NewV7()),
			Status: casesDomain.StatusClosed,
		}, reporter())
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.assertExpectations(t)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		f := newCaseFixture()

		_, err := f.uc.UpdateStatus(ctx, &casesDomain.UpdateStatusInput{
			CaseID: uuid.Must(uuid.NewV7()),
			Status: "ARCHIVED",
		}, member)
		assert.ErrorIs(t, err, casesDomain.ErrInvalidStatus)
		f.assertExpectations(t)
	})
}

func TestCaseUseCase_SendMessage(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())

	t.Run("Success_Reporter", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.tx.On("WithTx", ctx).Return(nil).Once()
		f.messages.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil).Once()

		detail, err := f.uc.SendMessage(ctx, &casesDomain.SendMessageInput{
			CaseID:  c.ID,
			Actor:   reporter(),
			Message: encodedPayload(3),
		})
		require.NoError(t, err)
		assert.Equal(t, casesDomain.SenderAnonymous, detail.Message.SenderType)
		assert.Nil(t, detail.Message.SenderID)
		assert.Equal(t, encodedPayload(3), detail.Message.Payload.String())
		assert.Empty(t, detail.Attachments)
		f.assertExpectations(t)
	})

	t.Run("Success_AdminWithAttachments", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		memberID := uuid.Must(uuid.NewV7())
		attID := uuid.Must(uuid.NewV7())
		att := &casesDomain.Attachment{ID: attID, CaseID: c.ID}

		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.tx.On("WithTx", ctx).Return(nil).Once()
		f.messages.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil).Once()
		f.attachments.On("LinkToMessage", ctx, c.ID, mock.AnythingOfType("uuid.UUID"), []uuid.UUID{attID}).
			Return(int64(1), nil).
			Once()
		f.attachments.On("Get", ctx, attID).Return(att, nil).Once()

		detail, err := f.uc.SendMessage(ctx, &casesDomain.SendMessageInput{
			CaseID:        c.ID,
			Actor:         casesDomain.MemberActor(memberID, orgID),
			Message:       encodedPayload(3),
			AttachmentIDs: []uuid.UUID{attID, attID},
		})
		require.NoError(t, err)
		assert.Equal(t, casesDomain.SenderAdmin, detail.Message.SenderType)
		require.NotNil(t, detail.Message.SenderID)
		assert.Equal(t, memberID, *detail.Message.SenderID)
		assert.Equal(t, []*casesDomain.Attachment{att}, detail.Attachments)
		f.assertExpectations(t)
	})

	t.Run("Error_AttachmentNotLinkable", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		attID := uuid.Must(uuid.NewV7())

		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.tx.On("WithTx", ctx).Return(nil).Once()
		f.messages.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.attachments.On("LinkToMessage", ctx, c.ID, mock.Anything, []uuid.UUID{attID}).Return(int64(0), nil).Once()

		_, err := f.uc.SendMessage(ctx, &casesDomain.SendMessageInput{
			CaseID:        c.ID,
			Actor:         reporter(),
			Message:       encodedPayload(3),
			AttachmentIDs: []uuid.UUID{attID},
		})
		assert.ErrorIs(t, err, casesDomain.ErrAttachmentNotLinkable)
		f.assertExpectations(t)
	})

	t.Run("Error_MalformedMessage", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		_, err := f.uc.SendMessage(ctx, &casesDomain.SendMessageInput{
			CaseID:  c.ID,
			Actor:   reporter(),
			Message: "plaintext is rejected",
		})
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEncoding)
		f.assertExpectations(t)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		_, err := f.uc.SendMessage(ctx, &casesDomain.SendMessageInput{
			CaseID:  c.ID,
			Actor:   casesDomain.ReporterActor(cryptoDomain.EncodeSodium(bytes.Repeat([]byte{0x33}, 32))),
			Message: encodedPayload(3),
		})
		assert.ErrorIs(t, err, casesDomain.ErrCaseNotFound)
		f.assertExpectations(t)
	})
}

func TestCaseUseCase_UploadAttachment(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	iv := cryptoDomain.EncodeWeb(bytes.Repeat([]byte{7}, cryptoDomain.AttachmentIVSize))

	t.Run("Success", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		body := bytes.NewReader(make([]byte, 64))

		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.blobs.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return len(key) > 0 && key[:6] == "cases/"
		}), body, int64(testMaxAttachmentSize)).Return(int64(64), nil).Once()
		f.attachments.On("Create", ctx, mock.AnythingOfType("*domain.Attachment")).Return(nil).Once()

		att, err := f.uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
			CaseID:   c.ID,
			Actor:    reporter(),
			FileName: "evidence.pdf",
			MimeType: "application/pdf",
			IV:       iv,
			Size:     64,
			Body:     body,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(64), att.Size)
		assert.Equal(t, casesDomain.StorageKeyFor(c.ID, att.ID), att.StorageKey)
		assert.Equal(t, orgID, att.OrganizationID)
		assert.Len(t, att.IV, cryptoDomain.AttachmentIVSize)
		assert.Nil(t, att.UploadedBy)
		assert.Nil(t, att.MessageID)
		f.assertExpectations(t)
	})

	t.Run("Error_BadIV", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		_, err := f.uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
			CaseID: c.ID,
			Actor:  reporter(),
			IV:     cryptoDomain.EncodeWeb(make([]byte, 24)),
			Body:   bytes.NewReader(nil),
		})
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEncoding)
		f.assertExpectations(t)
	})

	t.Run("Error_DeclaredTooLarge", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()

		_, err := f.uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
			CaseID: c.ID,
			Actor:  reporter(),
			IV:     iv,
			Size:   testMaxAttachmentSize + 1,
			Body:   bytes.NewReader(nil),
		})
		assert.ErrorIs(t, err, casesDomain.ErrAttachmentTooLarge)
		f.assertExpectations(t)
	})

	t.Run("Error_MetadataFailureDiscardsBlob", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)
		dbErr := errors.New("insert failed")

		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(testMaxAttachmentSize)).Return(int64(64), nil).Once()
		f.attachments.On("Create", ctx, mock.Anything).Return(dbErr).Once()
		f.blobs.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
			CaseID: c.ID,
			Actor:  reporter(),
			IV:     iv,
			Body:   bytes.NewReader(make([]byte, 64)),
		})
		assert.ErrorIs(t, err, dbErr)
		f.assertExpectations(t)
	})

	t.Run("Error_TooShort", func(t *testing.T) {
		f := newCaseFixture()
		c := testCase(orgID)

		f.cases.On("Get", ctx, c.ID).Return(c, nil).Once()
		f.blobs.On("Put", ctx, mock.Anything, mock.Anything, int64(testMaxAttachmentSize)).Return(int64(3), nil).Once()
		f.blobs.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
			CaseID: c.ID,
			Actor:  reporter(),
			IV:     iv,
			Body:   bytes.NewReader([]byte("abc")),
		})
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEncoding)
		f.assertExpectations(t)
	})
}

func TestCaseUseCase_AttachmentRoundTrip(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.Must(uuid.NewV7())
	c := testCase(orgID)

	cases := &mocks.MockCaseRepository{}
	attachments := &mocks.MockAttachmentRepository{}
	blobs := storage.NewBlobStore(memblob.OpenBucket(nil))
	defer func() { _ = blobs.Close() }()

	uc := NewCaseUseCase(
		&databaseMocks.MockTxManager{}, cases, &mocks.MockMessageRepository{}, attachments,
		&mocks.MockChannelReader{}, blobs, testMaxAttachmentSize,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	cases.On("Get", ctx, c.ID).Return(c, nil)
	var stored *casesDomain.Attachment
	attachments.On("Create", ctx, mock.AnythingOfType("*domain.Attachment")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*casesDomain.Attachment) }).
		Return(nil).
		Once()

	ciphertext := bytes.Repeat([]byte{0xC3}, 100)
	att, err := uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
		CaseID:   c.ID,
		Actor:    reporter(),
		FileName: "photo.jpg",
		MimeType: "image/jpeg",
		IV:       cryptoDomain.EncodeWeb(bytes.Repeat([]byte{1}, 12)),
		Body:     bytes.NewReader(ciphertext),
	})
	require.NoError(t, err)
	require.Equal(t, att, stored)

	attachments.On("Get", ctx, att.ID).Return(stored, nil).Once()
	content, err := uc.DownloadAttachment(ctx, c.ID, att.ID, reporter())
	require.NoError(t, err)
	assert.Equal(t, ciphertext, content.Ciphertext)
	assert.Equal(t, stored.IV, content.Attachment.IV)

	t.Run("Error_TooLarge", func(t *testing.T) {
		_, err := uc.UploadAttachment(ctx, &casesDomain.UploadAttachmentInput{
			CaseID: c.ID,
			Actor:  reporter(),
			IV:     cryptoDomain.EncodeWeb(bytes.Repeat([]byte{1}, 12)),
			Body:   bytes.NewReader(make([]byte, testMaxAttachmentSize+1)),
		})
		assert.ErrorIs(t, err, casesDomain.ErrAttachmentTooLarge)
	})

	t.Run("Error_AttachmentOfOtherCase", func(t *testing.T) {
		other := &casesDomain.Attachment{ID: uuid.Must(uuid.NewV7()), CaseID: uuid.Must(uuid.NewV7())}
		attachments.On("Get", ctx, other.ID).Return(other, nil).Once()

		_, err := uc.DownloadAttachment(ctx, c.ID, other.ID, reporter())
		assert.ErrorIs(t, err, casesDomain.ErrAttachmentNotFound)
	})
}
