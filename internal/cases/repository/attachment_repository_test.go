package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/testutil"
)

var attachmentColumnNames = []string{
	"id", "case_id", "organization_id", "message_id", "file_name", "mime_type", "size", "storage_key", "iv",
	"uploaded_by", "created_at",
}

func newTestAttachment() *casesDomain.Attachment {
	a := &casesDomain.Attachment{
		ID:             uuid.Must(uuid.NewV7()),
		CaseID:         uuid.Must(uuid.NewV7()),
		OrganizationID: uuid.Must(uuid.NewV7()),
		FileName:       "ledger.xlsx",
		MimeType:       "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:           2048,
		IV:             bytes.Repeat([]byte{0x0C}, 12),
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	a.StorageKey = casesDomain.StorageKeyFor(a.CaseID, a.ID)
	return a
}

func TestPostgreSQLAttachmentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)
		a := newTestAttachment()

		mock.ExpectExec("INSERT INTO attachments").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil, a.FileName, a.MimeType,
				a.Size, a.StorageKey, a.IV, nil, a.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, a))
	})

	t.Run("Get_Linked", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)
		a := newTestAttachment()
		messageID, uploader := uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())
		a.MessageID, a.UploadedBy = &messageID, &uploader

		mock.ExpectQuery("SELECT (.+) FROM attachments WHERE id").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(attachmentColumnNames).AddRow(
				a.ID.String(), a.CaseID.String(), a.OrganizationID.String(), messageID.String(), a.FileName,
				a.MimeType, a.Size, a.StorageKey, a.IV, uploader.String(), a.CreatedAt,
			))

		got, err := repo.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM attachments").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, casesDomain.ErrAttachmentNotFound)
	})

	t.Run("ListByCase", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)
		a := newTestAttachment()

		mock.ExpectQuery("SELECT (.+) FROM attachments WHERE case_id").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(attachmentColumnNames).AddRow(
				a.ID.String(), a.CaseID.String(), a.OrganizationID.String(), nil, a.FileName,
				a.MimeType, a.Size, a.StorageKey, a.IV, nil, a.CreatedAt,
			))

		got, err := repo.ListByCase(ctx, a.CaseID)
		require.NoError(t, err)
		assert.Equal(t, []*casesDomain.Attachment{a}, got)
	})

	t.Run("LinkToMessage", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)
		ids := []uuid.UUID{uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())}

		mock.ExpectExec(`UPDATE attachments SET message_id = \$1\s+WHERE case_id = \$2 AND message_id IS NULL`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repo.LinkToMessage(ctx, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), ids)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("LinkToMessage_ErrorNamesMessage", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)
		messageID := uuid.Must(uuid.NewV7())
		dbErr := errors.New("connection reset")

		mock.ExpectExec("UPDATE attachments SET message_id").WillReturnError(dbErr)

		_, err := repo.LinkToMessage(ctx, uuid.Must(uuid.NewV7()), messageID, []uuid.UUID{uuid.Must(uuid.NewV7())})
		require.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "failed to link 1 attachments to message "+messageID.String())
	})

	t.Run("LinkToMessage_NoIDs", func(t *testing.T) {
		db, _ := testutil.NewMockDB(t)
		repo := NewPostgreSQLAttachmentRepository(db)

		n, err := repo.LinkToMessage(ctx, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestMySQLAttachmentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_WithUploader", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLAttachmentRepository(db)
		a := newTestAttachment()
		uploader := uuid.Must(uuid.NewV7())
		a.UploadedBy = &uploader

		mock.ExpectExec("INSERT INTO attachments").
			WithArgs(testutil.MySQLUUID(t, a.ID), testutil.MySQLUUID(t, a.CaseID),
				testutil.MySQLUUID(t, a.OrganizationID), nil, a.FileName, a.MimeType, a.Size, a.StorageKey,
				a.IV, testutil.MySQLUUID(t, uploader), a.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, a))
	})

	t.Run("Get", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLAttachmentRepository(db)
		a := newTestAttachment()
		messageID := uuid.Must(uuid.NewV7())
		a.MessageID = &messageID

		mock.ExpectQuery("SELECT (.+) FROM attachments WHERE id = ?").
			WithArgs(testutil.MySQLUUID(t, a.ID)).
			WillReturnRows(sqlmock.NewRows(attachmentColumnNames).AddRow(
				testutil.MySQLUUID(t, a.ID), testutil.MySQLUUID(t, a.CaseID),
				testutil.MySQLUUID(t, a.OrganizationID), testutil.MySQLUUID(t, messageID), a.FileName,
				a.MimeType, a.Size, a.StorageKey, a.IV, nil, a.CreatedAt,
			))

		got, err := repo.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("ListByCase_Empty", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLAttachmentRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM attachments WHERE case_id").
			WillReturnRows(sqlmock.NewRows(attachmentColumnNames))

		got, err := repo.ListByCase(ctx, uuid.Must(uuid.NewV7()))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("LinkToMessage_ExpandsPlaceholders", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLAttachmentRepository(db)
		caseID, messageID := uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())
		a1, a2 := uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())

		mock.ExpectExec(`UPDATE attachments SET message_id = \?\s+WHERE case_id = \? AND message_id IS NULL AND id IN \(\?, \?\)`).
			WithArgs(testutil.MySQLUUID(t, messageID), testutil.MySQLUUID(t, caseID),
				testutil.MySQLUUID(t, a1), testutil.MySQLUUID(t, a2)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.LinkToMessage(ctx, caseID, messageID, []uuid.UUID{a1, a2})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
	t.Run("LinkToMessage_Error", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLAttachmentRepository(db)
		messageID := uuid.Must(uuid.NewV7())
		ids := []uuid.UUID{uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())}
		dbErr := errors.New("deadlock found")

		mock.ExpectExec("UPDATE attachments SET message_id").WillReturnError(dbErr)

		_, err := repo.LinkToMessage(ctx, uuid.Must(uuid.NewV7()), messageID, ids)
		require.ErrorIs(t, err, dbErr)
		assert.Equal(t, "failed to link 2 attachments to message "+messageID.String()+": deadlock found", err.Error())
	})
}
