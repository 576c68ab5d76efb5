package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

// MySQLAttachmentRepository implements Attachment persistence for MySQL.
type MySQLAttachmentRepository struct {
	db *sql.DB
}

// Create inserts attachment metadata. The ciphertext itself lives in blob storage.
func (m *MySQLAttachmentRepository) Create(ctx context.Context, a *casesDomain.Attachment) error {
	querier := database.GetTx(ctx, m.db)

	id, err := a.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal attachment id")
	}
	caseID, err := a.CaseID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal case id")
	}
	orgID, err := a.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}
	messageID, err := binaryUUID(a.MessageID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message id")
	}
	uploadedBy, err := binaryUUID(a.UploadedBy)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal uploader id")
	}

	query := `INSERT INTO attachments (` + attachmentColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		caseID,
		orgID,
		messageID,
		a.FileName,
		a.MimeType,
		a.Size,
		a.StorageKey,
		a.IV,
		uploadedBy,
		a.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create attachment")
	}
	return nil
}

// Get retrieves attachment metadata by ID.
func (m *MySQLAttachmentRepository) Get(ctx context.Context, attachmentID uuid.UUID) (*casesDomain.Attachment, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := attachmentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal attachment id")
	}

	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = ?`

	a, err := scanMySQLAttachment(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, casesDomain.ErrAttachmentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get attachment")
	}
	return a, nil
}

// ListByCase returns all attachments of a case in upload order.
func (m *MySQLAttachmentRepository) ListByCase(
	ctx context.Context,
	caseID uuid.UUID,
) ([]*casesDomain.Attachment, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := caseID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal case id")
	}

	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE case_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list attachments")
	}
	defer func() {
		_ = rows.Close()
	}()

	attachments := make([]*casesDomain.Attachment, 0)
	for rows.Next() {
		a, err := scanMySQLAttachment(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan attachment")
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate attachments")
	}
	return attachments, nil
}

// LinkToMessage attaches unlinked attachments of caseID to messageID and returns how
// many rows were linked. Attachments of other cases or already linked ones are skipped.
func (m *MySQLAttachmentRepository) LinkToMessage(
	ctx context.Context,
	caseID, messageID uuid.UUID,
	attachmentIDs []uuid.UUID,
) (int64, error) {
	if len(attachmentIDs) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, m.db)

	msgID, err := messageID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal message id")
	}
	cID, err := caseID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal case id")
	}

	args := make([]any, 0, len(attachmentIDs)+2)
	args = append(args, msgID, cID)
	for _, id := range attachmentIDs {
		b, err := id.MarshalBinary()
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to marshal attachment id")
		}
		args = append(args, b)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(attachmentIDs)), ", ")
	query := `UPDATE attachments SET message_id = ?
			  WHERE case_id = ? AND message_id IS NULL AND id IN (` + placeholders + `)`

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Wrapf(err, "failed to link %d attachments to message %s", len(attachmentIDs), messageID)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return n, nil
}

func scanMySQLAttachment(row scanner) (*casesDomain.Attachment, error) {
	var a casesDomain.Attachment
	var id, caseID, orgID, messageID, uploadedBy []byte

	err := row.Scan(
		&id,
		&caseID,
		&orgID,
		&messageID,
		&a.FileName,
		&a.MimeType,
		&a.Size,
		&a.StorageKey,
		&a.IV,
		&uploadedBy,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := a.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal attachment id")
	}
	if err := a.CaseID.UnmarshalBinary(caseID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal case id")
	}
	if err := a.OrganizationID.UnmarshalBinary(orgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	if a.MessageID, err = optionalUUID(messageID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal message id")
	}
	if a.UploadedBy, err = optionalUUID(uploadedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal uploader id")
	}
	return &a, nil
}

// NewMySQLAttachmentRepository creates a new MySQL attachment repository.
func NewMySQLAttachmentRepository(db *sql.DB) *MySQLAttachmentRepository {
	return &MySQLAttachmentRepository{db: db}
}
