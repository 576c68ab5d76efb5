package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

const attachmentColumns = `id, case_id, organization_id, message_id, file_name, mime_type, size, storage_key, iv,
			  uploaded_by, created_at`

// PostgreSQLAttachmentRepository implements Attachment persistence for PostgreSQL.
type PostgreSQLAttachmentRepository struct {
	db *sql.DB
}

// Create inserts attachment metadata. The ciphertext itself lives in blob storage.
func (p *PostgreSQLAttachmentRepository) Create(ctx context.Context, a *casesDomain.Attachment) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO attachments (` + attachmentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		a.ID,
		a.CaseID,
		a.OrganizationID,
		nullUUID(a.MessageID),
		a.FileName,
		a.MimeType,
		a.Size,
		a.StorageKey,
		a.IV,
		nullUUID(a.UploadedBy),
		a.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create attachment")
	}
	return nil
}

// Get retrieves attachment metadata by ID.
func (p *PostgreSQLAttachmentRepository) Get(
	ctx context.Context,
	attachmentID uuid.UUID,
) (*casesDomain.Attachment, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`

	a, err := scanPostgreSQLAttachment(querier.QueryRowContext(ctx, query, attachmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, casesDomain.ErrAttachmentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get attachment")
	}
	return a, nil
}

// ListByCase returns all attachments of a case in upload order.
func (p *PostgreSQLAttachmentRepository) ListByCase(
	ctx context.Context,
	caseID uuid.UUID,
) ([]*casesDomain.Attachment, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE case_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list attachments")
	}
	defer func() {
		_ = rows.Close()
	}()

	attachments := make([]*casesDomain.Attachment, 0)
	for rows.Next() {
		a, err := scanPostgreSQLAttachment(rows)
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
func (p *PostgreSQLAttachmentRepository) LinkToMessage(
	ctx context.Context,
	caseID, messageID uuid.UUID,
	attachmentIDs []uuid.UUID,
) (int64, error) {
	if len(attachmentIDs) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, p.db)

	ids := make([]string, len(attachmentIDs))
	for i, id := range attachmentIDs {
		ids[i] = id.String()
	}

	query := `UPDATE attachments SET message_id = $1
			  WHERE case_id = $2 AND message_id IS NULL AND id = ANY($3::uuid[])`

	result, err := querier.ExecContext(ctx, query, messageID, caseID, pq.Array(ids))
	if err != nil {
		return 0, apperrors.Wrapf(err, "failed to link %d attachments to message %s", len(attachmentIDs), messageID)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return n, nil
}

func scanPostgreSQLAttachment(row scanner) (*casesDomain.Attachment, error) {
	var a casesDomain.Attachment
	var messageID, uploadedBy uuid.NullUUID

	err := row.Scan(
		&a.ID,
		&a.CaseID,
		&a.OrganizationID,
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
	if messageID.Valid {
		a.MessageID = &messageID.UUID
	}
	if uploadedBy.Valid {
		a.UploadedBy = &uploadedBy.UUID
	}
	return &a, nil
}

// NewPostgreSQLAttachmentRepository creates a new PostgreSQL attachment repository.
func NewPostgreSQLAttachmentRepository(db *sql.DB) *PostgreSQLAttachmentRepository {
	return &PostgreSQLAttachmentRepository{db: db}
}
