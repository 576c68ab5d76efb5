package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

const messageColumns = `id, case_id, sender_type, sender_id, content, created_at`

// PostgreSQLMessageRepository implements Message persistence for PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// Create inserts a new message.
func (p *PostgreSQLMessageRepository) Create(ctx context.Context, message *casesDomain.Message) error {
	querier := database.GetTx(ctx, p.db)

	content, err := message.Payload.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode message content")
	}

	query := `INSERT INTO messages (` + messageColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		message.ID,
		message.CaseID,
		string(message.SenderType),
		nullUUID(message.SenderID),
		content,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// ListByCase returns a case's messages in chronological order.
func (p *PostgreSQLMessageRepository) ListByCase(
	ctx context.Context,
	caseID uuid.UUID,
) ([]*casesDomain.Message, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + messageColumns + ` FROM messages WHERE case_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := make([]*casesDomain.Message, 0)
	for rows.Next() {
		var message casesDomain.Message
		var senderType string
		var senderID uuid.NullUUID
		var content []byte

		if err := rows.Scan(
			&message.ID,
			&message.CaseID,
			&senderType,
			&senderID,
			&content,
			&message.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		if err := message.Payload.UnmarshalBinary(content); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode message content")
		}
		message.SenderType = casesDomain.SenderType(senderType)
		if senderID.Valid {
			message.SenderID = &senderID.UUID
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}
	return messages, nil
}

// nullUUID converts an optional UUID to a value PostgreSQL stores as NULL when absent.
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// NewPostgreSQLMessageRepository creates a new PostgreSQL message repository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}
