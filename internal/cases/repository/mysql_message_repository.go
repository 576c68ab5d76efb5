package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

// MySQLMessageRepository implements Message persistence for MySQL.
type MySQLMessageRepository struct {
	db *sql.DB
}

// Create inserts a new message.
func (m *MySQLMessageRepository) Create(ctx context.Context, message *casesDomain.Message) error {
	querier := database.GetTx(ctx, m.db)

	id, err := message.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message id")
	}
	caseID, err := message.CaseID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal case id")
	}
	senderID, err := binaryUUID(message.SenderID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal sender id")
	}
	content, err := message.Payload.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode message content")
	}

	query := `INSERT INTO messages (` + messageColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		caseID,
		string(message.SenderType),
		senderID,
		content,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create message")
	}
	return nil
}

// ListByCase returns a case's messages in chronological order.
func (m *MySQLMessageRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*casesDomain.Message, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := caseID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal case id")
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE case_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list messages")
	}
	defer func() {
		_ = rows.Close()
	}()

	messages := make([]*casesDomain.Message, 0)
	for rows.Next() {
		var message casesDomain.Message
		var rawID, rawCaseID, rawSenderID, content []byte
		var senderType string

		if err := rows.Scan(
			&rawID,
			&rawCaseID,
			&senderType,
			&rawSenderID,
			&content,
			&message.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan message")
		}
		if err := message.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal message id")
		}
		if err := message.CaseID.UnmarshalBinary(rawCaseID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal case id")
		}
		if message.SenderID, err = optionalUUID(rawSenderID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal sender id")
		}
		if err := message.Payload.UnmarshalBinary(content); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode message content")
		}
		message.SenderType = casesDomain.SenderType(senderType)
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate messages")
	}
	return messages, nil
}

// binaryUUID returns the BINARY(16) form of an optional UUID, or nil for NULL.
func binaryUUID(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	return id.MarshalBinary()
}

// optionalUUID is the inverse of binaryUUID.
func optionalUUID(raw []byte) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	var id uuid.UUID
	if err := id.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return &id, nil
}

// NewMySQLMessageRepository creates a new MySQL message repository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}
