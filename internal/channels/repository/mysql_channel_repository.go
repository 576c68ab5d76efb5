package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

// MySQLChannelRepository implements Channel persistence for MySQL. UUIDs are stored as
// BINARY(16); access codes use a binary collation so lookups are case-sensitive.
type MySQLChannelRepository struct {
	db *sql.DB
}

// Create inserts a new channel. A reused access code yields ErrAccessCodeTaken.
func (m *MySQLChannelRepository) Create(ctx context.Context, ch *channelsDomain.Channel) error {
	querier := database.GetTx(ctx, m.db)

	id, err := ch.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal channel id")
	}
	orgID, err := ch.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `INSERT INTO channels (` + channelColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		ch.Title,
		ch.Description,
		ch.AccessCode,
		ch.SubmissionMessage,
		ch.IsActive,
		ch.CreatedAt,
		ch.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return channelsDomain.ErrAccessCodeTaken
		}
		return apperrors.Wrap(err, "failed to create channel")
	}
	return nil
}

// Update persists every mutable field of ch.
func (m *MySQLChannelRepository) Update(ctx context.Context, ch *channelsDomain.Channel) error {
	querier := database.GetTx(ctx, m.db)

	id, err := ch.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal channel id")
	}
	orgID, err := ch.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `UPDATE channels SET title = ?, description = ?, access_code = ?, submission_message = ?,
			  is_active = ?, updated_at = ? WHERE id = ? AND organization_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		ch.Title,
		ch.Description,
		ch.AccessCode,
		ch.SubmissionMessage,
		ch.IsActive,
		ch.UpdatedAt,
		id,
		orgID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return channelsDomain.ErrAccessCodeTaken
		}
		return apperrors.Wrapf(err, "failed to update channel %s", ch.ID)
	}
	// MySQL reports zero affected rows when nothing changed, so a miss is confirmed
	// with a lookup.
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		existing, err := m.Get(ctx, ch.ID)
		if err != nil {
			return err
		}
		if existing.OrganizationID != ch.OrganizationID {
			return channelsDomain.ErrChannelNotFound
		}
	}
	return nil
}

// Delete removes an organization's channel. Channels referenced by cases yield
// ErrChannelHasCases.
func (m *MySQLChannelRepository) Delete(ctx context.Context, orgID, channelID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := channelID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal channel id")
	}
	oID, err := orgID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM channels WHERE id = ? AND organization_id = ?`, id, oID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return channelsDomain.ErrChannelHasCases
		}
		return apperrors.Wrapf(err, "failed to delete channel %s", channelID)
	}
	return requireOneRow(result)
}

// Get retrieves a channel by ID.
func (m *MySQLChannelRepository) Get(ctx context.Context, channelID uuid.UUID) (*channelsDomain.Channel, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := channelID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal channel id")
	}

	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = ?`

	ch, err := scanChannel(querier.QueryRowContext(ctx, query, id), scanMySQLIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, channelsDomain.ErrChannelNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get channel")
	}
	return ch, nil
}

// GetByAccessCode retrieves a channel by its access code, active or not.
func (m *MySQLChannelRepository) GetByAccessCode(
	ctx context.Context,
	accessCode string,
) (*channelsDomain.Channel, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + channelColumns + ` FROM channels WHERE access_code = ?`

	ch, err := scanChannel(querier.QueryRowContext(ctx, query, accessCode), scanMySQLIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, channelsDomain.ErrChannelNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get channel by access code")
	}
	return ch, nil
}

// ListByOrganization returns an organization's channels, newest first.
func (m *MySQLChannelRepository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
) ([]*channelsDomain.Channel, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT ` + channelColumns + ` FROM channels WHERE organization_id = ?
			  ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list channels")
	}
	return collectChannels(rows, scanMySQLIDs)
}

// AccessCodeExists reports whether any channel uses accessCode.
func (m *MySQLChannelRepository) AccessCodeExists(ctx context.Context, accessCode string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM channels WHERE access_code = ?)`,
		accessCode).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check access code")
	}
	return exists, nil
}

// CountByOrganization counts an organization's channels.
func (m *MySQLChannelRepository) CountByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
) (*channelsDomain.Counts, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	var counts channelsDomain.Counts
	if err := querier.QueryRowContext(ctx, countQuery+`?`, id).Scan(&counts.Total, &counts.Active); err != nil {
		return nil, apperrors.Wrap(err, "failed to count channels")
	}
	return &counts, nil
}

// NewMySQLChannelRepository creates a new MySQL channel repository.
func NewMySQLChannelRepository(db *sql.DB) *MySQLChannelRepository {
	return &MySQLChannelRepository{db: db}
}
