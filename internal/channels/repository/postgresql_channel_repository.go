// Package repository implements persistence for reporting channels.
// Repositories support both PostgreSQL and MySQL.
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

const channelColumns = `id, organization_id, title, description, access_code, submission_message, is_active,
			  created_at, updated_at`

const countQuery = `SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)
			  FROM channels WHERE organization_id = `

// PostgreSQLChannelRepository implements Channel persistence for PostgreSQL.
type PostgreSQLChannelRepository struct {
	db *sql.DB
}

// Create inserts a new channel. A reused access code yields ErrAccessCodeTaken.
func (p *PostgreSQLChannelRepository) Create(ctx context.Context, ch *channelsDomain.Channel) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO channels (` + channelColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		ch.ID,
		ch.OrganizationID,
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
func (p *PostgreSQLChannelRepository) Update(ctx context.Context, ch *channelsDomain.Channel) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE channels SET title = $1, description = $2, access_code = $3, submission_message = $4,
			  is_active = $5, updated_at = $6 WHERE id = $7 AND organization_id = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		ch.Title,
		ch.Description,
		ch.AccessCode,
		ch.SubmissionMessage,
		ch.IsActive,
		ch.UpdatedAt,
		ch.ID,
		ch.OrganizationID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return channelsDomain.ErrAccessCodeTaken
		}
		return apperrors.Wrapf(err, "failed to update channel %s", ch.ID)
	}
	return requireOneRow(result)
}

// Delete removes an organization's channel. Channels referenced by cases yield
// ErrChannelHasCases.
func (p *PostgreSQLChannelRepository) Delete(ctx context.Context, orgID, channelID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM channels WHERE id = $1 AND organization_id = $2`,
		channelID, orgID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return channelsDomain.ErrChannelHasCases
		}
		return apperrors.Wrapf(err, "failed to delete channel %s", channelID)
	}
	return requireOneRow(result)
}

// Get retrieves a channel by ID.
func (p *PostgreSQLChannelRepository) Get(ctx context.Context, channelID uuid.UUID) (*channelsDomain.Channel, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`

	ch, err := scanChannel(querier.QueryRowContext(ctx, query, channelID), scanPostgreSQLIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, channelsDomain.ErrChannelNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get channel")
	}
	return ch, nil
}

// GetByAccessCode retrieves a channel by its access code, active or not.
func (p *PostgreSQLChannelRepository) GetByAccessCode(
	ctx context.Context,
	accessCode string,
) (*channelsDomain.Channel, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + channelColumns + ` FROM channels WHERE access_code = $1`

	ch, err := scanChannel(querier.QueryRowContext(ctx, query, accessCode), scanPostgreSQLIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, channelsDomain.ErrChannelNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get channel by access code")
	}
	return ch, nil
}

// ListByOrganization returns an organization's channels, newest first.
func (p *PostgreSQLChannelRepository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
) ([]*channelsDomain.Channel, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + channelColumns + ` FROM channels WHERE organization_id = $1
			  ORDER BY created_at DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list channels")
	}
	return collectChannels(rows, scanPostgreSQLIDs)
}

// AccessCodeExists reports whether any channel uses accessCode.
func (p *PostgreSQLChannelRepository) AccessCodeExists(ctx context.Context, accessCode string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM channels WHERE access_code = $1)`,
		accessCode).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check access code")
	}
	return exists, nil
}

// CountByOrganization counts an organization's channels.
func (p *PostgreSQLChannelRepository) CountByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
) (*channelsDomain.Counts, error) {
	querier := database.GetTx(ctx, p.db)

	var counts channelsDomain.Counts
	if err := querier.QueryRowContext(ctx, countQuery+`$1`, orgID).Scan(&counts.Total, &counts.Active); err != nil {
		return nil, apperrors.Wrap(err, "failed to count channels")
	}
	return &counts, nil
}

// NewPostgreSQLChannelRepository creates a new PostgreSQL channel repository.
func NewPostgreSQLChannelRepository(db *sql.DB) *PostgreSQLChannelRepository {
	return &PostgreSQLChannelRepository{db: db}
}
