package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

// MySQLCaseRepository implements Case persistence for MySQL. UUIDs are stored as
// BINARY(16).
type MySQLCaseRepository struct {
	db *sql.DB
}

// Create inserts a new case. A reused case ID or reporter public key yields
// ErrCaseExists.
func (m *MySQLCaseRepository) Create(ctx context.Context, c *casesDomain.Case) error {
	querier := database.GetTx(ctx, m.db)

	id, err := c.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal case id")
	}
	orgID, err := c.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}
	channelID, err := c.ChannelID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal channel id")
	}
	content, err := c.Envelope.Content.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode case content")
	}

	query := `INSERT INTO cases (` + caseColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		channelID,
		c.Category,
		c.ReporterPublicKey,
		content,
		c.Envelope.SealedKeyForReporter,
		c.Envelope.SealedKeyForOrg,
		string(c.Status),
		string(c.Justification),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return casesDomain.ErrCaseExists
		}
		return apperrors.Wrap(err, "failed to create case")
	}
	return nil
}

// Get retrieves a case by ID.
func (m *MySQLCaseRepository) Get(ctx context.Context, caseID uuid.UUID) (*casesDomain.Case, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := caseID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal case id")
	}

	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = ?`

	c, err := scanCase(querier.QueryRowContext(ctx, query, id), scanMySQLIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, casesDomain.ErrCaseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get case")
	}
	return c, nil
}

// ListByOrganization returns an organization's cases, newest first.
func (m *MySQLCaseRepository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*casesDomain.Case, error) {
	querier := database.GetTx(ctx, m.db)

	org, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT ` + caseColumns + ` FROM cases WHERE organization_id = ?
			  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, org, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cases")
	}
	defer func() {
		_ = rows.Close()
	}()

	cases := make([]*casesDomain.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows, scanMySQLIDs)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan case")
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cases")
	}
	return cases, nil
}

// UpdateStatus persists status, justification and updated_at.
func (m *MySQLCaseRepository) UpdateStatus(ctx context.Context, c *casesDomain.Case) error {
	querier := database.GetTx(ctx, m.db)

	id, err := c.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal case id")
	}

	query := `UPDATE cases SET status = ?, justification = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, string(c.Status), string(c.Justification), c.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update case status")
	}
	return requireOneRow(result)
}

// Stats counts an organization's cases.
func (m *MySQLCaseRepository) Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error) {
	querier := database.GetTx(ctx, m.db)

	org, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	var stats casesDomain.Stats
	err = querier.QueryRowContext(ctx, statsQuery+`?`, org).Scan(
		&stats.TotalCases,
		&stats.OpenCases,
		&stats.ClosedCases,
		&stats.JustifiedCases,
		&stats.UnjustifiedCases,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count cases")
	}
	return &stats, nil
}

// NewMySQLCaseRepository creates a new MySQL case repository.
func NewMySQLCaseRepository(db *sql.DB) *MySQLCaseRepository {
	return &MySQLCaseRepository{db: db}
}
