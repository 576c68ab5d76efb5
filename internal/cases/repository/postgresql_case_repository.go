// Package repository implements persistence for cases, messages and attachments.
// Repositories support both PostgreSQL and MySQL.
//
// Encrypted payloads are stored as versioned binary frames (see
// cryptoDomain.EncryptedPayload.MarshalBinary) so the algorithm tag travels with the
// ciphertext. Sealed keys and public keys are stored as raw bytes.
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

const caseColumns = `id, organization_id, channel_id, category, reporter_public_key, content,
			  sealed_key_for_reporter, sealed_key_for_org, status, justification, created_at, updated_at`

// statsQuery counts cases per status and justification for one organization. It is
// shared by both drivers apart from the placeholder.
const statsQuery = `SELECT COUNT(*),
			  COALESCE(SUM(CASE WHEN status = 'OPEN' THEN 1 ELSE 0 END), 0),
			  COALESCE(SUM(CASE WHEN status = 'CLOSED' THEN 1 ELSE 0 END), 0),
			  COALESCE(SUM(CASE WHEN justification = 'JUSTIFIED' THEN 1 ELSE 0 END), 0),
			  COALESCE(SUM(CASE WHEN justification = 'UNJUSTIFIED' THEN 1 ELSE 0 END), 0)
			  FROM cases WHERE organization_id = `

// PostgreSQLCaseRepository implements Case persistence for PostgreSQL.
type PostgreSQLCaseRepository struct {
	db *sql.DB
}

// Create inserts a new case. A reused case ID or reporter public key yields
// ErrCaseExists.
func (p *PostgreSQLCaseRepository) Create(ctx context.Context, c *casesDomain.Case) error {
	querier := database.GetTx(ctx, p.db)

	content, err := c.Envelope.Content.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode case content")
	}

	query := `INSERT INTO cases (` + caseColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = querier.ExecContext(
		ctx,
		query,
		c.ID,
		c.OrganizationID,
		c.ChannelID,
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
func (p *PostgreSQLCaseRepository) Get(ctx context.Context, caseID uuid.UUID) (*casesDomain.Case, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`

	c, err := scanCase(querier.QueryRowContext(ctx, query, caseID), scanPostgreSQLIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, casesDomain.ErrCaseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get case")
	}
	return c, nil
}

// ListByOrganization returns an organization's cases, newest first.
func (p *PostgreSQLCaseRepository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*casesDomain.Case, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + caseColumns + ` FROM cases WHERE organization_id = $1
			  ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cases")
	}
	defer func() {
		_ = rows.Close()
	}()

	cases := make([]*casesDomain.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows, scanPostgreSQLIDs)
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
func (p *PostgreSQLCaseRepository) UpdateStatus(ctx context.Context, c *casesDomain.Case) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE cases SET status = $1, justification = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, string(c.Status), string(c.Justification), c.UpdatedAt, c.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update case status")
	}
	return requireOneRow(result)
}

// Stats counts an organization's cases.
func (p *PostgreSQLCaseRepository) Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error) {
	querier := database.GetTx(ctx, p.db)

	var stats casesDomain.Stats
	err := querier.QueryRowContext(ctx, statsQuery+`$1`, orgID).Scan(
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

// NewPostgreSQLCaseRepository creates a new PostgreSQL case repository.
func NewPostgreSQLCaseRepository(db *sql.DB) *PostgreSQLCaseRepository {
	return &PostgreSQLCaseRepository{db: db}
}
