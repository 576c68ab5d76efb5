// Package repository implements persistence for organizations and members.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/whistlebase/whistlebase/internal/database"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

// PostgreSQLOrganizationRepository implements Organization persistence for PostgreSQL.
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// Create inserts a new organization.
func (p *PostgreSQLOrganizationRepository) Create(ctx context.Context, org *orgDomain.Organization) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO organizations (id, name, country, public_key, encrypted_private_key, salt, nonce, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		org.Country,
		org.PublicKey,
		org.EncryptedPrivateKey,
		org.Salt,
		org.Nonce,
		org.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return orgDomain.ErrOrganizationExists
		}
		return apperrors.Wrap(err, "failed to create organization")
	}
	return nil
}

// Get retrieves an organization by ID.
func (p *PostgreSQLOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, country, public_key, encrypted_private_key, salt, nonce, created_at
			  FROM organizations WHERE id = $1`

	var org orgDomain.Organization
	err := querier.QueryRowContext(ctx, query, orgID).Scan(
		&org.ID,
		&org.Name,
		&org.Country,
		&org.PublicKey,
		&org.EncryptedPrivateKey,
		&org.Salt,
		&org.Nonce,
		&org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}
	return &org, nil
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQL organization repository.
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{db: db}
}
