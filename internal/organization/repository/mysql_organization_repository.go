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

// MySQLOrganizationRepository implements Organization persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// Create inserts a new organization.
func (m *MySQLOrganizationRepository) Create(ctx context.Context, org *orgDomain.Organization) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO organizations (id, name, country, public_key, encrypted_private_key, salt, nonce, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := org.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, country, public_key, encrypted_private_key, salt, nonce, created_at
			  FROM organizations WHERE id = ?`

	id, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	var org orgDomain.Organization
	var rawID []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
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

	if err := org.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	return &org, nil
}

// NewMySQLOrganizationRepository creates a new MySQL organization repository.
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{db: db}
}
