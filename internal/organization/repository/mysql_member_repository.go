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

// MySQLMemberRepository implements Member persistence for MySQL.
type MySQLMemberRepository struct {
	db *sql.DB
}

const mysqlMemberColumns = `id, organization_id, email, password_hash, role, failed_attempts, locked_until, created_at`

// Create inserts a new member.
func (m *MySQLMemberRepository) Create(ctx context.Context, member *orgDomain.Member) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO members (` + mysqlMemberColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := member.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal member id")
	}
	orgID, err := member.OrganizationID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal organization id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		member.Email,
		member.PasswordHash,
		string(member.Role),
		member.FailedAttempts,
		member.LockedUntil,
		member.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return orgDomain.ErrEmailTaken
		}
		return apperrors.Wrap(err, "failed to create member")
	}
	return nil
}

// Update persists the member's lockout state and role.
func (m *MySQLMemberRepository) Update(ctx context.Context, member *orgDomain.Member) error {
	querier := database.GetTx(ctx, m.db)

	id, err := member.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal member id")
	}

	query := `UPDATE members SET role = ?, failed_attempts = ?, locked_until = ? WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, string(member.Role), member.FailedAttempts, member.LockedUntil, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update member")
	}
	return nil
}

// Get retrieves a member by ID.
func (m *MySQLMemberRepository) Get(ctx context.Context, memberID uuid.UUID) (*orgDomain.Member, error) {
	id, err := memberID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal member id")
	}
	query := `SELECT ` + mysqlMemberColumns + ` FROM members WHERE id = ?`
	return m.getOne(ctx, query, id)
}

// GetByEmail retrieves a member by normalized email.
func (m *MySQLMemberRepository) GetByEmail(ctx context.Context, email string) (*orgDomain.Member, error) {
	query := `SELECT ` + mysqlMemberColumns + ` FROM members WHERE email = ?`
	return m.getOne(ctx, query, orgDomain.NormalizeEmail(email))
}

func (m *MySQLMemberRepository) getOne(ctx context.Context, query string, arg any) (*orgDomain.Member, error) {
	querier := database.GetTx(ctx, m.db)

	var member orgDomain.Member
	var id, orgID []byte
	var role string
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&id,
		&orgID,
		&member.Email,
		&member.PasswordHash,
		&role,
		&member.FailedAttempts,
		&member.LockedUntil,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get member")
	}

	if err := member.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal member id")
	}
	if err := member.OrganizationID.UnmarshalBinary(orgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	member.Role = orgDomain.Role(role)
	return &member, nil
}

// NewMySQLMemberRepository creates a new MySQL member repository.
func NewMySQLMemberRepository(db *sql.DB) *MySQLMemberRepository {
	return &MySQLMemberRepository{db: db}
}
