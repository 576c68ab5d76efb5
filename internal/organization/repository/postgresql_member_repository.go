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

// PostgreSQLMemberRepository implements Member persistence for PostgreSQL.
type PostgreSQLMemberRepository struct {
	db *sql.DB
}

const postgresMemberColumns = `id, organization_id, email, password_hash, role, failed_attempts, locked_until, created_at`

// Create inserts a new member.
func (p *PostgreSQLMemberRepository) Create(ctx context.Context, member *orgDomain.Member) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO members (` + postgresMemberColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		member.ID,
		member.OrganizationID,
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
func (p *PostgreSQLMemberRepository) Update(ctx context.Context, member *orgDomain.Member) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE members SET role = $1, failed_attempts = $2, locked_until = $3 WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(member.Role),
		member.FailedAttempts,
		member.LockedUntil,
		member.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update member")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return orgDomain.ErrMemberNotFound
	}
	return nil
}

// Get retrieves a member by ID.
func (p *PostgreSQLMemberRepository) Get(ctx context.Context, memberID uuid.UUID) (*orgDomain.Member, error) {
	query := `SELECT ` + postgresMemberColumns + ` FROM members WHERE id = $1`
	return p.getOne(ctx, query, memberID)
}

// GetByEmail retrieves a member by normalized email.
func (p *PostgreSQLMemberRepository) GetByEmail(ctx context.Context, email string) (*orgDomain.Member, error) {
	query := `SELECT ` + postgresMemberColumns + ` FROM members WHERE email = $1`
	return p.getOne(ctx, query, orgDomain.NormalizeEmail(email))
}

func (p *PostgreSQLMemberRepository) getOne(ctx context.Context, query string, arg any) (*orgDomain.Member, error) {
	querier := database.GetTx(ctx, p.db)

	var member orgDomain.Member
	var role string
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&member.ID,
		&member.OrganizationID,
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
	member.Role = orgDomain.Role(role)
	return &member, nil
}

// NewPostgreSQLMemberRepository creates a new PostgreSQL member repository.
func NewPostgreSQLMemberRepository(db *sql.DB) *PostgreSQLMemberRepository {
	return &PostgreSQLMemberRepository{db: db}
}
