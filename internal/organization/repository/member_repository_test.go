package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
	"github.com/whistlebase/whistlebase/internal/testutil"
)

var memberColumns = []string{
	"id", "organization_id", "email", "password_hash", "role", "failed_attempts", "locked_until", "created_at",
}

func newTestMember() *orgDomain.Member {
	return &orgDomain.Member{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: uuid.Must(uuid.NewV7()),
		Email:          "admin@acme.example",
		PasswordHash:   "$argon2id$v=19$hash",
		Role:           orgDomain.RoleAdmin,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgreSQLMemberRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLMemberRepository(db)
		member := newTestMember()

		mock.ExpectExec("INSERT INTO members").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), member.Email, member.PasswordHash,
				"admin", 0, nil, member.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, member))
	})

	t.Run("Create_EmailTaken", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLMemberRepository(db)

		mock.ExpectExec("INSERT INTO members").WillReturnError(&pq.Error{Code: "23505"})

		assert.ErrorIs(t, repo.Create(ctx, newTestMember()), orgDomain.ErrEmailTaken)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLMemberRepository(db)

		mock.ExpectExec("UPDATE members SET").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, newTestMember()), orgDomain.ErrMemberNotFound)
	})

	t.Run("Update_Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLMemberRepository(db)
		member := newTestMember()
		member.FailedAttempts = 2

		mock.ExpectExec("UPDATE members SET").
			WithArgs("admin", 2, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, member))
	})

	t.Run("GetByEmail_NormalizesEmail", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLMemberRepository(db)
		member := newTestMember()

		mock.ExpectQuery("SELECT (.+) FROM members WHERE email").
			WithArgs("admin@acme.example").
			WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(
				member.ID.String(), member.OrganizationID.String(), member.Email, member.PasswordHash,
				"admin", 0, nil, member.CreatedAt,
			))

		got, err := repo.GetByEmail(ctx, "  ADMIN@acme.example")
		require.NoError(t, err)
		assert.Equal(t, member, got)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLMemberRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM members WHERE id").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})
}

func TestMySQLMemberRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_BinaryIDs", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLMemberRepository(db)
		member := newTestMember()

		mock.ExpectExec("INSERT INTO members").
			WithArgs(testutil.MySQLUUID(t, member.ID), testutil.MySQLUUID(t, member.OrganizationID),
				member.Email, member.PasswordHash, "admin", 0, nil, member.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, member))
	})

	t.Run("Get_Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLMemberRepository(db)
		member := newTestMember()
		lockedUntil := member.CreatedAt.Add(time.Hour)
		member.LockedUntil = &lockedUntil

		mock.ExpectQuery("SELECT (.+) FROM members WHERE id").
			WithArgs(testutil.MySQLUUID(t, member.ID)).
			WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(
				testutil.MySQLUUID(t, member.ID), testutil.MySQLUUID(t, member.OrganizationID),
				member.Email, member.PasswordHash, "admin", 0, lockedUntil, member.CreatedAt,
			))

		got, err := repo.Get(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, member, got)
	})

	t.Run("GetByEmail_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLMemberRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM members WHERE email").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(ctx, "nobody@example.org")
		assert.ErrorIs(t, err, orgDomain.ErrMemberNotFound)
	})
}
