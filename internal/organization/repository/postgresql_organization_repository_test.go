package repository

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
	"github.com/whistlebase/whistlebase/internal/testutil"
)

var orgColumns = []string{
	"id", "name", "country", "public_key", "encrypted_private_key", "salt", "nonce", "created_at",
}

func newTestOrganization() *orgDomain.Organization {
	return &orgDomain.Organization{
		ID:                  uuid.Must(uuid.NewV7()),
		Name:                "Acme",
		Country:             "PT",
		PublicKey:           bytes.Repeat([]byte{1}, 32),
		EncryptedPrivateKey: bytes.Repeat([]byte{2}, 48),
		Salt:                bytes.Repeat([]byte{3}, 16),
		Nonce:               bytes.Repeat([]byte{4}, 24),
		CreatedAt:           time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgreSQLOrganizationRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)
		org := newTestOrganization()

		mock.ExpectExec("INSERT INTO organizations").
			WithArgs(sqlmock.AnyArg(), org.Name, org.Country, org.PublicKey,
				org.EncryptedPrivateKey, org.Salt, org.Nonce, org.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, org))
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectExec("INSERT INTO organizations").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, newTestOrganization())
		assert.ErrorIs(t, err, orgDomain.ErrOrganizationExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectExec("INSERT INTO organizations").WillReturnError(assert.AnError)

		err := repo.Create(ctx, newTestOrganization())
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLOrganizationRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)
		org := newTestOrganization()

		mock.ExpectQuery("SELECT (.+) FROM organizations WHERE id").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orgColumns).AddRow(
				org.ID.String(), org.Name, org.Country, org.PublicKey,
				org.EncryptedPrivateKey, org.Salt, org.Nonce, org.CreatedAt,
			))

		got, err := repo.Get(ctx, org.ID)
		require.NoError(t, err)
		assert.Equal(t, org, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLOrganizationRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM organizations").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, orgDomain.ErrOrganizationNotFound)
	})
}
