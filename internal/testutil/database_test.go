package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	db, mock := NewMockDB(t)
	require.NotNil(t, db)

	mock.ExpectExec("DELETE FROM cases").WillReturnResult(sqlmock.NewResult(0, 3))
	res, err := db.Exec("DELETE FROM cases")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
}

func TestMySQLUUID(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	b := MySQLUUID(t, id)
	assert.Len(t, b, 16)
	assert.Equal(t, id[:], b)
}

func TestMigrationsPath(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := MigrationsPath("does-not-exist")
		assert.Error(t, err)
	})

	for _, dbType := range []string{"postgresql", "mysql"} {
		t.Run(dbType, func(t *testing.T) {
			path, err := MigrationsPath(dbType)
			require.NoError(t, err)

			drv, err := source.Open("file://" + path)
			require.NoError(t, err)
			defer func() { _ = drv.Close() }()

			version, err := drv.First()
			require.NoError(t, err)

			for {
				up, _, err := drv.ReadUp(version)
				require.NoError(t, err, "missing up migration for version %d", version)
				_ = up.Close()

				down, _, err := drv.ReadDown(version)
				require.NoError(t, err, "missing down migration for version %d", version)
				_ = down.Close()

				next, err := drv.Next(version)
				if err != nil {
					break
				}
				version = next
			}
		})
	}
}
