package repository

import (
	"database/sql"

	"github.com/google/uuid"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

type scanner interface {
	Scan(dest ...any) error
}

// idScanner adapts driver-specific UUID columns: PostgreSQL scans UUID values directly
// and MySQL stores them as BINARY(16).
type idScanner func(dest ...*uuid.UUID) (targets []any, finish func() error)

func scanPostgreSQLIDs(dest ...*uuid.UUID) ([]any, func() error) {
	targets := make([]any, len(dest))
	for i, d := range dest {
		targets[i] = d
	}
	return targets, func() error { return nil }
}

func scanMySQLIDs(dest ...*uuid.UUID) ([]any, func() error) {
	raw := make([][]byte, len(dest))
	targets := make([]any, len(dest))
	for i := range dest {
		targets[i] = &raw[i]
	}
	return targets, func() error {
		for i, d := range dest {
			if err := d.UnmarshalBinary(raw[i]); err != nil {
				return apperrors.Wrap(err, "failed to unmarshal id")
			}
		}
		return nil
	}
}

func scanChannel(row scanner, ids idScanner) (*channelsDomain.Channel, error) {
	var ch channelsDomain.Channel

	idTargets, finish := ids(&ch.ID, &ch.OrganizationID)
	err := row.Scan(
		idTargets[0],
		idTargets[1],
		&ch.Title,
		&ch.Description,
		&ch.AccessCode,
		&ch.SubmissionMessage,
		&ch.IsActive,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return &ch, nil
}

func collectChannels(rows *sql.Rows, ids idScanner) ([]*channelsDomain.Channel, error) {
	defer func() {
		_ = rows.Close()
	}()

	channels := make([]*channelsDomain.Channel, 0)
	for rows.Next() {
		ch, err := scanChannel(rows, ids)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan channel")
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate channels")
	}
	return channels, nil
}

func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return channelsDomain.ErrChannelNotFound
	}
	return nil
}
