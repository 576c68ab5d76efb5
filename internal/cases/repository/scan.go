package repository

import (
	"database/sql"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
)

type scanner interface {
	Scan(dest ...any) error
}

// idScanner adapts driver-specific UUID columns. PostgreSQL scans UUID values
// directly; MySQL stores them as BINARY(16).
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

func scanCase(row scanner, ids idScanner) (*casesDomain.Case, error) {
	var c casesDomain.Case
	var content []byte
	var status, justification string

	idTargets, finish := ids(&c.ID, &c.OrganizationID, &c.ChannelID)
	err := row.Scan(
		idTargets[0],
		idTargets[1],
		idTargets[2],
		&c.Category,
		&c.ReporterPublicKey,
		&content,
		&c.Envelope.SealedKeyForReporter,
		&c.Envelope.SealedKeyForOrg,
		&status,
		&justification,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	if err := c.Envelope.Content.UnmarshalBinary(content); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode case content")
	}
	c.Status = casesDomain.Status(status)
	c.Justification = casesDomain.Justification(justification)
	return &c, nil
}

func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return casesDomain.ErrCaseNotFound
	}
	return nil
}
