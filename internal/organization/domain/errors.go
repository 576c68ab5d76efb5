package domain

import (
	"github.com/whistlebase/whistlebase/internal/errors"
)

// Organization and member errors.
var (
	// ErrOrganizationNotFound indicates no organization exists with the given ID.
	ErrOrganizationNotFound = errors.Wrap(errors.ErrNotFound, "organization not found")

	// ErrMemberNotFound indicates no member exists with the given ID or email.
	ErrMemberNotFound = errors.Wrap(errors.ErrNotFound, "member not found")

	// ErrOrganizationExists indicates an organization with the same name already exists.
	ErrOrganizationExists = errors.Wrap(errors.ErrConflict, "organization already exists")

	// ErrEmailTaken indicates the email address is already registered.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")
)
