package domain

import (
	"github.com/whistlebase/whistlebase/internal/errors"
)

// Channel errors.
var (
	// ErrChannelNotFound is also returned for an access code of an inactive channel.
	ErrChannelNotFound = errors.Wrap(errors.ErrNotFound, "channel not found")

	// ErrAccessCodeTaken indicates another channel already uses the access code.
	ErrAccessCodeTaken = errors.Wrap(errors.ErrConflict, "access code already in use")

	// ErrChannelHasCases indicates a channel that cases were submitted through. Such a
	// channel can be deactivated but not deleted.
	ErrChannelHasCases = errors.Wrap(errors.ErrConflict, "channel has cases")

	// ErrInvalidAccessCode indicates a code that is not eight ASCII letters or digits.
	ErrInvalidAccessCode = errors.Wrap(errors.ErrInvalidInput, "invalid access code")

	// ErrAccessCodeExhausted indicates that no unused access code was found within the
	// attempt limit.
	ErrAccessCodeExhausted = errors.New("unable to generate a unique access code")
)
