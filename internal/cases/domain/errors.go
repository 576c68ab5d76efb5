package domain

import (
	"github.com/whistlebase/whistlebase/internal/errors"
)

// Case errors.
var (
	// ErrCaseNotFound is also returned when the caller may not see the case, so that
	// case IDs cannot be enumerated.
	ErrCaseNotFound = errors.Wrap(errors.ErrNotFound, "case not found")

	// ErrAttachmentNotFound indicates a missing attachment or blob.
	ErrAttachmentNotFound = errors.Wrap(errors.ErrNotFound, "attachment not found")

	// ErrCaseExists indicates the case ID or the reporter public key is already bound to
	// a case.
	ErrCaseExists = errors.Wrap(errors.ErrConflict, "case already exists")

	// ErrInvalidCaseID indicates a client-generated case ID that cannot identify a case.
	ErrInvalidCaseID = errors.Wrap(errors.ErrInvalidInput, "invalid case id")

	// ErrInvalidStatus indicates an unknown status or justification.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid case status")

	// ErrAttachmentTooLarge indicates an upload above the configured limit.
	ErrAttachmentTooLarge = errors.Wrap(errors.ErrInvalidInput, "attachment exceeds maximum size")

	// ErrAttachmentNotLinkable indicates an attachment that belongs to another case or
	// is already linked to a message.
	ErrAttachmentNotLinkable = errors.Wrap(errors.ErrInvalidInput, "attachment cannot be linked to this message")
)
