// Package dto provides data transfer objects for channel HTTP requests and responses.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// AccessCode validates the eight letter or digit access code shape.
var AccessCode = validation.NewStringRuleWithError(
	channelsDomain.ValidAccessCode,
	validation.NewError("validation_access_code", "must be 8 letters or digits"),
)

// CreateChannelRequest adds a channel. An omitted access_code is generated.
type CreateChannelRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	AccessCode        string `json:"access_code"`
	SubmissionMessage string `json:"submission_message"`
	IsActive          *bool  `json:"is_active"`
}

// Validate checks if the create request is valid.
func (r *CreateChannelRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 200),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.AccessCode,
			customValidation.NoWhitespace,
			AccessCode,
		),
		validation.Field(&r.SubmissionMessage, validation.Length(0, 500)),
	)
}

// ToInput converts the request into a use case input.
func (r *CreateChannelRequest) ToInput(orgID uuid.UUID) *channelsDomain.CreateChannelInput {
	return &channelsDomain.CreateChannelInput{
		OrganizationID:    orgID,
		Title:             r.Title,
		Description:       r.Description,
		AccessCode:        r.AccessCode,
		SubmissionMessage: r.SubmissionMessage,
		IsActive:          r.IsActive,
	}
}

// UpdateChannelRequest changes the fields present in the body.
type UpdateChannelRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	AccessCode        *string `json:"access_code"`
	SubmissionMessage *string `json:"submission_message"`
	IsActive          *bool   `json:"is_active"`
}

// Validate checks if the update request is valid. Present title and access code
// fields must not be empty.
func (r *UpdateChannelRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Required),
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 200),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.AccessCode,
			validation.When(r.AccessCode != nil, validation.Required),
			customValidation.NoWhitespace,
			AccessCode,
		),
		validation.Field(&r.SubmissionMessage, validation.Length(0, 500)),
	)
}

// ToInput converts the request into a use case input.
func (r *UpdateChannelRequest) ToInput(orgID, channelID uuid.UUID) *channelsDomain.UpdateChannelInput {
	return &channelsDomain.UpdateChannelInput{
		ID:                channelID,
		OrganizationID:    orgID,
		Title:             r.Title,
		Description:       r.Description,
		AccessCode:        r.AccessCode,
		SubmissionMessage: r.SubmissionMessage,
		IsActive:          r.IsActive,
	}
}
