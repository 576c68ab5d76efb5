package dto

import (
	"time"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
)

// ChannelResponse represents a channel in member API responses.
type ChannelResponse struct {
	ID                string    `json:"id"`
	OrganizationID    string    `json:"organization_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	AccessCode        string    `json:"access_code"`
	SubmissionMessage string    `json:"submission_message"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ChannelListResponse wraps a list of channels.
type ChannelListResponse struct {
	Data []ChannelResponse `json:"data"`
}

// ReportingChannelResponse is what an anonymous reporter sees for an access code.
type ReportingChannelResponse struct {
	ChannelID         string `json:"channel_id"`
	OrganizationID    string `json:"organization_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	SubmissionMessage string `json:"submission_message"`
	AccessCode        string `json:"access_code"`
	PublicKey         string `json:"public_key"`
}

// AccessCodeAvailabilityResponse reports whether an access code is free.
type AccessCodeAvailabilityResponse struct {
	AccessCode string `json:"access_code"`
	Available  bool   `json:"available"`
}

// AccessCodeResponse carries a generated access code.
type AccessCodeResponse struct {
	AccessCode string `json:"access_code"`
}

// MapChannelToResponse converts a domain channel to an API response.
func MapChannelToResponse(ch *channelsDomain.Channel) ChannelResponse {
	return ChannelResponse{
		ID:                ch.ID.String(),
		OrganizationID:    ch.OrganizationID.String(),
		Title:             ch.Title,
		Description:       ch.Description,
		AccessCode:        ch.AccessCode,
		SubmissionMessage: ch.SubmissionMessage,
		IsActive:          ch.IsActive,
		CreatedAt:         ch.CreatedAt,
		UpdatedAt:         ch.UpdatedAt,
	}
}

// MapChannelsToListResponse converts domain channels to a list response.
func MapChannelsToListResponse(channels []*channelsDomain.Channel) ChannelListResponse {
	data := make([]ChannelResponse, 0, len(channels))
	for _, ch := range channels {
		data = append(data, MapChannelToResponse(ch))
	}
	return ChannelListResponse{Data: data}
}

// MapReportingChannelToResponse converts a resolved access code to an API response.
func MapReportingChannelToResponse(rc *channelsDomain.ReportingChannel) ReportingChannelResponse {
	return ReportingChannelResponse{
		ChannelID:         rc.Channel.ID.String(),
		OrganizationID:    rc.Channel.OrganizationID.String(),
		Title:             rc.Channel.Title,
		Description:       rc.Channel.Description,
		SubmissionMessage: rc.Channel.SubmissionMessage,
		AccessCode:        rc.Channel.AccessCode,
		PublicKey:         rc.OrganizationPublicKey,
	}
}
