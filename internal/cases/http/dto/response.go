package dto

import (
	"time"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// CaseResponse represents a case in API responses. The envelope fields are in the
// same text form the reporter submitted.
type CaseResponse struct {
	ID                   string    `json:"id"`
	OrganizationID       string    `json:"organization_id"`
	ChannelID            string    `json:"channel_id"`
	Category             string    `json:"category"`
	ReporterPublicKey    string    `json:"reporter_public_key"`
	Content              string    `json:"content"`
	SealedKeyForReporter string    `json:"sealed_key_for_reporter"`
	SealedKeyForOrg      string    `json:"sealed_key_for_org"`
	Status               string    `json:"status"`
	Justification        string    `json:"justification"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SubmitCaseResponse is returned to the reporter after submission.
type SubmitCaseResponse struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCasesResponse represents a page of cases.
type ListCasesResponse struct {
	Data []CaseResponse `json:"data"`
}

// AttachmentResponse represents attachment metadata. The IV is standard base64.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	MessageID *string   `json:"message_id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	IV        string    `json:"iv"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse represents a message with its linked attachments.
type MessageResponse struct {
	ID          string               `json:"id"`
	CaseID      string               `json:"case_id"`
	SenderType  string               `json:"sender_type"`
	SenderID    *string              `json:"sender_id"`
	Message     string               `json:"message"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CaseDetailResponse represents a case with its conversation.
type CaseDetailResponse struct {
	CaseResponse
	Messages    []MessageResponse    `json:"messages"`
	Attachments []AttachmentResponse `json:"attachments"`
}

// StatsResponse represents dashboard counters.
type StatsResponse struct {
	TotalCases       int64 `json:"total_cases"`
	OpenCases        int64 `json:"open_cases"`
	ClosedCases      int64 `json:"closed_cases"`
	JustifiedCases   int64 `json:"justified_cases"`
	UnjustifiedCases int64 `json:"unjustified_cases"`
	TotalChannels    int64 `json:"total_channels"`
	ActiveChannels   int64 `json:"active_channels"`
}

// MapCaseToResponse converts a domain case to an API response.
func MapCaseToResponse(c *casesDomain.Case) CaseResponse {
	envelope := c.Envelope.Encode()
	return CaseResponse{
		ID:                   c.ID.String(),
		OrganizationID:       c.OrganizationID.String(),
		ChannelID:            c.ChannelID.String(),
		Category:             c.Category,
		ReporterPublicKey:    c.EncodedReporterPublicKey(),
		Content:              envelope.Content,
		SealedKeyForReporter: envelope.SealedKeyForReporter,
		SealedKeyForOrg:      envelope.SealedKeyForOrg,
		Status:               string(c.Status),
		Justification:        string(c.Justification),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// MapCasesToListResponse converts a page of cases to an API response.
func MapCasesToListResponse(cases []*casesDomain.Case) ListCasesResponse {
	data := make([]CaseResponse, 0, len(cases))
	for _, c := range cases {
		data = append(data, MapCaseToResponse(c))
	}
	return ListCasesResponse{Data: data}
}

// MapAttachmentToResponse converts attachment metadata to an API response.
func MapAttachmentToResponse(a *casesDomain.Attachment) AttachmentResponse {
	resp := AttachmentResponse{
		ID:        a.ID.String(),
		CaseID:    a.CaseID.String(),
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		Size:      a.Size,
		IV:        cryptoDomain.EncodeWeb(a.IV),
		CreatedAt: a.CreatedAt,
	}
	if a.MessageID != nil {
		id := a.MessageID.String()
		resp.MessageID = &id
	}
	return resp
}

func mapAttachments(attachments []*casesDomain.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, MapAttachmentToResponse(a))
	}
	return out
}

// MapMessageToResponse converts a message and its attachments to an API response.
func MapMessageToResponse(detail *casesDomain.MessageDetail) MessageResponse {
	m := detail.Message
	resp := MessageResponse{
		ID:          m.ID.String(),
		CaseID:      m.CaseID.String(),
		SenderType:  string(m.SenderType),
		Message:     m.Payload.String(),
		Attachments: mapAttachments(detail.Attachments),
		CreatedAt:   m.CreatedAt,
	}
	if m.SenderID != nil {
		id := m.SenderID.String()
		resp.SenderID = &id
	}
	return resp
}

// MapCaseDetailToResponse converts a case with its conversation to an API response.
func MapCaseDetailToResponse(detail *casesDomain.CaseDetail) CaseDetailResponse {
	messages := make([]MessageResponse, 0, len(detail.Messages))
	for _, m := range detail.Messages {
		messages = append(messages, MapMessageToResponse(m))
	}
	return CaseDetailResponse{
		CaseResponse: MapCaseToResponse(detail.Case),
		Messages:     messages,
		Attachments:  mapAttachments(detail.Attachments),
	}
}

// MapStatsToResponse converts dashboard counters to an API response.
func MapStatsToResponse(s *casesDomain.Stats) StatsResponse {
	return StatsResponse{
		TotalCases:       s.TotalCases,
		OpenCases:        s.OpenCases,
		ClosedCases:      s.ClosedCases,
		JustifiedCases:   s.JustifiedCases,
		UnjustifiedCases: s.UnjustifiedCases,
		TotalChannels:    s.TotalChannels,
		ActiveChannels:   s.ActiveChannels,
	}
}
