package dto

import (
	"time"

	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

// SignupResponse identifies the created organization and admin.
type SignupResponse struct {
	OrganizationID string `json:"organization_id"`
	MemberID       string `json:"member_id"`
}

// PublicKeyResponse carries the key reporters seal case content to.
type PublicKeyResponse struct {
	OrganizationID string `json:"organization_id"`
	PublicKey      string `json:"public_key"`
}

// OrganizationResponse represents an organization in API responses. The wrapped private
// key is only returned by the login flow.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	PublicKey string    `json:"public_key"`
	CreatedAt time.Time `json:"created_at"`
}

// MapOrganizationToResponse converts a domain organization to an API response.
func MapOrganizationToResponse(org *orgDomain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID.String(),
		Name:      org.Name,
		Country:   org.Country,
		PublicKey: org.EncodedPublicKey(),
		CreatedAt: org.CreatedAt,
	}
}
