// Package http provides HTTP handlers for organization signup and public key lookup.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/whistlebase/whistlebase/internal/httputil"
	"github.com/whistlebase/whistlebase/internal/organization/http/dto"
	orgUseCase "github.com/whistlebase/whistlebase/internal/organization/usecase"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// OrganizationHandler handles HTTP requests for organizations.
type OrganizationHandler struct {
	orgUseCase orgUseCase.OrganizationUseCase
	logger     *slog.Logger
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(useCase orgUseCase.OrganizationUseCase, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgUseCase: useCase,
		logger:     logger,
	}
}

// SignupHandler creates an organization with its first admin.
// POST /v1/organizations - No authentication required.
// Returns 201 Created with the organization and member IDs.
func (h *OrganizationHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.orgUseCase.Signup(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		OrganizationID: output.OrganizationID.String(),
		MemberID:       output.MemberID.String(),
	})
}

// GetPublicKeyHandler returns the organization public key.
// GET /v1/organizations/:id/public-key - No authentication required.
func (h *OrganizationHandler) GetPublicKeyHandler(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid organization id: must be a valid UUID"), h.logger)
		return
	}

	publicKey, err := h.orgUseCase.GetPublicKey(c.Request.Context(), orgID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicKeyResponse{
		OrganizationID: orgID.String(),
		PublicKey:      publicKey,
	})
}

// GetHandler returns an organization's public profile.
// GET /v1/organizations/:id - No authentication required.
func (h *OrganizationHandler) GetHandler(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid organization id: must be a valid UUID"), h.logger)
		return
	}

	org, err := h.orgUseCase.Get(c.Request.Context(), orgID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrganizationToResponse(org))
}
