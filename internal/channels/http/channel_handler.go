// Package http provides HTTP handlers for reporting channels.
//
// Members manage their organization's channels. Reporters resolve an access code
// anonymously to learn the organization public key they seal a case to.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	authHttp "github.com/whistlebase/whistlebase/internal/auth/http"
	"github.com/whistlebase/whistlebase/internal/channels/http/dto"
	channelsUseCase "github.com/whistlebase/whistlebase/internal/channels/usecase"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	"github.com/whistlebase/whistlebase/internal/httputil"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// ChannelHandler handles HTTP requests for channels.
type ChannelHandler struct {
	channelUseCase channelsUseCase.ChannelUseCase
	logger         *slog.Logger
}

// NewChannelHandler creates a new channel handler.
func NewChannelHandler(useCase channelsUseCase.ChannelUseCase, logger *slog.Logger) *ChannelHandler {
	return &ChannelHandler{
		channelUseCase: useCase,
		logger:         logger,
	}
}

func (h *ChannelHandler) requireSession(c *gin.Context) (*authDomain.Session, bool) {
	session, ok := authHttp.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return session, ok
}

func (h *ChannelHandler) channelID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid channel id: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// CreateHandler adds a channel to the caller's organization.
// POST /v1/channels - Requires a session.
// Returns 201 Created with the channel.
func (h *ChannelHandler) CreateHandler(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ch, err := h.channelUseCase.Create(c.Request.Context(), req.ToInput(session.OrganizationID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapChannelToResponse(ch))
}

// ListHandler lists the caller's organization channels, newest first.
// GET /v1/channels - Requires a session.
func (h *ChannelHandler) ListHandler(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	channels, err := h.channelUseCase.List(c.Request.Context(), session.OrganizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChannelsToListResponse(channels))
}

// GetHandler returns one channel of the caller's organization.
// GET /v1/channels/:id - Requires a session.
func (h *ChannelHandler) GetHandler(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	ch, err := h.channelUseCase.Get(c.Request.Context(), session.OrganizationID, channelID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChannelToResponse(ch))
}

// UpdateHandler changes the fields present in the body.
// PATCH /v1/channels/:id - Requires a session.
func (h *ChannelHandler) UpdateHandler(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	var req dto.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ch, err := h.channelUseCase.Update(c.Request.Context(), req.ToInput(session.OrganizationID, channelID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChannelToResponse(ch))
}

// DeleteHandler removes a channel no case was submitted through.
// DELETE /v1/channels/:id - Requires a session.
// Returns 204 No Content, or 409 Conflict when cases reference the channel.
func (h *ChannelHandler) DeleteHandler(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	channelID, ok := h.channelID(c)
	if !ok {
		return
	}

	if err := h.channelUseCase.Delete(c.Request.Context(), session.OrganizationID, channelID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckAccessCodeHandler reports whether an access code is free.
// GET /v1/channels/access-code-availability?code=ACME2024 - Requires a session.
func (h *ChannelHandler) CheckAccessCodeHandler(c *gin.Context) {
	if _, ok := h.requireSession(c); !ok {
		return
	}

	code := c.Query("code")
	available, err := h.channelUseCase.CheckAccessCode(c.Request.Context(), code)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AccessCodeAvailabilityResponse{AccessCode: code, Available: available})
}

// GenerateAccessCodeHandler suggests an unused access code.
// POST /v1/channels/access-codes - Requires a session.
func (h *ChannelHandler) GenerateAccessCodeHandler(c *gin.Context) {
	if _, ok := h.requireSession(c); !ok {
		return
	}

	code, err := h.channelUseCase.GenerateAccessCode(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.AccessCodeResponse{AccessCode: code})
}

// ResolveHandler returns the channel behind an access code and the organization public
// key to seal a case to.
// GET /v1/channels/by-access-code/:code - No authentication required.
// Inactive channels are reported as 404 Not Found.
func (h *ChannelHandler) ResolveHandler(c *gin.Context) {
	rc, err := h.channelUseCase.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReportingChannelToResponse(rc))
}
