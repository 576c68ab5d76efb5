package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whistlebase/whistlebase/internal/auth/http/dto"
	authUseCase "github.com/whistlebase/whistlebase/internal/auth/usecase"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	"github.com/whistlebase/whistlebase/internal/httputil"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

// LoginHandler handles member login and session key retrieval.
type LoginHandler struct {
	loginUseCase authUseCase.LoginUseCase
	logger       *slog.Logger
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(loginUseCase authUseCase.LoginUseCase, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		loginUseCase: loginUseCase,
		logger:       logger,
	}
}

// LoginHandler authenticates a member.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with the session token and the organization's wrapped private key.
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.loginUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// SessionKeyHandler returns the session key carried by the caller's session token.
// GET /v1/auth/session-key - Requires authentication.
func (h *LoginHandler) SessionKeyHandler(c *gin.Context) {
	session, ok := GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.SessionKeyResponse{
		SessionKey: session.EncodedSessionKey(),
		ExpiresAt:  session.ExpiresAt,
	})
}
